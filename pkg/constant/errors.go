/*
 * @Description:
 * @Author: 山岚
 * @Date: 2025-09-14 11:42:18
 * @LastEditTime: 2026-07-02 20:15:33
 * @LastEditors: 山岚
 */
package constant

import "errors"

// 定义业务逻辑相关的标准错误
var (
	// ErrNotFound 表示资源未找到，可以由 Handler 转换为 404
	ErrNotFound = errors.New("资源未找到")

	// ErrForbidden 表示无权访问，可以由 Handler 转换为 403
	ErrForbidden = errors.New("操作禁止")

	// ErrBadRequest 表示请求参数错误，可以由 Handler 转换为 400
	ErrBadRequest = errors.New("错误的请求")

	// ErrUnauthorized 表示未授权，可以由 Handler 转换为 401
	ErrUnauthorized = errors.New("未经授权的访问")

	// ErrInvalidToken 表示无效的令牌，可以由 Handler 转换为 401
	ErrInvalidToken = errors.New("无效令牌")

	// ErrGalleryReadOnly 表示相册处于只读模式，拒绝一切写入
	ErrGalleryReadOnly = errors.New("相册处于只读模式")

	// ErrUnknownEra 表示请求了未定义的相机年代标识
	ErrUnknownEra = errors.New("未知的相机年代标识")

	// ErrPipelineFailure 表示效果管线最终编码失败，调用方应回退到原始帧
	ErrPipelineFailure = errors.New("效果管线输出编码失败")
)
