/*
 * @Description: 拍摄帧与管线输出的核心业务模型
 * @Author: 山岚
 * @Date: 2025-09-15 10:02:55
 * @LastEditTime: 2026-06-11 19:33:20
 * @LastEditors: 山岚
 */
package model

import (
	"image"
	"time"

	"github.com/retro-tech/retrosnap/pkg/constant"
)

// CapturedFrame 是快门事件产生的一帧原始图像。
// 它在拍摄时创建，被效果管线消费一次，产出 ProcessedImage 之后不再保留。
type CapturedFrame struct {
	// Image 是已解码的像素数据。
	Image image.Image
	// Raw 是解码前的原始字节。管线失败时用它回退保存原图。
	Raw []byte
	// Format 是原始字节的编码格式（jpeg/png/webp 等）。
	Format string
	// EraID 是拍摄时选定的年代标识。
	EraID constant.EraID
	// CapturedAt 是快门时刻，同时驱动时间戳水印和元数据合成。
	CapturedAt time.Time
}

// ProcessedImage 是效果管线的最终输出，产出后不可变，所有权交给调用方。
type ProcessedImage struct {
	// Image 是处理后的像素数据。
	Image image.Image
	// Data 是编码后的 JPEG 字节，持久化时直接写入。
	Data []byte
	// Width/Height 是输出尺寸。
	Width  int
	Height int
}
