/*
 * @Description: 持久化授权门卫
 * @Author: 山岚
 * @Date: 2025-09-23 14:45:50
 * @LastEditTime: 2026-02-17 10:06:29
 * @LastEditors: 山岚
 */
package auth

import (
	"context"

	"github.com/retro-tech/retrosnap/pkg/constant"
)

// PersistGate 是持久化前必须通过的授权协作方。
// 相册只读模式下拒绝一切写入；授权失败时照片不会进入管线之后的保存流程。
type PersistGate struct {
	readOnly bool
}

func NewPersistGate(readOnly bool) *PersistGate {
	return &PersistGate{readOnly: readOnly}
}

// CanPersist 判断当前是否允许向相册写入。
func (g *PersistGate) CanPersist(ctx context.Context) error {
	if g.readOnly {
		return constant.ErrGalleryReadOnly
	}
	return nil
}
