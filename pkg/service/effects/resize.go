/*
 * @Description: 缩放阶段
 * @Author: 山岚
 * @Date: 2025-09-18 10:40:31
 * @LastEditTime: 2026-02-09 14:18:26
 * @LastEditors: 山岚
 */
package effects

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/retro-tech/retrosnap/pkg/domain/model"
)

// ResizeStage 把输入图缩放进档案的目标分辨率外接框。
// 缩放因子取 min(targetW/srcW, targetH/srcH)，两边用同一因子，纵横比不变。
type ResizeStage struct{}

func NewResizeStage() *ResizeStage {
	return &ResizeStage{}
}

func (s *ResizeStage) Name() string { return "resize" }

func (s *ResizeStage) Apply(img image.Image, profile *model.EraProfile, _ *Env) (image.Image, error) {
	b := img.Bounds()
	srcW, srcH := b.Dx(), b.Dy()
	if srcW < 1 || srcH < 1 {
		return nil, fmt.Errorf("输入图尺寸非法: %dx%d", srcW, srcH)
	}

	scale := math.Min(
		float64(profile.TargetWidth)/float64(srcW),
		float64(profile.TargetHeight)/float64(srcH),
	)

	dstW := int(math.Round(float64(srcW) * scale))
	dstH := int(math.Round(float64(srcH) * scale))
	if dstW < 1 {
		dstW = 1
	}
	if dstH < 1 {
		dstH = 1
	}

	if dstW == srcW && dstH == srcH {
		return img, nil
	}

	return imaging.Resize(img, dstW, dstH, imaging.Lanczos), nil
}
