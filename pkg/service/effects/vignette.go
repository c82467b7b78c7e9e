/*
 * @Description: 暗角阶段
 * @Author: 山岚
 * @Date: 2025-09-18 15:10:55
 * @LastEditTime: 2026-02-09 14:30:58
 * @LastEditors: 山岚
 */
package effects

import (
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/retro-tech/retrosnap/pkg/domain/model"
)

// VignetteStage 从画面中心向四角按距离平方压暗。
// 半径固定为中心到角的距离（全幅覆盖），强度来自档案。
type VignetteStage struct{}

func NewVignetteStage() *VignetteStage {
	return &VignetteStage{}
}

func (s *VignetteStage) Name() string { return "vignette" }

func (s *VignetteStage) Apply(img image.Image, profile *model.EraProfile, _ *Env) (image.Image, error) {
	if profile.VignetteIntensity <= 0 {
		return img, nil
	}

	dst := imaging.Clone(img)
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()

	cx := float64(w) / 2
	cy := float64(h) / 2
	maxDist := math.Hypot(cx, cy)
	if maxDist == 0 {
		return img, nil
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d := math.Hypot(float64(x)-cx, float64(y)-cy) / maxDist
			factor := 1 - profile.VignetteIntensity*d*d
			if factor >= 1 {
				continue
			}
			if factor < 0 {
				factor = 0
			}
			i := y*dst.Stride + x*4
			dst.Pix[i] = uint8(float64(dst.Pix[i]) * factor)
			dst.Pix[i+1] = uint8(float64(dst.Pix[i+1]) * factor)
			dst.Pix[i+2] = uint8(float64(dst.Pix[i+2]) * factor)
		}
	}

	return dst, nil
}
