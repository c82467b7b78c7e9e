/*
 * @Description: 运动模糊阶段
 * @Author: 山岚
 * @Date: 2025-09-19 09:48:21
 * @LastEditTime: 2026-06-12 12:15:40
 * @LastEditors: 山岚
 */
package effects

import (
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/retro-tech/retrosnap/pkg/domain/model"
)

// 模糊半径从一个固定的小区间内均匀抽取（像素）。
const (
	minBlurRadius = 4
	maxBlurRadius = 12
)

// MotionBlurStage 沿随机方向做线性模糊，模拟手持长焦的抖动。
// 角度从 [0°,360°) 均匀抽取，半径从固定小区间均匀抽取，每次调用都重新抽取。
type MotionBlurStage struct{}

func NewMotionBlurStage() *MotionBlurStage {
	return &MotionBlurStage{}
}

func (s *MotionBlurStage) Name() string { return "motion_blur" }

func (s *MotionBlurStage) Apply(img image.Image, profile *model.EraProfile, env *Env) (image.Image, error) {
	if !profile.HasMotionBlur {
		return img, nil
	}

	angle := env.Rand.Float64() * 2 * math.Pi
	radius := minBlurRadius + env.Rand.Intn(maxBlurRadius-minBlurRadius+1)

	src := imaging.Clone(img)
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))

	dx := math.Cos(angle)
	dy := math.Sin(angle)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sr, sg, sb, sa, n float64
			for t := -radius; t <= radius; t++ {
				sx := x + int(math.Round(dx*float64(t)))
				sy := y + int(math.Round(dy*float64(t)))
				if sx < 0 {
					sx = 0
				} else if sx >= w {
					sx = w - 1
				}
				if sy < 0 {
					sy = 0
				} else if sy >= h {
					sy = h - 1
				}
				i := sy*src.Stride + sx*4
				sr += float64(src.Pix[i])
				sg += float64(src.Pix[i+1])
				sb += float64(src.Pix[i+2])
				sa += float64(src.Pix[i+3])
				n++
			}
			o := y*dst.Stride + x*4
			dst.Pix[o] = uint8(sr / n)
			dst.Pix[o+1] = uint8(sg / n)
			dst.Pix[o+2] = uint8(sb / n)
			dst.Pix[o+3] = uint8(sa / n)
		}
	}

	return dst, nil
}
