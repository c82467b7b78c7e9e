/*
 * @Description: 传感器噪点合成阶段
 * @Author: 山岚
 * @Date: 2025-09-18 14:22:30
 * @LastEditTime: 2026-06-12 12:01:33
 * @LastEditors: 山岚
 */
package effects

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/retro-tech/retrosnap/pkg/domain/model"
)

// NoiseStage 生成一张全幅随机噪点图，按档案的噪点强度缩放其 alpha 通道，
// 再以标准 source-over 方式叠加到输入图上。
//
// 噪点场每次调用都重新生成，同样的输入与档案不会得到逐位相同的输出。
// 这是刻意模拟传感器噪声的随机性，不是缺陷。
type NoiseStage struct{}

func NewNoiseStage() *NoiseStage {
	return &NoiseStage{}
}

func (s *NoiseStage) Name() string { return "noise" }

func (s *NoiseStage) Apply(img image.Image, profile *model.EraProfile, env *Env) (image.Image, error) {
	if profile.NoiseLevel <= 0 {
		return img, nil
	}

	b := img.Bounds()
	alpha := clampUint8(int(profile.NoiseLevel * 255))

	field := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for i := 0; i < len(field.Pix); i += 4 {
		// 以亮度噪声为主，附带小幅色彩偏差，接近 CCD 的彩噪质感
		v := env.Rand.Intn(256)
		field.Pix[i] = clampUint8(v + env.Rand.Intn(31) - 15)
		field.Pix[i+1] = clampUint8(v + env.Rand.Intn(31) - 15)
		field.Pix[i+2] = clampUint8(v + env.Rand.Intn(31) - 15)
		field.Pix[i+3] = alpha
	}

	return imaging.Overlay(img, field, image.Pt(0, 0), 1.0), nil
}
