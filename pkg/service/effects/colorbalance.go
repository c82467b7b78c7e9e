/*
 * @Description: 白平衡 / 饱和度 / 对比度阶段
 * @Author: 山岚
 * @Date: 2025-09-18 11:05:12
 * @LastEditTime: 2026-06-12 11:42:08
 * @LastEditors: 山岚
 */
package effects

import (
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/retro-tech/retrosnap/pkg/domain/model"
)

// 白平衡以 6500K 为中性参考：档案色温等于它时增益全为 1，像素不变。
const neutralKelvin = 6500.0

// ColorBalanceStage 先做色温偏移，再做饱和度和对比度。
// 顺序是有意义的：这些调整在一般图像数学下并不可交换。
type ColorBalanceStage struct{}

func NewColorBalanceStage() *ColorBalanceStage {
	return &ColorBalanceStage{}
}

func (s *ColorBalanceStage) Name() string { return "color_balance" }

func (s *ColorBalanceStage) Apply(img image.Image, profile *model.EraProfile, _ *Env) (image.Image, error) {
	out := applyTemperature(img, profile.ColorTemperature)

	if pct := (profile.Saturation - 1) * 100; pct != 0 {
		out = imaging.AdjustSaturation(out, pct)
	}
	if pct := (profile.Contrast - 1) * 100; pct != 0 {
		out = imaging.AdjustContrast(out, pct)
	}

	return out, nil
}

// applyTemperature 把图像的白点向目标色温偏移。
// 增益取目标色温黑体色与中性色温黑体色的逐通道比值。
func applyTemperature(img image.Image, kelvin float64) *image.NRGBA {
	dst := imaging.Clone(img)
	if kelvin == neutralKelvin || kelvin <= 0 {
		return dst
	}

	tr, tg, tb := kelvinToRGB(kelvin)
	nr, ng, nb := kelvinToRGB(neutralKelvin)
	gainR, gainG, gainB := tr/nr, tg/ng, tb/nb

	for i := 0; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = uint8(clamp255(float64(dst.Pix[i]) * gainR))
		dst.Pix[i+1] = uint8(clamp255(float64(dst.Pix[i+1]) * gainG))
		dst.Pix[i+2] = uint8(clamp255(float64(dst.Pix[i+2]) * gainB))
	}

	return dst
}

// kelvinToRGB 是 Tanner Helland 的黑体辐射近似，输入 1000K~40000K。
func kelvinToRGB(kelvin float64) (r, g, b float64) {
	t := kelvin / 100

	if t <= 66 {
		r = 255
	} else {
		r = 329.698727446 * math.Pow(t-60, -0.1332047592)
	}

	if t <= 66 {
		g = 99.4708025861*math.Log(t) - 161.1195681661
	} else {
		g = 288.1221695283 * math.Pow(t-60, -0.0755148492)
	}

	if t >= 66 {
		b = 255
	} else if t <= 19 {
		b = 0
	} else {
		b = 138.5177312231*math.Log(t-10) - 305.0447927307
	}

	return clamp255(r), clamp255(g), clamp255(b)
}
