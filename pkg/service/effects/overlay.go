/*
 * @Description: 日期时间水印阶段
 * @Author: 山岚
 * @Date: 2025-09-19 10:36:14
 * @LastEditTime: 2026-06-12 12:40:27
 * @LastEditors: 山岚
 */
package effects

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/golang/freetype/truetype"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"

	"github.com/retro-tech/retrosnap/pkg/domain/model"
)

// 水印文字采用早期数码相机的橙色，阴影保证叠加在亮部时仍可读。
var (
	overlayTextColor   = color.NRGBA{R: 255, G: 159, B: 44, A: 255}
	overlayShadowColor = color.NRGBA{R: 0, G: 0, B: 0, A: 190}
)

const overlayTimeLayout = "2006/01/02 15:04"

// DateTimeOverlayStage 在右下角渲染快门时刻的时间戳，带投影。
// 字号与画面短边成比例。此阶段必须位于管线末尾，
// 这样噪点、暗角和模糊都不会破坏水印的可读性。
type DateTimeOverlayStage struct {
	font *truetype.Font
}

func NewDateTimeOverlayStage() (*DateTimeOverlayStage, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("解析水印字体失败: %w", err)
	}
	return &DateTimeOverlayStage{font: f}, nil
}

func (s *DateTimeOverlayStage) Name() string { return "datetime_overlay" }

func (s *DateTimeOverlayStage) Apply(img image.Image, _ *model.EraProfile, env *Env) (image.Image, error) {
	dst := imaging.Clone(img)
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()

	shorter := w
	if h < shorter {
		shorter = h
	}
	size := float64(shorter) * 0.045
	if size < 12 {
		size = 12
	}

	face := truetype.NewFace(s.font, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: xfont.HintingFull,
	})
	defer face.Close()

	text := env.CapturedAt.Format(overlayTimeLayout)
	textWidth := xfont.MeasureString(face, text).Ceil()

	margin := int(size * 0.6)
	x := w - margin - textWidth
	if x < 0 {
		x = 0
	}
	y := h - margin

	shadowOffset := int(size / 14)
	if shadowOffset < 1 {
		shadowOffset = 1
	}

	drawString(dst, face, text, x+shadowOffset, y+shadowOffset, overlayShadowColor)
	drawString(dst, face, text, x, y, overlayTextColor)

	return dst, nil
}

func drawString(dst *image.NRGBA, face xfont.Face, text string, x, y int, col color.NRGBA) {
	d := &xfont.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
