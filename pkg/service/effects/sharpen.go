/*
 * @Description: 锐化阶段
 * @Author: 山岚
 * @Date: 2025-09-18 11:30:47
 * @LastEditTime: 2026-01-15 09:55:12
 * @LastEditors: 山岚
 */
package effects

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/retro-tech/retrosnap/pkg/domain/model"
)

// SharpenStage 按档案的锐化强度做亮度锐化，0 为无操作。
type SharpenStage struct{}

func NewSharpenStage() *SharpenStage {
	return &SharpenStage{}
}

func (s *SharpenStage) Name() string { return "sharpen" }

func (s *SharpenStage) Apply(img image.Image, profile *model.EraProfile, _ *Env) (image.Image, error) {
	if profile.Sharpness <= 0 {
		return img, nil
	}
	return imaging.Sharpen(img, profile.Sharpness), nil
}
