package era

import (
	"testing"

	"github.com/retro-tech/retrosnap/pkg/constant"
)

func TestProfileIsTotal(t *testing.T) {
	svc := NewService()

	for _, id := range constant.AllEras {
		p := svc.Profile(id)
		if p == nil {
			t.Fatalf("年代 %s 没有返回档案", id)
		}
		if p.ID != id {
			t.Errorf("年代 %s 的档案 ID 不一致: %s", id, p.ID)
		}
	}
}

func TestProfileResolutionPositive(t *testing.T) {
	svc := NewService()

	for _, id := range constant.AllEras {
		p := svc.Profile(id)
		if p.TargetWidth <= 0 || p.TargetHeight <= 0 {
			t.Errorf("年代 %s 的目标分辨率非法: %dx%d", id, p.TargetWidth, p.TargetHeight)
		}
	}
}

func TestProfileBoundedParameters(t *testing.T) {
	svc := NewService()

	for _, id := range constant.AllEras {
		p := svc.Profile(id)
		if p.NoiseLevel < 0 || p.NoiseLevel > 1 {
			t.Errorf("年代 %s 的噪点强度越界: %f", id, p.NoiseLevel)
		}
		if p.VignetteIntensity < 0 || p.VignetteIntensity > 1 {
			t.Errorf("年代 %s 的暗角强度越界: %f", id, p.VignetteIntensity)
		}
		if p.ISOValue <= 0 {
			t.Errorf("年代 %s 的 ISO 非法: %d", id, p.ISOValue)
		}
		if p.FocalLengthMin > p.FocalLengthMax {
			t.Errorf("年代 %s 的焦距范围倒置: %f > %f", id, p.FocalLengthMin, p.FocalLengthMax)
		}
		if p.ApertureMin > p.ApertureMax {
			t.Errorf("年代 %s 的光圈范围倒置: %f > %f", id, p.ApertureMin, p.ApertureMax)
		}
	}
}

func TestEarlyDigitalScenarioValues(t *testing.T) {
	// 早期数码年代的关键参数被端到端场景依赖，固定在这里防止误改
	p := NewService().Profile(constant.EraEarlyDigital)

	if p.TargetWidth != 640 || p.TargetHeight != 480 {
		t.Errorf("早期数码年代目标分辨率应为 640x480，实际 %dx%d", p.TargetWidth, p.TargetHeight)
	}
	if p.ISOValue != 200 {
		t.Errorf("早期数码年代 ISO 应为 200，实际 %d", p.ISOValue)
	}
	if p.CameraMake != "RetroTech" {
		t.Errorf("早期数码年代厂商应为 RetroTech，实际 %s", p.CameraMake)
	}
}
