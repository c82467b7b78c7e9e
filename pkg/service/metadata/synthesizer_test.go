package metadata

import (
	"testing"
	"time"

	"github.com/retro-tech/retrosnap/pkg/constant"
	"github.com/retro-tech/retrosnap/pkg/service/era"
)

func TestSynthesizeIsTotal(t *testing.T) {
	eraSvc := era.NewService()
	svc := NewService(WithSeed(1))

	times := []time.Time{
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(1999, 12, 31, 23, 59, 59, 0, time.UTC),
		time.Unix(0, 0).UTC(),
	}

	for _, id := range constant.AllEras {
		profile := eraSvc.Profile(id)
		for _, ts := range times {
			rec := svc.Synthesize(profile, ts)
			if rec.DateTimeOriginal == "" {
				t.Errorf("年代 %s: DateTimeOriginal 为空", id)
			}
			if rec.ISO <= 0 {
				t.Errorf("年代 %s: ISO 非法: %d", id, rec.ISO)
			}
			if rec.CameraMake == "" || rec.CameraModel == "" {
				t.Errorf("年代 %s: 厂商/型号为空", id)
			}
			if rec.ShutterSpeed == "" {
				t.Errorf("年代 %s: 快门速度为空", id)
			}
		}
	}
}

func TestSynthesizeDeterministicFields(t *testing.T) {
	eraSvc := era.NewService()
	svc := NewService(WithSeed(1))

	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rec := svc.Synthesize(eraSvc.Profile(constant.EraEarlyDigital), ts)

	if rec.DateTimeOriginal != "2024:01:01 00:00:00" {
		t.Errorf("日期格式错误: %s", rec.DateTimeOriginal)
	}
	if rec.DateTimeDigitized != rec.DateTimeOriginal {
		t.Error("DateTimeDigitized 应与 DateTimeOriginal 一致")
	}
	if rec.ISO != 200 {
		t.Errorf("早期数码年代 ISO 应为 200，实际 %d", rec.ISO)
	}
	if rec.CameraMake != "RetroTech" {
		t.Errorf("厂商应为 RetroTech，实际 %s", rec.CameraMake)
	}
	if !rec.FlashFired {
		t.Error("早期数码年代应标记闪光灯")
	}
	if rec.PixelXDimension != 640 || rec.PixelYDimension != 480 {
		t.Errorf("像素尺寸应为 640x480，实际 %dx%d", rec.PixelXDimension, rec.PixelYDimension)
	}
}

func TestSynthesizeRandomFieldsBounded(t *testing.T) {
	eraSvc := era.NewService()
	svc := NewService()

	tests := []struct {
		name string
		id   constant.EraID
	}{
		{name: "早期数码", id: constant.EraEarlyDigital},
		{name: "卡片机", id: constant.EraCompactDigital},
		{name: "长焦机", id: constant.EraSuperzoom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := eraSvc.Profile(tt.id)
			for i := 0; i < 50; i++ {
				rec := svc.Synthesize(profile, time.Now())
				if rec.FocalLengthMM < profile.FocalLengthMin || rec.FocalLengthMM > profile.FocalLengthMax {
					t.Fatalf("焦距越界: %.1f 不在 [%.1f, %.1f]",
						rec.FocalLengthMM, profile.FocalLengthMin, profile.FocalLengthMax)
				}
				if rec.FNumber < profile.ApertureMin || rec.FNumber > profile.ApertureMax {
					t.Fatalf("光圈越界: %.1f 不在 [%.1f, %.1f]",
						rec.FNumber, profile.ApertureMin, profile.ApertureMax)
				}
				valid := false
				for _, s := range shutterSpeeds {
					if rec.ShutterSpeed == s {
						valid = true
						break
					}
				}
				if !valid {
					t.Fatalf("快门速度 %s 不在固定档位集合中", rec.ShutterSpeed)
				}
			}
		})
	}
}

func TestSynthesizeFixedFocalForNonZoomEras(t *testing.T) {
	eraSvc := era.NewService()
	svc := NewService()

	for _, id := range []constant.EraID{constant.EraEarlyDigital, constant.EraCompactDigital} {
		profile := eraSvc.Profile(id)
		first := svc.Synthesize(profile, time.Now()).FocalLengthMM
		for i := 0; i < 10; i++ {
			if got := svc.Synthesize(profile, time.Now()).FocalLengthMM; got != first {
				t.Errorf("年代 %s 是定焦，焦距不应变化: %.1f vs %.1f", id, got, first)
			}
		}
	}
}
