/*
 * @Description: 相机元数据合成服务
 * @Author: 山岚
 * @Date: 2025-09-20 09:25:36
 * @LastEditTime: 2026-07-19 22:30:54
 * @LastEditors: 山岚
 */
package metadata

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/retro-tech/retrosnap/pkg/domain/model"
)

// EXIF 的日期时间格式
const exifTimeLayout = "2006:01:02 15:04:05"

// 快门速度从一组常见档位里抽取
var shutterSpeeds = []string{"1/30", "1/60", "1/125", "1/250", "1/500"}

// GPS 字段是硬编码的占位坐标，不来自任何真实定位。
// 原始行为如此，按观察到的样子保留，不做"修正"。
const (
	placeholderLatitude  = 35.6586
	placeholderLongitude = 139.7454
)

const softwareTag = "RetroSnap 1.0"

// Service 从年代档案和快门时刻合成一份貌似真实的相机元数据。
// 没有失败路径：任何档案和任何时刻都能得到完整记录。
type Service struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// Option 配置合成服务。
type Option func(*Service)

// WithSeed 固定随机种子，供测试使用。
func WithSeed(seed int64) Option {
	return func(s *Service) {
		s.rnd = rand.New(rand.NewSource(seed))
	}
}

func NewService(opts ...Option) *Service {
	s := &Service{
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Synthesize 生成一份元数据记录。
// 确定性字段来自档案与快门时刻；焦距、光圈、快门速度每次独立抽取。
func (s *Service) Synthesize(profile *model.EraProfile, captureTime time.Time) *model.MetadataRecord {
	s.mu.Lock()
	focal := s.randomInRange(profile.FocalLengthMin, profile.FocalLengthMax)
	aperture := s.randomInRange(profile.ApertureMin, profile.ApertureMax)
	shutter := shutterSpeeds[s.rnd.Intn(len(shutterSpeeds))]
	s.mu.Unlock()

	stamp := captureTime.Format(exifTimeLayout)

	return &model.MetadataRecord{
		DateTimeOriginal:  stamp,
		DateTimeDigitized: stamp,
		CameraMake:        profile.CameraMake,
		CameraModel:       profile.CameraModel,
		ISO:               profile.ISOValue,
		FlashFired:        profile.HasFlashEffect,
		FocalLengthMM:     focal,
		FNumber:           aperture,
		ShutterSpeed:      shutter,
		PixelXDimension:   profile.TargetWidth,
		PixelYDimension:   profile.TargetHeight,
		GPSLatitude:       placeholderLatitude,
		GPSLongitude:      placeholderLongitude,
		Software:          softwareTag,
	}
}

// randomInRange 在闭区间内均匀抽取并保留一位小数；区间退化为点时直接返回。
func (s *Service) randomInRange(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	v := lo + s.rnd.Float64()*(hi-lo)
	return math.Round(v*10) / 10
}
