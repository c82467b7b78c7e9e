/*
 * @Description: 年代效果管线编排器
 * @Author: 山岚
 * @Date: 2025-09-19 14:08:50
 * @LastEditTime: 2026-07-19 22:03:11
 * @LastEditors: 山岚
 */
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/disintegration/imaging"

	"github.com/retro-tech/retrosnap/pkg/constant"
	"github.com/retro-tech/retrosnap/pkg/domain/model"
	"github.com/retro-tech/retrosnap/pkg/service/effects"
	"github.com/retro-tech/retrosnap/pkg/service/era"
)

// Processor 是效果管线对调用方暴露的唯一契约。
type Processor interface {
	Process(ctx context.Context, frame *model.CapturedFrame) (*model.ProcessedImage, error)
}

// Service 按固定顺序执行七个效果阶段，单线程、同步、无内部并行。
// 每次运行使用独立的帧和独立的随机序列，彼此之间没有共享可变状态。
type Service struct {
	eraSvc      *era.Service
	stages      []effects.Stage
	jpegQuality int

	// seedFn 为每次运行提供随机种子。测试通过 WithSeed 固定它。
	seedFn func() int64
	seedMu sync.Mutex
}

// Option 配置管线服务。
type Option func(*Service)

// WithJPEGQuality 设置输出 JPEG 的质量。
func WithJPEGQuality(q int) Option {
	return func(s *Service) {
		if q > 0 && q <= 100 {
			s.jpegQuality = q
		}
	}
}

// WithSeed 固定随机种子，让噪点与运动模糊可以做逐位回归测试。
func WithSeed(seed int64) Option {
	return func(s *Service) {
		s.seedFn = func() int64 { return seed }
	}
}

// NewService 构造管线服务，阶段顺序在这里固定，永不改变。
func NewService(eraSvc *era.Service, opts ...Option) (*Service, error) {
	overlay, err := effects.NewDateTimeOverlayStage()
	if err != nil {
		return nil, fmt.Errorf("构造时间戳水印阶段失败: %w", err)
	}

	s := &Service{
		eraSvc: eraSvc,
		// 水印必须是最后一个阶段：之后不再有任何会破坏其可读性的处理
		stages: []effects.Stage{
			effects.NewResizeStage(),
			effects.NewColorBalanceStage(),
			effects.NewSharpenStage(),
			effects.NewNoiseStage(),
			effects.NewVignetteStage(),
			effects.NewMotionBlurStage(),
			overlay,
		},
		jpegQuality: 88,
		seedFn:      func() int64 { return time.Now().UnixNano() },
	}

	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Process 查档案、依次执行各阶段并编码输出。
// 单个阶段失败只降级（原图透传到下一阶段），永不中断整条链；
// 唯一向调用方暴露的失败是最终编码失败。
func (s *Service) Process(ctx context.Context, frame *model.CapturedFrame) (*model.ProcessedImage, error) {
	profile := s.eraSvc.Profile(frame.EraID)
	if profile == nil {
		return nil, fmt.Errorf("处理帧失败: %w: %s", constant.ErrUnknownEra, frame.EraID)
	}

	s.seedMu.Lock()
	seed := s.seedFn()
	s.seedMu.Unlock()

	env := &effects.Env{
		CapturedAt: frame.CapturedAt,
		Rand:       rand.New(rand.NewSource(seed)),
	}

	var current image.Image = frame.Image
	for _, stage := range s.stages {
		out, err := stage.Apply(current, profile, env)
		if err != nil || out == nil {
			// 阶段级降级：记录后原图透传
			log.Printf("[Pipeline] 阶段 %s 降级透传: %v", stage.Name(), err)
			continue
		}
		current = out
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, current, imaging.JPEG, imaging.JPEGQuality(s.jpegQuality)); err != nil {
		return nil, fmt.Errorf("%w: %v", constant.ErrPipelineFailure, err)
	}

	b := current.Bounds()
	return &model.ProcessedImage{
		Image:  current,
		Data:   buf.Bytes(),
		Width:  b.Dx(),
		Height: b.Dy(),
	}, nil
}
