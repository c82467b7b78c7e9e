/*
 * @Description: 拍摄会话：解码上传帧 / 产生合成测试帧，并以值传递方式向下游发帧
 * @Author: 山岚
 * @Date: 2025-09-22 10:12:40
 * @LastEditTime: 2026-08-05 09:47:22
 * @LastEditors: 山岚
 */
package capture

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"log"
	"sync"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/retro-tech/retrosnap/pkg/constant"
	"github.com/retro-tech/retrosnap/pkg/domain/model"
)

// Session 是捕获协作方：快门事件产生 CapturedFrame 值，经通道交给消费者。
// 没有回调、没有委托，帧就是在通道里流动的普通值。
type Session struct {
	defaultEra constant.EraID
	interval   time.Duration

	frames chan *model.CapturedFrame
	stop   chan struct{}

	// mu 保护 closed：Stop 与并发中的 Emit 之间需要串行化，
	// 否则可能向已关闭的通道发送
	mu     sync.Mutex
	closed bool
}

// NewSession 构造拍摄会话。interval 大于 0 时 Start 会启用自拍定时器。
func NewSession(defaultEra constant.EraID, interval time.Duration) *Session {
	return &Session{
		defaultEra: defaultEra,
		interval:   interval,
		frames:     make(chan *model.CapturedFrame, 8),
		stop:       make(chan struct{}),
	}
}

// Frames 返回帧通道，持久化消费者从这里取帧。
func (s *Session) Frames() <-chan *model.CapturedFrame {
	return s.frames
}

// Shutter 解码一次上传并构造拍摄帧。eraStr 为空时使用默认年代。
func (s *Session) Shutter(ctx context.Context, r io.Reader, eraStr string) (*model.CapturedFrame, error) {
	eraID := s.defaultEra
	if eraStr != "" {
		if !constant.IsValidEra(eraStr) {
			return nil, fmt.Errorf("%w: %s", constant.ErrUnknownEra, eraStr)
		}
		eraID = constant.EraID(eraStr)
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("读取上传数据失败: %w", err)
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: 解码上传图片失败: %v", constant.ErrBadRequest, err)
	}

	return &model.CapturedFrame{
		Image:      img,
		Raw:        raw,
		Format:     format,
		EraID:      eraID,
		CapturedAt: time.Now(),
	}, nil
}

// Emit 把帧送进通道。通道满说明消费者积压，丢帧并记录，不阻塞快门。
// 会话停止后到达的帧同样丢弃。
func (s *Session) Emit(frame *model.CapturedFrame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		log.Printf("[Capture] 会话已停止，丢弃 %s 年代的一帧", frame.EraID)
		return
	}
	select {
	case s.frames <- frame:
	default:
		log.Printf("[Capture] 帧通道已满，丢弃 %s 年代的一帧", frame.EraID)
	}
}

// Start 启动自拍定时器（如果配置了间隔），周期性产生合成测试帧。
func (s *Session) Start() {
	if s.interval <= 0 {
		return
	}
	log.Printf("[Capture] 自拍定时器启动，间隔 %s", s.interval)
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Emit(s.testFrame())
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop 停止自拍定时器并关闭帧通道。关闭在 mu 保护下进行，
// 与进行中的 Emit 串行，之后的 Emit 只丢帧不发送。
func (s *Session) Stop() {
	close(s.stop)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.frames)
}

// testFrame 生成一张标版风格的合成测试帧（色条 + 渐变）。
func (s *Session) testFrame() *model.CapturedFrame {
	const w, h = 1024, 768
	img := image.NewNRGBA(image.Rect(0, 0, w, h))

	bars := [][3]uint8{
		{235, 235, 235}, {235, 235, 16}, {16, 235, 235}, {16, 235, 16},
		{235, 16, 235}, {235, 16, 16}, {16, 16, 235}, {16, 16, 16},
	}
	barWidth := w / len(bars)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := bars[minInt(x/barWidth, len(bars)-1)]
			shade := float64(y) / float64(h)
			i := y*img.Stride + x*4
			img.Pix[i] = uint8(float64(c[0]) * (1 - shade*0.5))
			img.Pix[i+1] = uint8(float64(c[1]) * (1 - shade*0.5))
			img.Pix[i+2] = uint8(float64(c[2]) * (1 - shade*0.5))
			img.Pix[i+3] = 255
		}
	}

	return &model.CapturedFrame{
		Image:      img,
		EraID:      s.defaultEra,
		CapturedAt: time.Now(),
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
