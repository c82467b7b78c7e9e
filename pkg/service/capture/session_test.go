package capture

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"sync"
	"testing"
	"time"

	"github.com/retro-tech/retrosnap/pkg/constant"
	"github.com/retro-tech/retrosnap/pkg/domain/model"
)

func TestStopWithConcurrentEmitDoesNotPanic(t *testing.T) {
	s := NewSession(constant.EraCompactDigital, 0)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			frame := &model.CapturedFrame{EraID: constant.EraCompactDigital, CapturedAt: time.Now()}
			for j := 0; j < 500; j++ {
				s.Emit(frame)
			}
		}()
	}

	// 与生产者并发地停止会话；发帧方不得 panic
	s.Stop()
	wg.Wait()

	// 通道已关闭，消费者应能正常排空并退出
	for range s.Frames() {
	}
}

func TestShutterRejectsUnknownEra(t *testing.T) {
	s := NewSession(constant.EraCompactDigital, 0)

	var buf bytes.Buffer
	_ = jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8)), nil)

	_, err := s.Shutter(context.Background(), &buf, "polaroid")
	if !errors.Is(err, constant.ErrUnknownEra) {
		t.Fatalf("期望 ErrUnknownEra，实际: %v", err)
	}
}

func TestShutterUsesDefaultEraWhenUnspecified(t *testing.T) {
	s := NewSession(constant.EraSuperzoom, 0)

	var buf bytes.Buffer
	_ = jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8)), nil)

	frame, err := s.Shutter(context.Background(), &buf, "")
	if err != nil {
		t.Fatalf("拍摄失败: %v", err)
	}
	if frame.EraID != constant.EraSuperzoom {
		t.Errorf("年代不一致: got %s, want %s", frame.EraID, constant.EraSuperzoom)
	}
	if frame.Format != "jpeg" {
		t.Errorf("格式不一致: got %s", frame.Format)
	}
}
