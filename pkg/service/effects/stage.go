/*
 * @Description: 效果阶段的统一契约
 * @Author: 山岚
 * @Date: 2025-09-18 10:14:02
 * @LastEditTime: 2026-06-12 11:20:45
 * @LastEditors: 山岚
 */
package effects

import (
	"image"
	"math/rand"
	"time"

	"github.com/retro-tech/retrosnap/pkg/domain/model"
)

// Env 携带一次管线运行内所有阶段共享的上下文：
// 快门时刻驱动时间戳水印，随机源由编排器注入，测试可以固定种子。
type Env struct {
	CapturedAt time.Time
	Rand       *rand.Rand
}

// Stage 是一个效果阶段：输入一张图，输出一张图。
// 阶段自身失败时返回错误，由编排器决定降级策略（原图透传）。
type Stage interface {
	Name() string
	Apply(img image.Image, profile *model.EraProfile, env *Env) (image.Image, error)
}

func clamp255(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

func clampUint8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
