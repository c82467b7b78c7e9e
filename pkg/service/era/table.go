/*
 * @Description: 相机年代档案表
 * @Author: 山岚
 * @Date: 2025-09-17 15:20:13
 * @LastEditTime: 2026-06-11 20:02:17
 * @LastEditors: 山岚
 */
package era

import (
	"github.com/retro-tech/retrosnap/pkg/constant"
	"github.com/retro-tech/retrosnap/pkg/domain/model"
)

// Service 提供年代档案的只读查询。年代集合封闭，查询是全函数，没有失败路径。
type Service struct {
	profiles map[constant.EraID]*model.EraProfile
}

// NewService 构造函数，档案只在这里构造一次，之后只读。
func NewService() *Service {
	return &Service{profiles: buildProfiles()}
}

// NewServiceWithProfiles 用给定的档案表构造服务，供测试替换参数使用。
func NewServiceWithProfiles(profiles map[constant.EraID]*model.EraProfile) *Service {
	return &Service{profiles: profiles}
}

// Profile 按年代标识返回档案。标识集合封闭，调用方传入的必然是三个已定义值之一。
func (s *Service) Profile(id constant.EraID) *model.EraProfile {
	return s.profiles[id]
}

// 数值均为固定的风味参数表，不存在推导规则，按字面维护。
func buildProfiles() map[constant.EraID]*model.EraProfile {
	return map[constant.EraID]*model.EraProfile{
		constant.EraEarlyDigital: {
			ID:                constant.EraEarlyDigital,
			TargetWidth:       640,
			TargetHeight:      480,
			NoiseLevel:        0.35,
			ColorTemperature:  7100, // 偏冷偏蓝，早期 CCD 的典型发色
			Saturation:        0.85,
			Contrast:          1.18,
			Sharpness:         0.4,
			VignetteIntensity: 0.45,
			HasMotionBlur:     false,
			HasFlashEffect:    true,
			ISOValue:          200,
			CameraMake:        "RetroTech",
			CameraModel:       "DC-240 Classic",
			FocalLengthMin:    6.2,
			FocalLengthMax:    6.2,
			ApertureMin:       2.8,
			ApertureMax:       4.0,
		},
		constant.EraCompactDigital: {
			ID:                constant.EraCompactDigital,
			TargetWidth:       1600,
			TargetHeight:      1200,
			NoiseLevel:        0.22,
			ColorTemperature:  6050,
			Saturation:        1.12,
			Contrast:          1.08,
			Sharpness:         0.8,
			VignetteIntensity: 0.28,
			HasMotionBlur:     false,
			HasFlashEffect:    true,
			ISOValue:          100,
			CameraMake:        "RetroTech",
			CameraModel:       "CoolShot 35",
			FocalLengthMin:    7.7,
			FocalLengthMax:    7.7,
			ApertureMin:       2.6,
			ApertureMax:       5.6,
		},
		constant.EraSuperzoom: {
			ID:                constant.EraSuperzoom,
			TargetWidth:       2048,
			TargetHeight:      1536,
			NoiseLevel:        0.16,
			ColorTemperature:  5600,
			Saturation:        1.2,
			Contrast:          1.05,
			Sharpness:         1.1,
			VignetteIntensity: 0.2,
			HasMotionBlur:     true,
			HasFlashEffect:    false,
			ISOValue:          400,
			CameraMake:        "RetroTech",
			CameraModel:       "ZoomMaster Z12",
			FocalLengthMin:    6.3,
			FocalLengthMax:    63.0,
			ApertureMin:       2.8,
			ApertureMax:       8.0,
		},
	}
}
