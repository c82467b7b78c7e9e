/*
 * @Description: 相机年代档案（EraProfile）核心业务模型
 * @Author: 山岚
 * @Date: 2025-09-14 13:21:40
 * @LastEditTime: 2026-05-30 22:41:09
 * @LastEditors: 山岚
 */
package model

import "github.com/retro-tech/retrosnap/pkg/constant"

// EraProfile 描述一代模拟相机的成像参数。
// 每个年代标识对应一份档案，构造一次之后只读，任何阶段都不得修改它。
type EraProfile struct {
	ID constant.EraID `json:"id"`

	// TargetWidth/TargetHeight 是目标分辨率的外接框，恒为正数。
	// 缩放阶段保持纵横比，把较大的一边缩进这个框内。
	TargetWidth  int `json:"targetWidth"`
	TargetHeight int `json:"targetHeight"`

	// NoiseLevel 合成传感器噪点的混合强度，取值 [0,1]。
	NoiseLevel float64 `json:"noiseLevel"`

	// ColorTemperature 白平衡偏移的色温（开尔文），6500 为中性。
	ColorTemperature float64 `json:"colorTemperature"`

	// Saturation/Contrast 为乘性系数，1 表示不变。
	Saturation float64 `json:"saturation"`
	Contrast   float64 `json:"contrast"`

	// Sharpness 锐化强度，0 为无操作。
	Sharpness float64 `json:"sharpness"`

	// VignetteIntensity 暗角强度，取值 [0,1]，0 为无操作。
	VignetteIntensity float64 `json:"vignetteIntensity"`

	// HasMotionBlur 控制是否启用随机角度的运动模糊阶段。
	HasMotionBlur bool `json:"hasMotionBlur"`

	// HasFlashEffect 仅影响元数据里的闪光灯标记。
	HasFlashEffect bool `json:"hasFlashEffect"`

	// ISOValue 只写入元数据，不参与像素处理。
	ISOValue int `json:"isoValue"`

	// CameraMake/CameraModel 是机身厂商与型号的固定文案。
	CameraMake  string `json:"cameraMake"`
	CameraModel string `json:"cameraModel"`

	// FocalLengthMin/Max 焦距范围（毫米）。定焦年代两值相等，长焦年代为变焦区间。
	FocalLengthMin float64 `json:"focalLengthMin"`
	FocalLengthMax float64 `json:"focalLengthMax"`

	// ApertureMin/Max 光圈范围（F 值）。
	ApertureMin float64 `json:"apertureMin"`
	ApertureMax float64 `json:"apertureMax"`
}
