/*
 * @Description: 合成 EXIF 元数据记录
 * @Author: 山岚
 * @Date: 2025-09-15 10:31:12
 * @LastEditTime: 2026-06-11 19:40:01
 * @LastEditors: 山岚
 */
package model

import (
	"fmt"
	"strconv"
)

// MetadataRecord 是为一张照片合成的相机/曝光元数据。
// 每次拍摄生成一份，随文件持久化，之后不再修改。
// 字段名沿用 EXIF 标签的习惯命名，键集合本身是外部约定，不由本项目定义。
type MetadataRecord struct {
	DateTimeOriginal  string  `json:"dateTimeOriginal"`  // 格式 yyyy:MM:dd HH:mm:ss
	DateTimeDigitized string  `json:"dateTimeDigitized"` // 与 DateTimeOriginal 相同
	CameraMake        string  `json:"make"`
	CameraModel       string  `json:"model"`
	ISO               int     `json:"iso"`
	FlashFired        bool    `json:"flashFired"`
	FocalLengthMM     float64 `json:"focalLength"` // 毫米
	FNumber           float64 `json:"fNumber"`
	ShutterSpeed      string  `json:"shutterSpeed"` // 形如 "1/125"
	PixelXDimension   int     `json:"pixelXDimension"`
	PixelYDimension   int     `json:"pixelYDimension"`
	GPSLatitude       float64 `json:"gpsLatitude"`
	GPSLongitude      float64 `json:"gpsLongitude"`
	Software          string  `json:"software"`
}

// Tags 把记录展开成 EXIF 标签名到字符串值的映射，供接口展示和调试使用。
func (r *MetadataRecord) Tags() map[string]string {
	flash := "0"
	if r.FlashFired {
		flash = "1"
	}
	return map[string]string{
		"DateTimeOriginal":  r.DateTimeOriginal,
		"DateTimeDigitized": r.DateTimeDigitized,
		"Make":              r.CameraMake,
		"Model":             r.CameraModel,
		"ISOSpeedRatings":   strconv.Itoa(r.ISO),
		"Flash":             flash,
		"FocalLength":       fmt.Sprintf("%.1fmm", r.FocalLengthMM),
		"FNumber":           fmt.Sprintf("f/%.1f", r.FNumber),
		"ExposureTime":      r.ShutterSpeed,
		"PixelXDimension":   strconv.Itoa(r.PixelXDimension),
		"PixelYDimension":   strconv.Itoa(r.PixelYDimension),
		"GPSLatitude":       strconv.FormatFloat(r.GPSLatitude, 'f', 4, 64),
		"GPSLongitude":      strconv.FormatFloat(r.GPSLongitude, 'f', 4, 64),
		"Software":          r.Software,
	}
}
