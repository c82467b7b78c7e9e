/*
 * @Description: 相册照片核心业务模型
 * @Author: 山岚
 * @Date: 2025-09-16 14:05:31
 * @LastEditTime: 2026-07-19 21:12:48
 * @LastEditors: 山岚
 */
package model

import (
	"time"

	"github.com/retro-tech/retrosnap/pkg/constant"
)

// Photo 是相册里的一张已持久化照片。
type Photo struct {
	ID        uint      `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	FileName string         `json:"fileName"`
	FilePath string         `json:"filePath"` // 相对相册根目录的存储路径
	Era      constant.EraID `json:"era"`

	Width    int    `json:"width"`
	Height   int    `json:"height"`
	FileSize int64  `json:"fileSize"`
	Format   string `json:"format"`

	// DominantColor 是持久化之后由监听器异步提取的主色调，形如 "#aabbcc"。
	DominantColor string `json:"dominantColor"`

	// Degraded 为 true 表示效果管线整体失败，保存的是未处理的原始帧。
	Degraded bool `json:"degraded"`

	CameraMake  string    `json:"cameraMake"`
	CameraModel string    `json:"cameraModel"`
	ISO         int       `json:"iso"`
	TakenAt     time.Time `json:"takenAt"`
}

// PhotoDTO 是对外返回的照片数据传输对象，ID 一律使用公共 ID。
type PhotoDTO struct {
	ID            string    `json:"id"`
	FileName      string    `json:"fileName"`
	Era           string    `json:"era"`
	Width         int       `json:"width"`
	Height        int       `json:"height"`
	FileSize      int64     `json:"fileSize"`
	Format        string    `json:"format"`
	DominantColor string    `json:"dominantColor"`
	Degraded      bool      `json:"degraded"`
	CameraMake    string    `json:"cameraMake"`
	CameraModel   string    `json:"cameraModel"`
	ISO           int       `json:"iso"`
	TakenAt       time.Time `json:"takenAt"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ListPhotosOptions 是相册分页查询的参数。
type ListPhotosOptions struct {
	Page     int
	PageSize int
	Era      string // 为空表示不过滤
}
