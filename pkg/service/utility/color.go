/*
 * @Description: 照片主色调提取服务
 * @Author: 山岚
 * @Date: 2025-09-24 09:18:44
 * @LastEditTime: 2026-05-09 16:44:31
 * @LastEditors: 山岚
 */
package utility

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/EdlinOrg/prominentcolor"
)

// ColorService 使用 K-Means 从照片中提取主色调，供相册 UI 做色块占位。
type ColorService struct{}

func NewColorService() *ColorService {
	return &ColorService{}
}

// GetPrimaryColor 返回 "#rrggbb" 形式的主色调。
func (s *ColorService) GetPrimaryColor(reader io.Reader) (string, error) {
	img, _, err := image.Decode(reader)
	if err != nil {
		return "", fmt.Errorf("解码图片失败: %w", err)
	}

	colors, err := prominentcolor.KmeansWithArgs(1, img)
	if err != nil {
		return "", fmt.Errorf("使用 prominentcolor (K-Means) 提取主色调失败: %w", err)
	}
	if len(colors) == 0 {
		return "", fmt.Errorf("prominentcolor (K-Means) 未能找到任何主色调")
	}

	c := colors[0].Color
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B), nil
}
