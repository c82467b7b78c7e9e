/*
 * @Description: 照片仓储接口
 * @Author: 山岚
 * @Date: 2025-09-16 14:40:19
 * @LastEditTime: 2026-03-08 18:22:34
 * @LastEditors: 山岚
 */
package repository

import (
	"context"

	"github.com/retro-tech/retrosnap/pkg/domain/model"
)

// PhotoRepository 定义了照片索引的持久化操作。
type PhotoRepository interface {
	Create(ctx context.Context, photo *model.Photo) error
	FindByID(ctx context.Context, id uint) (*model.Photo, error)
	List(ctx context.Context, opts model.ListPhotosOptions) ([]*model.Photo, int64, error)
	Delete(ctx context.Context, id uint) error
	UpdateDominantColor(ctx context.Context, id uint, color string) error
	// ExistsByFilePath 供孤儿文件清理任务反查存储路径是否仍有索引。
	ExistsByFilePath(ctx context.Context, filePath string) (bool, error)
}
