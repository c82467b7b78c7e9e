/*
 * @Description: 照片仓储的 GORM 实现
 * @Author: 山岚
 * @Date: 2025-09-24 15:31:47
 * @LastEditTime: 2026-06-18 17:50:29
 * @LastEditors: 山岚
 */
package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/retro-tech/retrosnap/pkg/constant"
	"github.com/retro-tech/retrosnap/pkg/domain/model"
	"github.com/retro-tech/retrosnap/pkg/domain/repository"
)

// photoPO 是照片在数据库中的持久化对象，与业务模型隔离。
type photoPO struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	FileName      string `gorm:"size:255;not null"`
	FilePath      string `gorm:"size:512;not null;uniqueIndex"`
	Era           string `gorm:"size:32;index;not null"`
	Width         int
	Height        int
	FileSize      int64
	Format        string `gorm:"size:16"`
	DominantColor string `gorm:"size:16"`
	Degraded      bool
	CameraMake    string `gorm:"size:64"`
	CameraModel   string `gorm:"size:64"`
	ISO           int
	TakenAt       time.Time `gorm:"index"`
}

func (photoPO) TableName() string { return "photos" }

type photoRepo struct {
	db *gorm.DB
}

// NewPhotoRepository 构造照片仓储。
func NewPhotoRepository(db *gorm.DB) repository.PhotoRepository {
	return &photoRepo{db: db}
}

func toModel(po *photoPO) *model.Photo {
	return &model.Photo{
		ID:            po.ID,
		CreatedAt:     po.CreatedAt,
		UpdatedAt:     po.UpdatedAt,
		FileName:      po.FileName,
		FilePath:      po.FilePath,
		Era:           constant.EraID(po.Era),
		Width:         po.Width,
		Height:        po.Height,
		FileSize:      po.FileSize,
		Format:        po.Format,
		DominantColor: po.DominantColor,
		Degraded:      po.Degraded,
		CameraMake:    po.CameraMake,
		CameraModel:   po.CameraModel,
		ISO:           po.ISO,
		TakenAt:       po.TakenAt,
	}
}

func toPO(m *model.Photo) *photoPO {
	return &photoPO{
		ID:            m.ID,
		FileName:      m.FileName,
		FilePath:      m.FilePath,
		Era:           string(m.Era),
		Width:         m.Width,
		Height:        m.Height,
		FileSize:      m.FileSize,
		Format:        m.Format,
		DominantColor: m.DominantColor,
		Degraded:      m.Degraded,
		CameraMake:    m.CameraMake,
		CameraModel:   m.CameraModel,
		ISO:           m.ISO,
		TakenAt:       m.TakenAt,
	}
}

func (r *photoRepo) Create(ctx context.Context, photo *model.Photo) error {
	po := toPO(photo)
	if err := r.db.WithContext(ctx).Create(po).Error; err != nil {
		return fmt.Errorf("写入照片记录失败: %w", err)
	}
	photo.ID = po.ID
	photo.CreatedAt = po.CreatedAt
	photo.UpdatedAt = po.UpdatedAt
	return nil
}

func (r *photoRepo) FindByID(ctx context.Context, id uint) (*model.Photo, error) {
	var po photoPO
	if err := r.db.WithContext(ctx).First(&po, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, constant.ErrNotFound
		}
		return nil, fmt.Errorf("查询照片记录失败: %w", err)
	}
	return toModel(&po), nil
}

func (r *photoRepo) List(ctx context.Context, opts model.ListPhotosOptions) ([]*model.Photo, int64, error) {
	query := r.db.WithContext(ctx).Model(&photoPO{})
	if opts.Era != "" {
		query = query.Where("era = ?", opts.Era)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("统计照片数量失败: %w", err)
	}

	var pos []photoPO
	err := query.
		Order("taken_at DESC").
		Offset((opts.Page - 1) * opts.PageSize).
		Limit(opts.PageSize).
		Find(&pos).Error
	if err != nil {
		return nil, 0, fmt.Errorf("查询照片列表失败: %w", err)
	}

	photos := make([]*model.Photo, 0, len(pos))
	for i := range pos {
		photos = append(photos, toModel(&pos[i]))
	}
	return photos, total, nil
}

func (r *photoRepo) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&photoPO{}, id)
	if result.Error != nil {
		return fmt.Errorf("删除照片记录失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return constant.ErrNotFound
	}
	return nil
}

func (r *photoRepo) UpdateDominantColor(ctx context.Context, id uint, color string) error {
	err := r.db.WithContext(ctx).
		Model(&photoPO{}).
		Where("id = ?", id).
		Update("dominant_color", color).Error
	if err != nil {
		return fmt.Errorf("更新主色调失败: %w", err)
	}
	return nil
}

func (r *photoRepo) ExistsByFilePath(ctx context.Context, filePath string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&photoPO{}).
		Where("file_path = ?", filePath).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("反查照片路径失败: %w", err)
	}
	return count > 0, nil
}
