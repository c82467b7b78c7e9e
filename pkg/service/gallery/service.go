/*
 * @Description: 相册服务：授权 → 管线 → EXIF → 落盘 → 建索引
 * @Author: 山岚
 * @Date: 2025-09-24 10:30:26
 * @LastEditTime: 2026-08-06 18:22:40
 * @LastEditors: 山岚
 */
package gallery

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/retro-tech/retrosnap/internal/infra/storage"
	"github.com/retro-tech/retrosnap/internal/pkg/event"
	"github.com/retro-tech/retrosnap/pkg/constant"
	"github.com/retro-tech/retrosnap/pkg/domain/model"
	"github.com/retro-tech/retrosnap/pkg/domain/repository"
	"github.com/retro-tech/retrosnap/pkg/idgen"
	"github.com/retro-tech/retrosnap/pkg/service/era"
	"github.com/retro-tech/retrosnap/pkg/service/exifwriter"
	"github.com/retro-tech/retrosnap/pkg/service/metadata"
	"github.com/retro-tech/retrosnap/pkg/service/pipeline"
)

// Authorizer 是持久化前的授权协作方。
type Authorizer interface {
	CanPersist(ctx context.Context) error
}

// Service 消费 CapturedFrame，产出已持久化的 Photo。
// 一次拍摄对应一张照片、一份档案、一份元数据，三者一一对应，从不跨拍摄共享。
type Service struct {
	repo      repository.PhotoRepository
	store     storage.IStorageProvider
	processor pipeline.Processor
	eraSvc    *era.Service
	metaSvc   *metadata.Service
	exifW     *exifwriter.Writer
	authz     Authorizer
	bus       *event.Bus
}

func NewService(
	repo repository.PhotoRepository,
	store storage.IStorageProvider,
	processor pipeline.Processor,
	eraSvc *era.Service,
	metaSvc *metadata.Service,
	exifW *exifwriter.Writer,
	authz Authorizer,
	bus *event.Bus,
) *Service {
	return &Service{
		repo:      repo,
		store:     store,
		processor: processor,
		eraSvc:    eraSvc,
		metaSvc:   metaSvc,
		exifW:     exifW,
		authz:     authz,
		bus:       bus,
	}
}

// Persist 完成一帧的完整保存流程。
// 管线整体失败时回退保存未处理的原始帧（同样附带元数据），拍摄永不静默丢失。
func (s *Service) Persist(ctx context.Context, frame *model.CapturedFrame) (*model.Photo, error) {
	if err := s.authz.CanPersist(ctx); err != nil {
		return nil, err
	}

	profile := s.eraSvc.Profile(frame.EraID)
	if profile == nil {
		return nil, fmt.Errorf("%w: %s", constant.ErrUnknownEra, frame.EraID)
	}

	record := s.metaSvc.Synthesize(profile, frame.CapturedAt)

	var (
		data     []byte
		width    int
		height   int
		degraded bool
	)

	processed, err := s.processor.Process(ctx, frame)
	if err != nil {
		log.Printf("[Gallery] 效果管线失败，回退保存原始帧: %v", err)
		degraded = true
		data, err = s.originalJPEG(frame)
		if err != nil {
			return nil, fmt.Errorf("管线失败且原始帧无法编码: %w", err)
		}
		b := frame.Image.Bounds()
		width, height = b.Dx(), b.Dy()
	} else {
		data = processed.Data
		width, height = processed.Width, processed.Height
	}

	// 元数据嵌入失败只降级：照片仍然保存，EXIF 缺失
	if withExif, err := s.exifW.Embed(data, record); err != nil {
		log.Printf("[Gallery] 嵌入 EXIF 失败，保存无元数据版本: %v", err)
	} else {
		data = withExif
	}

	fileName := fmt.Sprintf("IMG_%s_%s.jpg",
		frame.CapturedAt.Format("20060102_150405"), uuid.New().String()[:8])
	relPath := filepath.Join(frame.CapturedAt.Format("2006/01"), fileName)

	if err := s.store.Save(ctx, relPath, data); err != nil {
		return nil, fmt.Errorf("写入相册存储失败: %w", err)
	}

	photo := &model.Photo{
		FileName:    fileName,
		FilePath:    relPath,
		Era:         frame.EraID,
		Width:       width,
		Height:      height,
		FileSize:    int64(len(data)),
		Format:      "jpeg",
		Degraded:    degraded,
		CameraMake:  record.CameraMake,
		CameraModel: record.CameraModel,
		ISO:         record.ISO,
		TakenAt:     frame.CapturedAt,
	}
	if err := s.repo.Create(ctx, photo); err != nil {
		// 索引失败时清掉孤儿文件，保持存储与索引一致
		if delErr := s.store.Delete(ctx, relPath); delErr != nil {
			log.Printf("[Gallery] 回滚存储文件失败: %v", delErr)
		}
		return nil, fmt.Errorf("建立照片索引失败: %w", err)
	}

	s.bus.Publish(event.PhotoPersisted, photo.ID)
	log.Printf("[Gallery] 照片已保存: %s (年代 %s, %dx%d, 降级=%v)",
		relPath, frame.EraID, width, height, degraded)

	return photo, nil
}

// originalJPEG 返回原始帧的 JPEG 字节，非 JPEG 上传会被转一次码。
func (s *Service) originalJPEG(frame *model.CapturedFrame) ([]byte, error) {
	if frame.Format == "jpeg" && len(frame.Raw) > 0 {
		return frame.Raw, nil
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, frame.Image, imaging.JPEG, imaging.JPEGQuality(92)); err != nil {
		return nil, fmt.Errorf("原始帧编码失败: %w", err)
	}
	return buf.Bytes(), nil
}

// List 分页列出照片。
func (s *Service) List(ctx context.Context, opts model.ListPhotosOptions) ([]*model.Photo, int64, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.PageSize < 1 || opts.PageSize > 100 {
		opts.PageSize = 20
	}
	if opts.Era != "" && !constant.IsValidEra(opts.Era) {
		return nil, 0, fmt.Errorf("%w: %s", constant.ErrUnknownEra, opts.Era)
	}
	return s.repo.List(ctx, opts)
}

// Get 按公共 ID 取单张照片。
func (s *Service) Get(ctx context.Context, publicID string) (*model.Photo, error) {
	id, err := s.decodePublicID(publicID)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

// Open 返回照片文件的读取器，供下载接口流式输出。
func (s *Service) Open(ctx context.Context, publicID string) (*model.Photo, io.ReadCloser, error) {
	photo, err := s.Get(ctx, publicID)
	if err != nil {
		return nil, nil, err
	}
	reader, err := s.store.Get(ctx, photo.FilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("打开照片文件失败: %w", err)
	}
	return photo, reader, nil
}

// Delete 删除照片的索引与文件。
func (s *Service) Delete(ctx context.Context, publicID string) error {
	if err := s.authz.CanPersist(ctx); err != nil {
		return err
	}

	id, err := s.decodePublicID(publicID)
	if err != nil {
		return err
	}
	photo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("删除照片索引失败: %w", err)
	}
	if err := s.store.Delete(ctx, photo.FilePath); err != nil {
		log.Printf("[Gallery] 删除照片文件失败（索引已删）: %v", err)
	}

	s.bus.Publish(event.PhotoDeleted, id)
	return nil
}

// ToDTO 把业务模型转为对外 DTO，数据库 ID 混淆为公共 ID。
func (s *Service) ToDTO(photo *model.Photo) (*model.PhotoDTO, error) {
	publicID, err := idgen.GeneratePublicID(photo.ID, idgen.EntityTypePhoto)
	if err != nil {
		return nil, fmt.Errorf("生成照片公共ID失败: %w", err)
	}
	return &model.PhotoDTO{
		ID:            publicID,
		FileName:      photo.FileName,
		Era:           string(photo.Era),
		Width:         photo.Width,
		Height:        photo.Height,
		FileSize:      photo.FileSize,
		Format:        photo.Format,
		DominantColor: photo.DominantColor,
		Degraded:      photo.Degraded,
		CameraMake:    photo.CameraMake,
		CameraModel:   photo.CameraModel,
		ISO:           photo.ISO,
		TakenAt:       photo.TakenAt,
		CreatedAt:     photo.CreatedAt,
	}, nil
}

func (s *Service) decodePublicID(publicID string) (uint, error) {
	id, entityType, err := idgen.DecodePublicID(publicID)
	if err != nil || entityType != idgen.EntityTypePhoto {
		return 0, fmt.Errorf("%w: 非法的照片ID", constant.ErrBadRequest)
	}
	return id, nil
}
