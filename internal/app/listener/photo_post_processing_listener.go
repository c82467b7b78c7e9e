/*
 * @Description: 统一监听 PhotoPersisted 事件，并协调分发所有后续的后台处理任务。
 * @Author: 山岚
 * @Date: 2025-10-11 17:36:20
 * @LastEditTime: 2026-04-03 13:58:46
 * @LastEditors: 山岚
 */
package listener

import (
	"context"
	"log"

	"github.com/retro-tech/retrosnap/internal/infra/storage"
	"github.com/retro-tech/retrosnap/internal/pkg/event"
	"github.com/retro-tech/retrosnap/pkg/domain/repository"
	"github.com/retro-tech/retrosnap/pkg/service/utility"
)

// PhotoPostProcessingListener 监听 PhotoPersisted 事件，
// 在后台补全照片的主色调信息，不阻塞快门路径。
type PhotoPostProcessingListener struct {
	store     storage.IStorageProvider
	photoRepo repository.PhotoRepository
	colorSvc  *utility.ColorService
}

// NewPhotoPostProcessingListener 是 PhotoPostProcessingListener 的构造函数。
// 它订阅 PhotoPersisted 事件，并成为照片后处理任务的唯一入口。
func NewPhotoPostProcessingListener(
	bus *event.Bus,
	store storage.IStorageProvider,
	photoRepo repository.PhotoRepository,
	colorSvc *utility.ColorService,
) (*PhotoPostProcessingListener, error) {
	listener := &PhotoPostProcessingListener{
		store:     store,
		photoRepo: photoRepo,
		colorSvc:  colorSvc,
	}
	if err := bus.SubscribeAsync(event.PhotoPersisted, listener.handlePhotoPersisted); err != nil {
		return nil, err
	}
	return listener, nil
}

// handlePhotoPersisted 是事件处理器，负责提取照片主色调并回写索引。
func (l *PhotoPostProcessingListener) handlePhotoPersisted(photoID uint) {
	log.Printf("[PhotoPostProcessingListener] 收到 PhotoPersisted 事件 for PhotoID %d，开始提取主色调...", photoID)

	ctx := context.Background()

	photo, err := l.photoRepo.FindByID(ctx, photoID)
	if err != nil {
		log.Printf("[PhotoPostProcessingListener] 错误: 查询 PhotoID %d 失败: %v", photoID, err)
		return
	}

	reader, err := l.store.Get(ctx, photo.FilePath)
	if err != nil {
		log.Printf("[PhotoPostProcessingListener] 错误: 读取照片文件 %s 失败: %v", photo.FilePath, err)
		return
	}
	defer reader.Close()

	color, err := l.colorSvc.GetPrimaryColor(reader)
	if err != nil {
		log.Printf("[PhotoPostProcessingListener] 错误: 为 PhotoID %d 提取主色调失败: %v", photoID, err)
		return
	}

	if err := l.photoRepo.UpdateDominantColor(ctx, photoID, color); err != nil {
		log.Printf("[PhotoPostProcessingListener] 错误: 回写 PhotoID %d 主色调失败: %v", photoID, err)
		return
	}

	log.Printf("[PhotoPostProcessingListener] -> PhotoID %d 主色调提取完成: %s", photoID, color)
}
