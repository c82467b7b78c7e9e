/*
 * @Description:
 * @Author: 山岚
 * @Date: 2025-10-09 11:02:40
 * @LastEditTime: 2026-01-17 16:28:03
 * @LastEditors: 山岚
 */
package task

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/retro-tech/retrosnap/internal/infra/storage"
	"github.com/retro-tech/retrosnap/pkg/domain/repository"
)

// orphanMinAge 是孤儿文件的最小年龄。刚写入、尚未入库的文件
// 可能正处于持久化事务中间，不能当作孤儿清理。
const orphanMinAge = 24 * time.Hour

// OrphanSweepJob 负责清理磁盘上存在、但数据库中没有对应记录的照片文件。
// 这种不一致通常来自入库失败后的残留，或者人为误拷贝。
type OrphanSweepJob struct {
	store     storage.IStorageProvider
	photoRepo repository.PhotoRepository
}

// NewOrphanSweepJob 是任务的构造函数
func NewOrphanSweepJob(store storage.IStorageProvider, photoRepo repository.PhotoRepository) *OrphanSweepJob {
	return &OrphanSweepJob{
		store:     store,
		photoRepo: photoRepo,
	}
}

// Run 是 Job 接口要求实现的方法
func (j *OrphanSweepJob) Run() {
	ctx := context.Background()

	files, err := j.store.List(ctx)
	if err != nil {
		log.Printf("任务 '%s' 列举存储文件失败: %v", j.Name(), err)
		return
	}

	var swept int
	for _, f := range files {
		if !strings.HasSuffix(strings.ToLower(f.Name), ".jpg") {
			continue
		}
		if time.Since(f.ModTime) < orphanMinAge {
			continue
		}

		exists, err := j.photoRepo.ExistsByFilePath(ctx, f.RelPath)
		if err != nil {
			log.Printf("任务 '%s' 查询文件索引失败 (%s): %v", j.Name(), f.RelPath, err)
			continue
		}
		if exists {
			continue
		}

		if err := j.store.Delete(ctx, f.RelPath); err != nil {
			log.Printf("任务 '%s' 删除孤儿文件失败 (%s): %v", j.Name(), f.RelPath, err)
			continue
		}
		swept++
	}

	log.Printf("任务 '%s' 业务逻辑执行完毕，共清理了 %d 个孤儿文件。", j.Name(), swept)
}

// Name 方法让日志包装器可以打印出更有意义的任务名
func (j *OrphanSweepJob) Name() string {
	return "OrphanSweepJob"
}
