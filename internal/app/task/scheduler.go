/*
 * @Description:
 * @Author: 山岚
 * @Date: 2025-10-08 20:55:12
 * @LastEditTime: 2026-02-11 23:40:27
 * @LastEditors: 山岚
 */
package task

import (
	"log/slog"
	"os"

	"github.com/robfig/cron/v3"

	"github.com/retro-tech/retrosnap/internal/infra/storage"
	"github.com/retro-tech/retrosnap/pkg/domain/repository"
)

// Scheduler 封装了 cron 实例和其依赖。
// 它是整个定时任务模块的核心协调者，负责任务的注册、启动和停止。
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
	// 在这里注入所有任务可能需要的依赖
	store     storage.IStorageProvider
	photoRepo repository.PhotoRepository
}

// NewScheduler 是 Scheduler 的构造函数。
func NewScheduler(store storage.IStorageProvider, photoRepo repository.PhotoRepository) *Scheduler {
	slogHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	logger := slog.New(slogHandler).With("system", "cron")

	c := cron.New(
		cron.WithSeconds(),
		cron.WithChain(
			NewPanicRecoveryWrapper(logger),
			NewLoggingWrapper(logger),
			cron.DelayIfStillRunning(cron.DefaultLogger),
		),
	)

	return &Scheduler{
		cron:      c,
		logger:    logger,
		store:     store,
		photoRepo: photoRepo,
	}
}

// RegisterJobs 在调度器中注册所有定义好的定时任务。
func (s *Scheduler) RegisterJobs() {
	s.logger.Info("Registering all periodic jobs...")

	// --- 任务1: 清理没有索引记录的孤儿照片文件 ---
	orphanJob := NewOrphanSweepJob(s.store, s.photoRepo)

	_, err := s.cron.AddJob("0 30 4 * * *", orphanJob)
	if err != nil {
		s.logger.Error("Failed to add 'OrphanSweepJob'", slog.Any("error", err))
		os.Exit(1)
	}
	s.logger.Info("-> Successfully registered 'OrphanSweepJob'", "schedule", "every day at 4:30:00 AM")

	s.logger.Info("All periodic jobs registered.")
}

// Start 启动 cron 调度器。
func (s *Scheduler) Start() {
	s.logger.Info("Cron scheduler started.")
	s.cron.Start()
}

// Stop 优雅地停止 cron 调度器。
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Cron scheduler gracefully stopped.")
}
