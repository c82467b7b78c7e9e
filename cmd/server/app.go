/*
 * @Description:
 * @Author: 山岚
 * @Date: 2025-10-15 08:50:21
 * @LastEditTime: 2026-07-19 23:05:37
 * @LastEditors: 山岚
 */
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/retro-tech/retrosnap/internal/app/listener"
	"github.com/retro-tech/retrosnap/internal/app/middleware"
	"github.com/retro-tech/retrosnap/internal/app/task"
	"github.com/retro-tech/retrosnap/internal/infra/persistence"
	"github.com/retro-tech/retrosnap/internal/infra/router"
	"github.com/retro-tech/retrosnap/internal/infra/storage"
	"github.com/retro-tech/retrosnap/internal/pkg/auth"
	"github.com/retro-tech/retrosnap/internal/pkg/event"
	"github.com/retro-tech/retrosnap/pkg/config"
	"github.com/retro-tech/retrosnap/pkg/constant"
	auth_handler "github.com/retro-tech/retrosnap/pkg/handler/auth"
	capture_handler "github.com/retro-tech/retrosnap/pkg/handler/capture"
	gallery_handler "github.com/retro-tech/retrosnap/pkg/handler/gallery"
	"github.com/retro-tech/retrosnap/pkg/idgen"
	auth_service "github.com/retro-tech/retrosnap/pkg/service/auth"
	capture_service "github.com/retro-tech/retrosnap/pkg/service/capture"
	"github.com/retro-tech/retrosnap/pkg/service/era"
	"github.com/retro-tech/retrosnap/pkg/service/exifwriter"
	gallery_service "github.com/retro-tech/retrosnap/pkg/service/gallery"
	"github.com/retro-tech/retrosnap/pkg/service/metadata"
	"github.com/retro-tech/retrosnap/pkg/service/pipeline"
	"github.com/retro-tech/retrosnap/pkg/service/utility"
)

// App 结构体，用于封装应用的所有核心组件
type App struct {
	cfg       *config.Config
	engine    *gin.Engine
	db        *gorm.DB
	bus       *event.Bus
	scheduler *task.Scheduler
	session   *capture_service.Session
	galleries *gallery_service.Service
}

// NewApp 构建整个应用：加载配置、初始化基础设施、装配业务服务和路由。
func NewApp() (*App, func(), error) {
	// --- Phase 1: 加载外部配置 ---
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("加载配置失败: %w", err)
	}

	debug := cfg.GetBool(config.KeyServerDebug)
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// --- Phase 2: 初始化基础设施 ---
	dbPath := cfg.GetString(config.KeyDBPath)
	if dbPath == "" {
		dbPath = "data/retrosnap.db"
	}
	db, err := persistence.OpenDatabase(dbPath, debug)
	if err != nil {
		return nil, nil, fmt.Errorf("打开数据库失败: %w", err)
	}

	basePath := cfg.GetString(config.KeyGalleryBasePath)
	if basePath == "" {
		basePath = "data/gallery"
	}
	store, err := storage.NewLocalProvider(basePath)
	if err != nil {
		return nil, nil, fmt.Errorf("初始化相册存储失败: %w", err)
	}

	bus := event.NewBus()

	// --- Phase 2.5: 初始化 ID 编码器 ---
	if seed := cfg.GetString(config.KeyIDSeed); seed != "" {
		err = idgen.InitSqidsEncoderWithSeed(seed)
	} else {
		err = idgen.InitSqidsEncoder()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("初始化 ID 编码器失败: %w", err)
	}
	log.Println("✅ ID 编码器初始化成功")

	// --- Phase 3: 初始化数据仓库层 ---
	photoRepo := persistence.NewPhotoRepository(db)

	// --- Phase 4: 初始化业务逻辑层 ---
	eraSvc := era.NewService()

	var pipelineOpts []pipeline.Option
	if q := cfg.GetInt(config.KeyPipelineJPEGQuality); q > 0 {
		pipelineOpts = append(pipelineOpts, pipeline.WithJPEGQuality(q))
	}
	pipelineSvc, err := pipeline.NewService(eraSvc, pipelineOpts...)
	if err != nil {
		return nil, nil, fmt.Errorf("初始化效果管线失败: %w", err)
	}

	metaSvc := metadata.NewService()
	exifW := exifwriter.NewWriter()
	gate := auth_service.NewPersistGate(cfg.GetBool(config.KeyGalleryReadOnly))

	gallerySvc := gallery_service.NewService(photoRepo, store, pipelineSvc, eraSvc, metaSvc, exifW, gate, bus)

	defaultEra := constant.EraID(cfg.GetString(config.KeyCaptureDefaultEra))
	if !constant.IsValidEra(string(defaultEra)) {
		defaultEra = constant.EraCompactDigital
	}
	interval := time.Duration(cfg.GetInt(config.KeyCaptureIntervalSeconds)) * time.Second
	session := capture_service.NewSession(defaultEra, interval)

	jwtSecret := []byte(cfg.GetString(config.KeyJWTSecret))
	if len(jwtSecret) == 0 {
		// 配置留空时随机生成，与默认配置文件中的说明保持一致
		jwtSecret, err = auth.GenerateRandomSecret()
		if err != nil {
			return nil, nil, fmt.Errorf("生成 JWT 密钥失败: %w", err)
		}
		log.Println("提示: 未配置 JwtSecret，已生成随机密钥（重启后已签发的令牌将失效）。")
	}
	tokenSvc := auth_service.NewTokenService(
		jwtSecret,
		cfg.GetString(config.KeyAdminUser),
		cfg.GetString(config.KeyAdminPassword),
	)

	// --- Phase 5: 注册事件监听器 ---
	colorSvc := utility.NewColorService()
	if _, err := listener.NewPhotoPostProcessingListener(bus, store, photoRepo, colorSvc); err != nil {
		return nil, nil, fmt.Errorf("注册照片后处理监听器失败: %w", err)
	}

	// --- Phase 6: 初始化 Handler 层与路由 ---
	mw := middleware.NewMiddleware(tokenSvc)
	authHandler := auth_handler.NewHandler(tokenSvc)
	captureHandler := capture_handler.NewHandler(session, gallerySvc)
	galleryHandler := gallery_handler.NewHandler(gallerySvc)

	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery(), middleware.Cors())
	router.NewRouter(authHandler, captureHandler, galleryHandler, mw).Setup(engine)

	// --- Phase 7: 初始化定时任务调度器 ---
	scheduler := task.NewScheduler(store, photoRepo)

	app := &App{
		cfg:       cfg,
		engine:    engine,
		db:        db,
		bus:       bus,
		scheduler: scheduler,
		session:   session,
		galleries: gallerySvc,
	}

	cleanup := func() {
		log.Println("执行清理操作：等待异步事件处理完成...")
		bus.WaitAsync()
		if sqlDB, err := db.DB(); err == nil {
			log.Println("关闭数据库连接...")
			sqlDB.Close()
		}
	}

	return app, cleanup, nil
}

// runFrameWorker 消费自拍定时器产生的帧，逐帧走完整的持久化流程。
func (a *App) runFrameWorker() {
	for frame := range a.session.Frames() {
		photo, err := a.galleries.Persist(context.Background(), frame)
		if err != nil {
			log.Printf("[FrameWorker] 定时帧保存失败: %v", err)
			continue
		}
		log.Printf("[FrameWorker] 定时帧已保存: %s", photo.FileName)
	}
}

func (a *App) Run() error {
	a.scheduler.RegisterJobs()
	a.scheduler.Start()

	a.session.Start()
	go a.runFrameWorker()

	port := a.cfg.GetString(config.KeyServerPort)
	if port == "" {
		port = "8091"
	}
	fmt.Printf("应用程序启动成功，正在监听端口: %s\n", port)

	return a.engine.Run(":" + port)
}

func (a *App) Stop() {
	if a.session != nil {
		a.session.Stop()
		log.Println("拍摄会话已停止。")
	}
	if a.scheduler != nil {
		a.scheduler.Stop()
		log.Println("任务调度器已停止。")
	}
}
