/*
 * @Description: 路由注册
 * @Author: 山岚
 * @Date: 2025-10-14 09:12:33
 * @LastEditTime: 2026-06-28 20:44:51
 * @LastEditors: 山岚
 */
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/retro-tech/retrosnap/internal/app/middleware"
	auth_handler "github.com/retro-tech/retrosnap/pkg/handler/auth"
	capture_handler "github.com/retro-tech/retrosnap/pkg/handler/capture"
	gallery_handler "github.com/retro-tech/retrosnap/pkg/handler/gallery"
)

// Router 聚合所有 Handler，负责把路由注册到 Gin 引擎。
type Router struct {
	authHandler    *auth_handler.Handler
	captureHandler *capture_handler.Handler
	galleryHandler *gallery_handler.Handler
	mw             *middleware.Middleware
}

func NewRouter(
	authHandler *auth_handler.Handler,
	captureHandler *capture_handler.Handler,
	galleryHandler *gallery_handler.Handler,
	mw *middleware.Middleware,
) *Router {
	return &Router{
		authHandler:    authHandler,
		captureHandler: captureHandler,
		galleryHandler: galleryHandler,
		mw:             mw,
	}
}

// Setup 将所有路由注册到 Gin 引擎。
// 这是在启动流程中被调用的唯一入口点。
func (r *Router) Setup(engine *gin.Engine) {
	engine.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	apiGroup := engine.Group("/api")

	r.registerAuthRoutes(apiGroup)
	r.registerCaptureRoutes(apiGroup)
	r.registerGalleryRoutes(apiGroup)
}

// registerAuthRoutes 注册认证相关的路由
func (r *Router) registerAuthRoutes(api *gin.RouterGroup) {
	auth := api.Group("/auth")
	{
		auth.POST("/token", r.authHandler.IssueToken)
	}
}

// registerCaptureRoutes 注册拍摄相关的路由
func (r *Router) registerCaptureRoutes(api *gin.RouterGroup) {
	api.GET("/capture/eras", r.captureHandler.Eras)

	capture := api.Group("/capture").Use(r.mw.JWTAuth())
	{
		capture.POST("", r.captureHandler.Shutter)
	}
}

// registerGalleryRoutes 注册相册相关的路由
func (r *Router) registerGalleryRoutes(api *gin.RouterGroup) {
	// 读取接口公开
	photos := api.Group("/photos")
	{
		photos.GET("", r.galleryHandler.List)
		photos.GET("/:id", r.galleryHandler.Get)
		photos.GET("/:id/download", r.galleryHandler.Download)
	}

	// 写接口需要认证
	photosAdmin := api.Group("/photos").Use(r.mw.JWTAuth())
	{
		photosAdmin.DELETE("/:id", r.galleryHandler.Delete)
	}
}
