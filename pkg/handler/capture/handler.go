/*
 * @Description: 拍摄接口处理器
 * @Author: 山岚
 * @Date: 2025-10-13 10:02:55
 * @LastEditTime: 2026-05-21 22:37:09
 * @LastEditors: 山岚
 */
package capture

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/retro-tech/retrosnap/pkg/constant"
	"github.com/retro-tech/retrosnap/pkg/response"
	"github.com/retro-tech/retrosnap/pkg/service/capture"
	"github.com/retro-tech/retrosnap/pkg/service/gallery"
)

type Handler struct {
	session    *capture.Session
	gallerySvc *gallery.Service
}

func NewHandler(session *capture.Session, gallerySvc *gallery.Service) *Handler {
	return &Handler{
		session:    session,
		gallerySvc: gallerySvc,
	}
}

// Shutter 处理 POST /api/capture。
// 接收一张上传图片（multipart 字段 "file"）和可选的 era 参数，
// 同步走完效果管线并入库，返回照片 DTO。
func (h *Handler) Shutter(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "缺少上传文件: "+err.Error())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Fail(c, http.StatusBadRequest, "打开上传文件失败: "+err.Error())
		return
	}
	defer file.Close()

	era := c.PostForm("era")
	if era == "" {
		era = c.Query("era")
	}

	frame, err := h.session.Shutter(c.Request.Context(), file, era)
	if err != nil {
		switch {
		case errors.Is(err, constant.ErrUnknownEra):
			response.Fail(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, constant.ErrBadRequest):
			response.Fail(c, http.StatusBadRequest, err.Error())
		default:
			response.Fail(c, http.StatusInternalServerError, "拍摄失败: "+err.Error())
		}
		return
	}

	photo, err := h.gallerySvc.Persist(c.Request.Context(), frame)
	if err != nil {
		if errors.Is(err, constant.ErrGalleryReadOnly) {
			response.Fail(c, http.StatusForbidden, err.Error())
			return
		}
		response.Fail(c, http.StatusInternalServerError, "保存照片失败: "+err.Error())
		return
	}

	dto, err := h.gallerySvc.ToDTO(photo)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "序列化照片失败: "+err.Error())
		return
	}

	response.SuccessWithStatus(c, http.StatusCreated, dto, "拍摄成功")
}

// Eras 处理 GET /api/capture/eras，返回全部可用的相机年代标识。
func (h *Handler) Eras(c *gin.Context) {
	response.Success(c, constant.AllEras, "获取成功")
}
