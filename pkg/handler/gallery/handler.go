/*
 * @Description: 相册接口处理器
 * @Author: 山岚
 * @Date: 2025-10-13 10:40:07
 * @LastEditTime: 2026-06-15 21:12:48
 * @LastEditors: 山岚
 */
package gallery

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/retro-tech/retrosnap/pkg/constant"
	"github.com/retro-tech/retrosnap/pkg/domain/model"
	"github.com/retro-tech/retrosnap/pkg/response"
	"github.com/retro-tech/retrosnap/pkg/service/gallery"
)

type Handler struct {
	gallerySvc *gallery.Service
}

func NewHandler(gallerySvc *gallery.Service) *Handler {
	return &Handler{gallerySvc: gallerySvc}
}

// ListResponse 是相册分页列表的响应体。
type ListResponse struct {
	List  []*model.PhotoDTO `json:"list"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
}

// List 处理 GET /api/photos，支持 page / pageSize / era 查询参数。
func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	era := c.Query("era")

	if era != "" && !constant.IsValidEra(era) {
		response.Fail(c, http.StatusBadRequest, constant.ErrUnknownEra.Error())
		return
	}

	photos, total, err := h.gallerySvc.List(c.Request.Context(), model.ListPhotosOptions{
		Page:     page,
		PageSize: pageSize,
		Era:      era,
	})
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "查询相册失败: "+err.Error())
		return
	}

	dtos := make([]*model.PhotoDTO, 0, len(photos))
	for _, p := range photos {
		dto, err := h.gallerySvc.ToDTO(p)
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, "序列化照片失败: "+err.Error())
			return
		}
		dtos = append(dtos, dto)
	}

	response.Success(c, ListResponse{List: dtos, Total: total, Page: page}, "获取成功")
}

// Get 处理 GET /api/photos/:id，返回单张照片的元信息。
func (h *Handler) Get(c *gin.Context) {
	photo, err := h.gallerySvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.failByError(c, err, "查询照片失败")
		return
	}

	dto, err := h.gallerySvc.ToDTO(photo)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, "序列化照片失败: "+err.Error())
		return
	}
	response.Success(c, dto, "获取成功")
}

// Download 处理 GET /api/photos/:id/download，流式输出照片文件。
func (h *Handler) Download(c *gin.Context) {
	photo, reader, err := h.gallerySvc.Open(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.failByError(c, err, "打开照片失败")
		return
	}
	defer reader.Close()

	c.Header("Content-Type", "image/jpeg")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", photo.FileName))
	if photo.FileSize > 0 {
		c.Header("Content-Length", strconv.FormatInt(photo.FileSize, 10))
	}

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, reader); err != nil {
		// 响应头已发出，只能记录由框架层面处理
		_ = c.Error(err)
	}
}

// Delete 处理 DELETE /api/photos/:id，删除照片的索引与文件。
func (h *Handler) Delete(c *gin.Context) {
	if err := h.gallerySvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.failByError(c, err, "删除照片失败")
		return
	}
	response.Success(c, nil, "删除成功")
}

// failByError 把业务层的标准错误映射为对应的 HTTP 状态码。
func (h *Handler) failByError(c *gin.Context, err error, prefix string) {
	switch {
	case errors.Is(err, constant.ErrNotFound):
		response.Fail(c, http.StatusNotFound, "照片不存在")
	case errors.Is(err, constant.ErrGalleryReadOnly):
		response.Fail(c, http.StatusForbidden, err.Error())
	case errors.Is(err, constant.ErrBadRequest):
		response.Fail(c, http.StatusBadRequest, err.Error())
	default:
		response.Fail(c, http.StatusInternalServerError, prefix+": "+err.Error())
	}
}
