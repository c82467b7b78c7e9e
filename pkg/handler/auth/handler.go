/*
 * @Description: 认证接口处理器
 * @Author: 山岚
 * @Date: 2025-10-13 09:31:42
 * @LastEditTime: 2026-02-20 17:05:11
 * @LastEditors: 山岚
 */
package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/retro-tech/retrosnap/pkg/response"
	service_auth "github.com/retro-tech/retrosnap/pkg/service/auth"
)

type Handler struct {
	tokenSvc service_auth.TokenService
}

func NewHandler(tokenSvc service_auth.TokenService) *Handler {
	return &Handler{tokenSvc: tokenSvc}
}

// TokenRequest 是签发令牌接口的请求体。
type TokenRequest struct {
	UserName string `json:"userName" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse 是签发令牌接口的响应体。
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresAt   int64  `json:"expiresAt"`
}

// IssueToken 处理 POST /api/auth/token，校验管理员凭据并签发访问令牌。
func (h *Handler) IssueToken(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "请求参数错误: "+err.Error())
		return
	}

	token, expiresAt, err := h.tokenSvc.IssueToken(c.Request.Context(), req.UserName, req.Password)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, "用户名或密码错误")
		return
	}

	response.Success(c, TokenResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt.Unix(),
	}, "登录成功")
}
