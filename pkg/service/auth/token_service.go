/*
 * @Description: 令牌服务
 * @Author: 山岚
 * @Date: 2025-09-23 14:20:33
 * @LastEditTime: 2026-04-26 21:40:12
 * @LastEditors: 山岚
 */
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/retro-tech/retrosnap/internal/pkg/auth"
	"github.com/retro-tech/retrosnap/pkg/constant"
)

// TokenService 定义令牌的签发与解析。
type TokenService interface {
	// IssueToken 校验凭据并签发访问令牌，返回令牌与过期时间。
	IssueToken(ctx context.Context, userName, password string) (string, time.Time, error)
	// ParseAccessToken 校验并解析访问令牌。
	ParseAccessToken(ctx context.Context, tokenString string) (*auth.CustomClaims, error)
}

type jwtTokenService struct {
	secret        []byte
	adminUser     string
	adminPassword string
}

// NewTokenService 构造基于 JWT 的令牌服务。
// 单用户场景：凭据来自配置，管理员的数据库 ID 约定为 1。
func NewTokenService(secret []byte, adminUser, adminPassword string) TokenService {
	return &jwtTokenService{
		secret:        secret,
		adminUser:     adminUser,
		adminPassword: adminPassword,
	}
}

func (s *jwtTokenService) IssueToken(ctx context.Context, userName, password string) (string, time.Time, error) {
	if userName == "" || userName != s.adminUser || password != s.adminPassword {
		return "", time.Time{}, constant.ErrUnauthorized
	}

	token, expiresAt, err := auth.GenerateToken(1, userName, s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("签发访问令牌失败: %w", err)
	}
	return token, expiresAt, nil
}

func (s *jwtTokenService) ParseAccessToken(ctx context.Context, tokenString string) (*auth.CustomClaims, error) {
	claims, err := auth.ParseToken(tokenString, s.secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", constant.ErrInvalidToken, err)
	}
	return claims, nil
}
