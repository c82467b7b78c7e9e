/*
 * @Description: JWT 令牌的签发与校验
 * @Author: 山岚
 * @Date: 2025-09-23 13:51:08
 * @LastEditTime: 2026-04-26 21:33:47
 * @LastEditors: 山岚
 */
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/retro-tech/retrosnap/pkg/idgen"
)

const issuer = "retrosnap"

// AccessTokenTTL 是访问令牌的有效期。
const AccessTokenTTL = 12 * time.Hour

// GenerateRandomSecret 生成一个随机的 32 字节 JWT 签名密钥。
// 配置未指定密钥时在启动阶段调用；重启后已签发的令牌自然失效。
func GenerateRandomSecret() ([]byte, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return nil, fmt.Errorf("生成随机密钥失败: %w", err)
	}
	return []byte(hex.EncodeToString(bytes)), nil
}

// GenerateToken 生成一个新的 JWT Access Token。
func GenerateToken(userID uint, userName string, secretKey []byte) (string, time.Time, error) {
	if len(secretKey) == 0 {
		return "", time.Time{}, fmt.Errorf("JWT Secret 不能为空")
	}

	expiresAt := time.Now().Add(AccessTokenTTL)

	publicUserID, err := idgen.GeneratePublicID(userID, idgen.EntityTypeUser)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("生成用户公共ID失败: %w", err)
	}

	claims := CustomClaims{
		UserID:   publicUserID,
		UserName: userName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("签发令牌失败: %w", err)
	}
	return signed, expiresAt, nil
}

// ParseToken 校验并解析 Access Token。
func ParseToken(tokenString string, secretKey []byte) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("不支持的签名算法: %v", t.Header["alg"])
		}
		return secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("解析令牌失败: %w", err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("令牌无效")
	}
	return claims, nil
}
