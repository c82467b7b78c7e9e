package auth

import (
	"testing"

	"github.com/retro-tech/retrosnap/pkg/idgen"
)

func init() {
	if err := idgen.InitSqidsEncoder(); err != nil {
		panic(err)
	}
}

func TestGenerateTokenRejectsEmptySecret(t *testing.T) {
	if _, _, err := GenerateToken(1, "admin", []byte("")); err == nil {
		t.Fatal("期望空密钥签发失败，实际成功")
	}
}

func TestGenerateRandomSecretUsableForTokens(t *testing.T) {
	secret, err := GenerateRandomSecret()
	if err != nil {
		t.Fatalf("生成随机密钥失败: %v", err)
	}
	if len(secret) == 0 {
		t.Fatal("随机密钥不应为空")
	}

	token, _, err := GenerateToken(1, "admin", secret)
	if err != nil {
		t.Fatalf("使用随机密钥签发令牌失败: %v", err)
	}

	claims, err := ParseToken(token, secret)
	if err != nil {
		t.Fatalf("解析令牌失败: %v", err)
	}
	if claims.UserName != "admin" {
		t.Errorf("用户名不一致: got %q", claims.UserName)
	}

	// 两次生成的密钥不应相同
	other, err := GenerateRandomSecret()
	if err != nil {
		t.Fatalf("再次生成随机密钥失败: %v", err)
	}
	if string(other) == string(secret) {
		t.Error("两次生成的随机密钥相同")
	}
}
