/*
 * @Description: 统一配置管理（手动加载，文件默认值 + 环境变量覆盖）
 * @Author: 山岚
 * @Date: 2025-09-14 12:33:08
 * @LastEditTime: 2026-08-03 10:27:51
 * @LastEditors: 山岚
 */
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-ini/ini"
	"github.com/spf13/viper"
)

// 定义所有已知的配置键
var allKeys = []string{
	KeyServerPort, KeyServerDebug, KeyJWTSecret, KeyAdminUser, KeyAdminPassword,
	KeyDBPath,
	KeyGalleryBasePath, KeyGalleryReadOnly,
	KeyCaptureDefaultEra, KeyCaptureIntervalSeconds,
	KeyPipelineJPEGQuality,
	KeyIDSeed,
}

const (
	KeyServerPort    = "System.Port"
	KeyServerDebug   = "System.Debug"
	KeyJWTSecret     = "System.JwtSecret"
	KeyAdminUser     = "System.AdminUser"
	KeyAdminPassword = "System.AdminPassword"

	KeyDBPath = "Database.Path"

	KeyGalleryBasePath = "Gallery.BasePath"
	KeyGalleryReadOnly = "Gallery.ReadOnly"

	// Capture.DefaultEra 是未指定年代时使用的标识；
	// Capture.IntervalSeconds 大于 0 时启用自拍定时器，周期性产生合成测试帧。
	KeyCaptureDefaultEra      = "Capture.DefaultEra"
	KeyCaptureIntervalSeconds = "Capture.IntervalSeconds"

	KeyPipelineJPEGQuality = "Pipeline.JpegQuality"

	KeyIDSeed = "System.IdSeed"
)

type Config struct {
	vp *viper.Viper
}

// NewConfig 手动加载配置：先读 ini 文件作为默认值，再用环境变量覆盖。
func NewConfig() (*Config, error) {
	vp := viper.New()
	filePath := "data/conf.ini"

	// --- 步骤 1: 使用 go-ini 从文件加载配置（作为默认值） ---
	iniCfg, err := ini.Load(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("提示: 未找到 %s，将创建默认配置文件。", filePath)
			if err := createDefaultConfigFile(filePath); err != nil {
				log.Printf("警告: 创建默认配置文件失败: %v，将仅依赖环境变量或内部默认值。", err)
			} else {
				log.Printf("✅ 已创建默认配置文件: %s", filePath)
				iniCfg, err = ini.Load(filePath)
				if err != nil {
					log.Printf("警告: 重新加载配置文件失败: %v", err)
				}
			}
		} else {
			return nil, fmt.Errorf("错误: 解析配置文件 '%s' 失败: %w", filePath, err)
		}
	}

	// 如果文件成功加载，则将其中的值全部设置到 Viper 中
	if iniCfg != nil {
		for _, section := range iniCfg.Sections() {
			for _, key := range section.Keys() {
				viperKey := fmt.Sprintf("%s.%s", section.Name(), key.Name())
				// 特殊处理默认分区 "DEFAULT"
				if section.Name() == "DEFAULT" {
					viperKey = key.Name()
				}
				vp.Set(viperKey, key.Value())
			}
		}
		log.Println("从 data/conf.ini 文件加载了默认配置。")
	}

	// --- 步骤 2: 手动检查并覆盖环境变量 ---
	envReplacer := strings.NewReplacer(".", "_")
	envPrefix := "RETROSNAP"

	for _, key := range allKeys {
		// 构建环境变量名，例如 RETROSNAP_GALLERY_BASEPATH
		envVarName := fmt.Sprintf("%s_%s", envPrefix, envReplacer.Replace(strings.ToUpper(key)))

		if value, found := os.LookupEnv(envVarName); found {
			vp.Set(key, value)
			log.Printf("发现环境变量: %s, 已覆盖配置 '%s'。", envVarName, key)
		}
	}

	log.Println("✅ 配置加载器初始化完成。")
	return &Config{vp: vp}, nil
}

func (c *Config) GetString(key string) string {
	return c.vp.GetString(key)
}

func (c *Config) GetInt(key string) int {
	return c.vp.GetInt(key)
}

func (c *Config) GetBool(key string) bool {
	return c.vp.GetBool(key)
}

// createDefaultConfigFile 创建默认的配置文件
func createDefaultConfigFile(filePath string) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("创建目录失败: %w", err)
	}

	defaultConfig := `[System]
Port = 8093
Debug = false
# JWT 签名密钥，留空则启动时随机生成（重启后已签发的令牌失效）
JwtSecret =
AdminUser = admin
AdminPassword = retrosnap

[Database]
Path = data/retrosnap.db

[Gallery]
BasePath = data/gallery
ReadOnly = false

[Capture]
DefaultEra = early_digital
# 大于 0 时启用自拍定时器（秒），周期性拍摄合成测试帧
IntervalSeconds = 0

[Pipeline]
JpegQuality = 88
`

	if err := os.WriteFile(filePath, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}

	return nil
}
