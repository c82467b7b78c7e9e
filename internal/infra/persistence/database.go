/*
 * @Description: 数据库连接与迁移
 * @Author: 山岚
 * @Date: 2025-09-24 15:08:12
 * @LastEditTime: 2026-03-02 19:40:26
 * @LastEditors: 山岚
 */
package persistence

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDatabase 打开 SQLite 数据库并执行迁移。
func OpenDatabase(path string, debug bool) (*gorm.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("创建数据库目录失败: %w", err)
	}

	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("打开数据库 '%s' 失败: %w", path, err)
	}

	if err := db.AutoMigrate(&photoPO{}); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	log.Printf("[Database] SQLite 已就绪: %s", path)
	return db, nil
}
