/*
 * @Description: 存储提供者接口定义
 * @Author: 山岚
 * @Date: 2025-09-22 14:30:18
 * @LastEditTime: 2026-03-02 19:11:55
 * @LastEditors: 山岚
 */
package storage

import (
	"context"
	"io"
	"time"
)

// FileInfo 描述存储中的一个文件。
type FileInfo struct {
	Name    string
	RelPath string
	Size    int64
	ModTime time.Time
}

// IStorageProvider 定义了相册文件存储的所有交互。
// 当前只有本地磁盘实现；接口隔离让持久化逻辑不感知具体介质。
type IStorageProvider interface {
	// Save 把字节写入相对相册根目录的路径，父目录不存在时自动创建。
	Save(ctx context.Context, relPath string, data []byte) error
	// Get 返回文件读取器，调用方负责关闭。
	Get(ctx context.Context, relPath string) (io.ReadCloser, error)
	// Delete 删除文件，文件不存在视为成功。
	Delete(ctx context.Context, relPath string) error
	// List 递归列出根目录下的全部文件（不含目录项）。
	List(ctx context.Context) ([]FileInfo, error)
}
