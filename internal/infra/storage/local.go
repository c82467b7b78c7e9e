/*
 * @Description: 本地磁盘存储提供者
 * @Author: 山岚
 * @Date: 2025-09-22 14:48:02
 * @LastEditTime: 2026-06-18 17:29:40
 * @LastEditors: 山岚
 */
package storage

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalProvider 实现了 IStorageProvider 接口，负责与本机磁盘文件系统的所有交互。
type LocalProvider struct {
	basePath string
}

// NewLocalProvider 构造函数，basePath 是相册根目录，不存在时创建。
func NewLocalProvider(basePath string) (IStorageProvider, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("创建相册根目录 '%s' 失败: %w", basePath, err)
	}
	return &LocalProvider{basePath: basePath}, nil
}

// resolve 把相对路径拼到根目录下，并拒绝逃出根目录的路径。
func (p *LocalProvider) resolve(relPath string) (string, error) {
	cleaned := filepath.Clean(relPath)
	if strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("非法的存储路径: '%s'", relPath)
	}
	return filepath.Join(p.basePath, cleaned), nil
}

func (p *LocalProvider) Save(ctx context.Context, relPath string, data []byte) error {
	fullPath, err := p.resolve(relPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("创建存储目录失败: %w", err)
	}

	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return fmt.Errorf("写入文件 '%s' 失败: %w", fullPath, err)
	}
	return nil
}

func (p *LocalProvider) Get(ctx context.Context, relPath string) (io.ReadCloser, error) {
	fullPath, err := p.resolve(relPath)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("物理文件不存在: %s", fullPath)
		}
		return nil, fmt.Errorf("无法打开物理文件 '%s': %w", fullPath, err)
	}
	return file, nil
}

func (p *LocalProvider) Delete(ctx context.Context, relPath string) error {
	fullPath, err := p.resolve(relPath)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("删除文件 '%s' 失败: %w", fullPath, err)
	}
	return nil
}

func (p *LocalProvider) List(ctx context.Context) ([]FileInfo, error) {
	var result []FileInfo

	err := filepath.WalkDir(p.basePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// 遍历期间文件可能被并发删除，跳过即可
			return nil
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(p.basePath, path)
		if err != nil {
			return nil
		}
		result = append(result, FileInfo{
			Name:    d.Name(),
			RelPath: rel,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("遍历相册目录失败: %w", err)
	}

	return result, nil
}
