package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Store 文档物理存储接口
// 文件写入与数据库插入不在同一事务内, 调用方负责先写文件再写库,
// 写库失败时调用 Remove 清理已写入的文件
type Store interface {
	// Save 保存文件, 返回可用于后续 Remove 的存储路径
	Save(filename string, r io.Reader) (string, error)
	// Remove 删除文件
	Remove(path string) error
	// Open 打开文件用于下载
	Open(path string) (io.ReadCloser, error)
}

// LocalStore 本地磁盘存储
type LocalStore struct {
	rootDir string
}

// NewLocalStore 创建本地存储, 目录不存在时自动创建
func NewLocalStore(rootDir string) (*LocalStore, error) {
	if err := os.MkdirAll(rootDir, 0755); err != nil {
		return nil, fmt.Errorf("创建上传目录失败: %w", err)
	}
	return &LocalStore{rootDir: rootDir}, nil
}

func (s *LocalStore) Save(filename string, r io.Reader) (string, error) {
	// 只使用文件名部分, 防止路径穿越
	path := filepath.Join(s.rootDir, filepath.Base(filename))

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return "", fmt.Errorf("创建文件失败: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("写入文件失败: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("关闭文件失败: %w", err)
	}

	return path, nil
}

func (s *LocalStore) Remove(path string) error {
	err := os.Remove(path)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *LocalStore) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}
