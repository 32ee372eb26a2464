package stores

import (
	"fmt"
	"io"
	"strings"
)

// Store 音频产物存储接口：本地磁盘、MinIO、腾讯 COS 三种实现
type Store interface {
	Read(key string) (io.ReadCloser, int64, error)
	Write(key string, r io.Reader) error
	Delete(key string) error
	Exists(key string) (bool, error)
	PublicURL(key string) string
}

// NewStore 按类型创建存储实例
func NewStore(kind string) (Store, error) {
	switch strings.ToLower(kind) {
	case "", "local":
		return NewLocalStore(), nil
	case "minio":
		return NewMinioStore(), nil
	case "cos":
		return NewCOSStore()
	default:
		return nil, fmt.Errorf("unsupported artifact store: %s", kind)
	}
}
