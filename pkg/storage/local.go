package stores

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"TransLingo/pkg/util"
)

// LocalStore 本地磁盘存储，PublicURL 依赖静态文件路由对外暴露
type LocalStore struct {
	Root    string `env:"ARTIFACT_LOCAL_ROOT"`
	BaseURL string `env:"ARTIFACT_PUBLIC_BASE"` // 对外访问前缀，如 /artifacts
}

func NewLocalStore() Store {
	root := util.GetEnv("ARTIFACT_LOCAL_ROOT")
	if root == "" {
		root = filepath.Join(os.TempDir(), "translingo-artifacts")
	}
	return &LocalStore{
		Root:    root,
		BaseURL: util.GetEnvDefault("ARTIFACT_PUBLIC_BASE", "/artifacts"),
	}
}

func (s *LocalStore) path(key string) string {
	return filepath.Join(s.Root, filepath.FromSlash(key))
}

func (s *LocalStore) Read(key string) (io.ReadCloser, int64, error) {
	f, err := os.Open(s.path(key))
	if err != nil {
		return nil, 0, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, err
	}
	return f, st.Size(), nil
}

func (s *LocalStore) Write(key string, r io.Reader) error {
	dst := s.path(key)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	// 与语音缓存同样的写入纪律：临时文件 + rename
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".artifact_*")
	if err != nil {
		return err
	}
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), dst)
}

func (s *LocalStore) Delete(key string) error {
	return os.Remove(s.path(key))
}

func (s *LocalStore) Exists(key string) (bool, error) {
	_, err := os.Stat(s.path(key))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func (s *LocalStore) PublicURL(key string) string {
	return strings.TrimRight(s.BaseURL, "/") + "/" + key
}
