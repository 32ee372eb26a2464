package speech

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"TransLingo/pkg/errors"
)

// Synthesizer 语音合成器，腾讯 TTS 客户端满足此接口
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, voiceType int64) ([]byte, error)
}

// Cache 内容寻址的语音合成缓存。
// 以 sha256(text ‖ voiceType) 为指纹在 dir 下命名产物文件：
// 相同的 (text, voiceType) 总是映射到同一路径，跨进程重启仍然命中。
type Cache struct {
	dir   string
	synth Synthesizer

	mu    sync.Mutex
	locks map[string]*keyLock

	// 命中/未命中统计回调，可为 nil
	OnHit  func()
	OnMiss func()
}

// NewCache 创建语音缓存。dir 为空时使用系统临时目录。
func NewCache(dir string, synth Synthesizer) (*Cache, error) {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "translingo-tts")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.WrapCode(errors.CodeStorage, err, "failed to create speech cache dir")
	}
	return &Cache{
		dir:   dir,
		synth: synth,
		locks: make(map[string]*keyLock),
	}, nil
}

// Dir 返回缓存目录
func (c *Cache) Dir() string { return c.dir }

// Key 计算 (text, voiceType) 的指纹
func Key(text string, voiceType int64) string {
	h := sha256.New()
	h.Write([]byte(text))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatInt(voiceType, 10)))
	return hex.EncodeToString(h.Sum(nil))
}

// Path 返回指纹对应的规范文件路径
func (c *Cache) Path(text string, voiceType int64) string {
	return filepath.Join(c.dir, "tts_"+Key(text, voiceType)+".mp3")
}

// Resolve 解析 (text, voiceType) 对应的音频产物路径。
// 命中时不发起任何远端调用；未命中时同步合成并写入。
// 同一键的并发调用被按键锁串行化，因此每个键至多一次远端调用。
// 合成失败时规范路径上不会出现任何文件，错误原样向上传递。
func (c *Cache) Resolve(ctx context.Context, text string, voiceType int64) (path string, hit bool, err error) {
	path = c.Path(text, voiceType)

	lock := c.acquire(path)
	defer c.release(path, lock)

	if _, statErr := os.Stat(path); statErr == nil {
		if c.OnHit != nil {
			c.OnHit()
		}
		return path, true, nil
	}

	if c.OnMiss != nil {
		c.OnMiss()
	}

	audio, err := c.synth.Synthesize(ctx, text, voiceType)
	if err != nil {
		return "", false, err
	}

	// 先写临时文件再 rename，规范路径上永远不会出现写了一半的产物
	tmp, err := os.CreateTemp(c.dir, "tts_*.tmp")
	if err != nil {
		return "", false, errors.WrapCode(errors.CodeStorage, err, "failed to create temp artifact")
	}
	tmpName := tmp.Name()
	if _, err = tmp.Write(audio); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", false, errors.WrapCode(errors.CodeStorage, err, "failed to write artifact")
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", false, errors.WrapCode(errors.CodeStorage, err, "failed to close artifact")
	}
	if err = os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return "", false, errors.WrapCode(errors.CodeStorage, err, "failed to publish artifact")
	}
	return path, false, nil
}

// keyLock 带引用计数的按键锁，最后一个持有者释放时从 map 中移除
type keyLock struct {
	mu   sync.Mutex
	refs int
}

func (c *Cache) acquire(key string) *keyLock {
	c.mu.Lock()
	lock, ok := c.locks[key]
	if !ok {
		lock = &keyLock{}
		c.locks[key] = lock
	}
	lock.refs++
	c.mu.Unlock()

	lock.mu.Lock()
	return lock
}

func (c *Cache) release(key string, lock *keyLock) {
	lock.mu.Unlock()

	c.mu.Lock()
	lock.refs--
	if lock.refs == 0 {
		delete(c.locks, key)
	}
	c.mu.Unlock()
}
