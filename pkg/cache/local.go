package cache

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// localCache 基于 golang-lru 的本地缓存实现，容量满时按 LRU 淘汰
type localCache struct {
	config LocalConfig
	items  *lru.Cache[string, *cacheItem]
	mu     sync.Mutex
	done   chan struct{}
}

// cacheItem 缓存项
type cacheItem struct {
	value      interface{}
	expiration time.Time
}

func (it *cacheItem) expired(now time.Time) bool {
	return !it.expiration.IsZero() && now.After(it.expiration)
}

// NewLocalCache 创建本地缓存
func NewLocalCache(config LocalConfig) Cache {
	if config.MaxSize <= 0 {
		config.MaxSize = 1000
	}
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = 10 * time.Minute
	}
	items, _ := lru.New[string, *cacheItem](config.MaxSize)
	lc := &localCache{
		config: config,
		items:  items,
		done:   make(chan struct{}),
	}

	// 启动清理协程
	go lc.startCleanup()

	return lc
}

// Get 获取缓存值
func (lc *localCache) Get(ctx context.Context, key string) (interface{}, bool) {
	item, exists := lc.items.Get(key)
	if !exists {
		return nil, false
	}
	if item.expired(time.Now()) {
		lc.items.Remove(key)
		return nil, false
	}
	return item.value, true
}

// Set 设置缓存值
func (lc *localCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if expiration <= 0 {
		expiration = lc.config.DefaultExpiration
	}
	var exp time.Time
	if expiration > 0 {
		exp = time.Now().Add(expiration)
	}
	lc.items.Add(key, &cacheItem{value: value, expiration: exp})
	return nil
}

// SetNX 不存在时设置
func (lc *localCache) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	if item, exists := lc.items.Get(key); exists && !item.expired(time.Now()) {
		return false, nil
	}
	return true, lc.Set(ctx, key, value, expiration)
}

// Delete 删除缓存
func (lc *localCache) Delete(ctx context.Context, key string) error {
	lc.items.Remove(key)
	return nil
}

// Exists 检查键是否存在
func (lc *localCache) Exists(ctx context.Context, key string) bool {
	_, exists := lc.Get(ctx, key)
	return exists
}

// Clear 清空所有缓存
func (lc *localCache) Clear(ctx context.Context) error {
	lc.items.Purge()
	return nil
}

// Close 关闭缓存
func (lc *localCache) Close() error {
	close(lc.done)
	return nil
}

// startCleanup 周期清理过期项（LRU 只管容量，不管 TTL）
func (lc *localCache) startCleanup() {
	ticker := time.NewTicker(lc.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-lc.done:
			return
		case <-ticker.C:
			now := time.Now()
			for _, key := range lc.items.Keys() {
				if item, ok := lc.items.Peek(key); ok && item.expired(now) {
					lc.items.Remove(key)
				}
			}
		}
	}
}
