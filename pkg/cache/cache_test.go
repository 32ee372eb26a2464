package cache

import (
	"context"
	"testing"
	"time"
)

func TestLocalCache(t *testing.T) {
	config := LocalConfig{
		MaxSize:           100,
		DefaultExpiration: 5 * time.Minute,
		CleanupInterval:   10 * time.Minute,
	}

	cache := NewLocalCache(config)
	defer cache.Close()

	ctx := context.Background()

	t.Run("Set and Get", func(t *testing.T) {
		key := "test_key"
		value := "test_value"
		expiration := 1 * time.Minute

		err := cache.Set(ctx, key, value, expiration)
		if err != nil {
			t.Errorf("Failed to set cache: %v", err)
		}

		if retrieved, exists := cache.Get(ctx, key); !exists {
			t.Error("Cache value not found")
		} else if retrieved != value {
			t.Errorf("Expected %v, got %v", value, retrieved)
		}
	})

	t.Run("Expiration", func(t *testing.T) {
		if err := cache.Set(ctx, "short_lived", 1, 10*time.Millisecond); err != nil {
			t.Fatalf("Failed to set cache: %v", err)
		}
		time.Sleep(30 * time.Millisecond)
		if _, exists := cache.Get(ctx, "short_lived"); exists {
			t.Error("Expired value should not be returned")
		}
	})

	t.Run("SetNX", func(t *testing.T) {
		ok, err := cache.SetNX(ctx, "nx_key", "a", time.Minute)
		if err != nil || !ok {
			t.Errorf("First SetNX should succeed, got ok=%v err=%v", ok, err)
		}
		ok, err = cache.SetNX(ctx, "nx_key", "b", time.Minute)
		if err != nil {
			t.Errorf("Second SetNX error: %v", err)
		}
		if ok {
			t.Error("Second SetNX should not overwrite existing key")
		}
		if v, _ := cache.Get(ctx, "nx_key"); v != "a" {
			t.Errorf("Expected original value, got %v", v)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		_ = cache.Set(ctx, "to_delete", true, time.Minute)
		if err := cache.Delete(ctx, "to_delete"); err != nil {
			t.Errorf("Failed to delete: %v", err)
		}
		if cache.Exists(ctx, "to_delete") {
			t.Error("Deleted key should not exist")
		}
	})
}

func TestLocalCacheEviction(t *testing.T) {
	cache := NewLocalCache(LocalConfig{MaxSize: 2, CleanupInterval: time.Minute})
	defer cache.Close()

	ctx := context.Background()
	_ = cache.Set(ctx, "a", 1, time.Minute)
	_ = cache.Set(ctx, "b", 2, time.Minute)
	_ = cache.Set(ctx, "c", 3, time.Minute) // 容量 2，最旧的 a 被淘汰

	if cache.Exists(ctx, "a") {
		t.Error("LRU should have evicted the oldest key")
	}
	if !cache.Exists(ctx, "b") || !cache.Exists(ctx, "c") {
		t.Error("Recently used keys should survive eviction")
	}
}

func TestGoCache(t *testing.T) {
	cache := NewGoCache(LocalConfig{DefaultExpiration: time.Minute, CleanupInterval: time.Minute})
	defer cache.Close()

	ctx := context.Background()
	if err := cache.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if v, ok := cache.Get(ctx, "k"); !ok || v != "v" {
		t.Errorf("Expected v, got %v (ok=%v)", v, ok)
	}
	if ok, _ := cache.SetNX(ctx, "k", "other", time.Minute); ok {
		t.Error("SetNX on existing key should fail")
	}
}
