package speech

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"TransLingo/pkg/logger"

	"go.uber.org/zap"
)

// CleanupJob 清理过期语音产物的定时任务，配合 scheduler.Cron 使用
type CleanupJob struct {
	cache  *Cache
	maxAge time.Duration
}

// NewCleanupJob 创建清理任务；maxAge <= 0 时默认保留 7 天
func NewCleanupJob(cache *Cache, maxAge time.Duration) *CleanupJob {
	if maxAge <= 0 {
		maxAge = 7 * 24 * time.Hour
	}
	return &CleanupJob{cache: cache, maxAge: maxAge}
}

// Run 删除修改时间早于 maxAge 的 tts_ 产物与遗留临时文件
func (j *CleanupJob) Run(ctx context.Context) {
	cutoff := time.Now().Add(-j.maxAge)
	removed := 0

	entries, err := os.ReadDir(j.cache.Dir())
	if err != nil {
		logger.Warn("speech cache cleanup failed", zap.Error(err))
		return
	}
	// 进程中途被杀时可能残留临时文件，保留一小时后视为垃圾
	tmpCutoff := time.Now().Add(-time.Hour)

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "tts_") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		stale := info.ModTime().Before(cutoff)
		if strings.HasSuffix(entry.Name(), ".tmp") {
			stale = info.ModTime().Before(tmpCutoff)
		}
		if !stale {
			continue
		}
		if err := os.Remove(filepath.Join(j.cache.Dir(), entry.Name())); err == nil {
			removed++
		}
	}
	if removed > 0 {
		logger.Info("speech cache cleanup finished", zap.Int("removed", removed))
	}
}
