package middleware

import (
	"net/http"
	"strings"
	"time"

	"TransLingo/pkg/cache"

	"github.com/gin-gonic/gin"
)

// IdempotencyConfig 幂等中间件配置
type IdempotencyConfig struct {
	HeaderName string        // Idempotency-Key 的请求头名
	TTL        time.Duration // 重复请求的拒绝窗口
	Store      cache.Cache   // 键存储（local / redis 均可）
}

// IdempotencyMiddleware 拒绝窗口期内携带相同幂等键的重复请求。
// 未带请求头的请求直接放行：同一文本的重复翻译属于正常的缓存命中场景。
func IdempotencyMiddleware(cfg IdempotencyConfig) gin.HandlerFunc {
	if cfg.HeaderName == "" {
		cfg.HeaderName = "Idempotency-Key"
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 10 * time.Minute
	}
	store := cfg.Store
	if store == nil {
		store = cache.NewLocalCache(cache.LocalConfig{MaxSize: 4096, CleanupInterval: time.Minute})
	}
	return func(c *gin.Context) {
		key := strings.TrimSpace(c.GetHeader(cfg.HeaderName))
		if key == "" {
			c.Next()
			return
		}
		ok, err := store.SetNX(c.Request.Context(), "idem:"+key, true, cfg.TTL)
		if err == nil && !ok {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "duplicate request"})
			return
		}
		c.Next()
	}
}
