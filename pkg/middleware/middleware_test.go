package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"TransLingo/pkg/cache"
	constants "TransLingo/pkg/constant"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAuthRequiredRejectsAnonymous(t *testing.T) {
	engine := gin.New()
	engine.Use(sessions.Sessions("s", cookie.NewStore([]byte("secret"))))
	engine.GET("/private", AuthRequired(), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredPassesLoggedIn(t *testing.T) {
	engine := gin.New()
	engine.Use(sessions.Sessions("s", cookie.NewStore([]byte("secret"))))
	engine.POST("/login", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set(constants.SessionUserID, uint(42))
		require.NoError(t, session.Save())
		c.Status(http.StatusOK)
	})
	engine.GET("/private", AuthRequired(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": CurrentUserID(c)})
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	require.Equal(t, http.StatusOK, w.Code)
	cookieHeader := w.Header().Get("Set-Cookie")
	require.NotEmpty(t, cookieHeader)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Cookie", cookieHeader)
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "42")
}

func TestIdempotencyDuplicateKey(t *testing.T) {
	store := cache.NewLocalCache(cache.LocalConfig{MaxSize: 16, CleanupInterval: time.Minute})
	defer store.Close()

	engine := gin.New()
	engine.POST("/op", IdempotencyMiddleware(IdempotencyConfig{Store: store}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	do := func(key string) int {
		req := httptest.NewRequest(http.MethodPost, "/op", strings.NewReader("{}"))
		if key != "" {
			req.Header.Set("Idempotency-Key", key)
		}
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, do("k1"))
	assert.Equal(t, http.StatusConflict, do("k1"))
	assert.Equal(t, http.StatusOK, do("k2"))

	// 未携带幂等键的请求不受窗口限制
	assert.Equal(t, http.StatusOK, do(""))
	assert.Equal(t, http.StatusOK, do(""))
}

func TestLanguageMiddleware(t *testing.T) {
	engine := gin.New()
	engine.Use(LanguageMiddleware())
	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, RequestLang(c))
	})

	cases := []struct {
		query  string
		header string
		want   string
	}{
		{"", "", "en"},
		{"?lang=zh", "", "zh"},
		{"", "zh-CN,zh;q=0.9", "zh"},
		{"?lang=fr", "", "en"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/"+tc.query, nil)
		if tc.header != "" {
			req.Header.Set("Accept-Language", tc.header)
		}
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, tc.want, w.Body.String())
	}
}

func TestRateLimiterDenies(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: "2-M", AddHeaders: true}, nil)

	engine := gin.New()
	engine.Use(rl.Middleware())
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.1.2.3:1234"
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
