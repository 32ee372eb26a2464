package handlers

import (
	"context"

	"TransLingo/pkg/cache"
	"TransLingo/pkg/config"
	"TransLingo/pkg/i18n"
	"TransLingo/pkg/metrics"
	"TransLingo/pkg/middleware"
	"TransLingo/pkg/search"
	"TransLingo/pkg/speech"
	stores "TransLingo/pkg/storage"
	"TransLingo/pkg/task"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// OCREngine 文字识别服务
type OCREngine interface {
	RecognizeText(ctx context.Context, imageBytes []byte) (string, error)
}

// MTEngine 机器翻译服务
type MTEngine interface {
	Translate(ctx context.Context, text, target, source string) (string, error)
}

type Handlers struct {
	db *gorm.DB

	ocr    OCREngine
	mt     MTEngine
	speech *speech.Cache

	pool    *task.Pool
	mtCache cache.Cache
	store   stores.Store
	index   *search.HistoryIndex
	metrics *metrics.Metrics
	i18n    *i18n.Support
}

// Options 业务依赖装配
type Options struct {
	DB      *gorm.DB
	OCR     OCREngine
	MT      MTEngine
	Speech  *speech.Cache
	Pool    *task.Pool
	MTCache cache.Cache
	Store   stores.Store
	Index   *search.HistoryIndex
	Metrics *metrics.Metrics
	I18n    *i18n.Support
}

func NewHandlers(opts Options) *Handlers {
	pool := opts.Pool
	if pool == nil {
		pool = task.NewPool(0)
	}
	return &Handlers{
		db:      opts.DB,
		ocr:     opts.OCR,
		mt:      opts.MT,
		speech:  opts.Speech,
		pool:    pool,
		mtCache: opts.MTCache,
		store:   opts.Store,
		index:   opts.Index,
		metrics: opts.Metrics,
		i18n:    opts.I18n,
	}
}

func (h *Handlers) Register(engine *gin.Engine) {
	engine.GET("/health", h.HealthCheck)

	r := engine.Group(config.GlobalConfig.APIPrefix)
	r.Use(middleware.InjectDB(h.db))

	h.registerAuthRoutes(r)

	api := r.Group("")
	api.Use(middleware.AuthRequired())
	{
		api.POST("/ocr", h.handleOCR)
		api.POST("/translate", h.handleTranslate)
		api.POST("/tts", h.handleTTS)

		api.GET("/history", h.handleListHistory)
		api.GET("/history/search", h.handleSearchHistory)
		api.DELETE("/history/:id", h.handleDeleteHistory)

		api.GET("/options", h.handleOptions)
	}

	h.registerSystemRoutes(r)
}

func (h *Handlers) registerAuthRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.handleRegister)

		auth.POST("/login", h.handleLogin)

		auth.POST("/logout", middleware.AuthRequired(), h.handleLogout)

		auth.GET("/info", middleware.AuthRequired(), h.handleUserInfo)
	}
}

func (h *Handlers) registerSystemRoutes(r *gin.RouterGroup) {
	system := r.Group("/system")
	{
		system.GET("/status", middleware.AuthRequired(), h.SystemStatus)
	}
}

// t 按请求语言取文案
func (h *Handlers) t(c *gin.Context, key string) string {
	if h.i18n == nil {
		return key
	}
	return h.i18n.T(middleware.RequestLang(c), key, nil)
}
