package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	handlers "TransLingo/internal/handler"
	"TransLingo/internal/models"
	"TransLingo/pkg/backup"
	"TransLingo/pkg/cache"
	"TransLingo/pkg/config"
	"TransLingo/pkg/i18n"
	"TransLingo/pkg/llm"
	"TransLingo/pkg/logger"
	"TransLingo/pkg/metrics"
	"TransLingo/pkg/middleware"
	"TransLingo/pkg/scheduler"
	"TransLingo/pkg/search"
	"TransLingo/pkg/speech"
	stores "TransLingo/pkg/storage"
	"TransLingo/pkg/task"
	"TransLingo/pkg/tencent"
	"TransLingo/pkg/util"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

func main() {
	if err := config.Load(); err != nil {
		panic(err)
	}
	cfg := config.GlobalConfig

	if err := logger.Init(cfg.Log); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	db, err := util.OpenDatabase(cfg.DBDriver, cfg.DSN)
	if err != nil {
		logger.Fatal("open database failed", zap.Error(err))
	}
	if err := db.AutoMigrate(&models.User{}, &models.TranslationHistory{}, &middleware.OperationLog{}); err != nil {
		logger.Fatal("auto migrate failed", zap.Error(err))
	}

	// 翻译记忆化与幂等键共用一套缓存
	mtCache, err := cache.NewCache(cache.Config{
		Type: cfg.CacheType,
		Redis: cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		},
		Local: cache.LocalConfig{DefaultExpiration: cfg.CacheExpiration},
	})
	if err != nil {
		logger.Fatal("init cache failed", zap.Error(err))
	}
	defer mtCache.Close()

	tc := tencent.NewClient(cfg.TencentSecretID, cfg.TencentSecretKey, cfg.TencentRegion, logrus.StandardLogger())

	var mt handlers.MTEngine = tc
	if cfg.MTProvider == "llm" {
		mt = llm.NewOpenAITranslator(cfg.LLMApiKey, cfg.LLMBaseURL, cfg.LLMModel, logrus.StandardLogger())
	}

	m := metrics.NewMetrics()

	speechCache, err := speech.NewCache(cfg.SpeechCacheDir, tc)
	if err != nil {
		logger.Fatal("init speech cache failed", zap.Error(err))
	}
	speechCache.OnHit = m.SpeechCacheHit
	speechCache.OnMiss = m.SpeechCacheMiss

	store, err := stores.NewStore(cfg.ArtifactStore)
	if err != nil {
		logger.Fatal("init artifact store failed", zap.Error(err))
	}

	var index *search.HistoryIndex
	if cfg.SearchEnabled {
		path := cfg.SearchPath
		if path == "" {
			path = "translingo.bleve"
		}
		index, err = search.Open(path)
		if err != nil {
			logger.Fatal("open search index failed", zap.Error(err))
		}
		defer index.Close()
	}

	pool := task.NewPool(cfg.TaskPoolSize)
	defer pool.Shutdown()

	translations, err := i18n.New("en")
	if err != nil {
		logger.Fatal("init i18n failed", zap.Error(err))
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(m.GinMiddleware())
	engine.Use(sessions.Sessions("translingo_session", sessionStore(cfg)))
	if cfg.LanguageEnabled {
		engine.Use(middleware.LanguageMiddleware())
	}

	rl := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:       cfg.RateLimit,
		SkipPaths:  []string{"/health", "/metrics"},
		AddHeaders: true,
	}, nil).WithObserver(middleware.NewPrometheusObserver())
	engine.Use(rl.Middleware())

	engine.Use(middleware.InjectDB(db))
	if cfg.MonitorEnabled {
		engine.Use(middleware.OperationLogMiddleware(cfg.GeoIPDBPath))
	}
	engine.Use(middleware.IdempotencyMiddleware(middleware.IdempotencyConfig{Store: mtCache}))

	engine.GET("/metrics", metrics.Handler())
	if local, ok := store.(*stores.LocalStore); ok {
		engine.Static(local.BaseURL, local.Root)
	}

	h := handlers.NewHandlers(handlers.Options{
		DB:      db,
		OCR:     tc,
		MT:      mt,
		Speech:  speechCache,
		Pool:    pool,
		MTCache: mtCache,
		Store:   store,
		Index:   index,
		Metrics: m,
		I18n:    translations,
	})
	h.Register(engine)

	cr := scheduler.NewCron(nil)
	cleanup := speech.NewCleanupJob(speechCache, cfg.SpeechCacheMaxAge)
	if _, err := cr.Add(cfg.SpeechCleanupCron, cleanup); err != nil {
		logger.Fatal("schedule speech cleanup failed", zap.Error(err))
	}
	if cfg.BackupEnabled {
		_, err := cr.AddWithCtx(cfg.BackupSchedule, func(ctx context.Context) {
			if err := backup.ExecuteBackup(); err != nil {
				logger.Warn("backup failed", zap.Error(err))
			}
		})
		if err != nil {
			logger.Fatal("schedule backup failed", zap.Error(err))
		}
	}
	cr.Start()
	defer cr.Stop()

	srv := &http.Server{Addr: cfg.Addr, Handler: engine}

	go func() {
		logger.Info("server listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
}

func sessionStore(cfg *config.Config) sessions.Store {
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	maxAge := cfg.SessionExpireDays * 24 * 3600
	if maxAge <= 0 {
		maxAge = 7 * 24 * 3600
	}
	store.Options(sessions.Options{Path: "/", MaxAge: maxAge, HttpOnly: true})
	return store
}
