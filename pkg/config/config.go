package config

import (
	"log"
	"os"
	"time"

	"TransLingo/pkg/logger"
	"TransLingo/pkg/util"
)

// Config 全局配置，全部来自环境变量 / .env 文件
type Config struct {
	Addr      string `env:"ADDR"`
	Mode      string `env:"MODE"` // gin 的 debug / release
	APIPrefix string `env:"API_PREFIX"`

	DBDriver string `env:"DB_DRIVER"` // mysql / pg / sqlite
	DSN      string `env:"DSN"`

	SessionSecret     string `env:"SESSION_SECRET"`
	SessionExpireDays int    `env:"SESSION_EXPIRE_DAYS"`

	Log logger.LogConfig

	// 腾讯云凭证与地域（OCR / TMT / TTS 共用）
	TencentSecretID  string `env:"TENCENT_SECRET_ID"`
	TencentSecretKey string `env:"TENCENT_SECRET_KEY"`
	TencentRegion    string `env:"TENCENT_REGION"`

	// 机器翻译提供方：tencent（默认）或 llm
	MTProvider string `env:"MT_PROVIDER"`
	LLMApiKey  string `env:"LLM_API_KEY"`
	LLMBaseURL string `env:"LLM_BASE_URL"`
	LLMModel   string `env:"LLM_MODEL"`

	// 语音合成产物缓存
	SpeechCacheDir    string        `env:"SPEECH_CACHE_DIR"` // 为空时使用系统临时目录
	SpeechCacheMaxAge time.Duration `env:"SPEECH_CACHE_MAX_AGE"`
	SpeechCleanupCron string        `env:"SPEECH_CLEANUP_CRON"`
	ArtifactStore     string        `env:"ARTIFACT_STORE"` // local / minio / cos，公开地址由各存储自身的环境变量决定

	// 翻译结果缓存（short-TTL 记忆化）
	CacheType       string        `env:"CACHE_TYPE"` // local / gocache / redis
	CacheExpiration time.Duration `env:"CACHE_EXPIRATION"`
	RedisAddr       string        `env:"REDIS_ADDR"`
	RedisPassword   string        `env:"REDIS_PASSWORD"`
	RedisDB         int           `env:"REDIS_DB"`

	// AI 调用工作池上限
	TaskPoolSize int `env:"TASK_POOL_SIZE"`

	// 数据库备份
	BackupEnabled  bool   `env:"BACKUP_ENABLED"`
	BackupSchedule string `env:"BACKUP_SCHEDULE"`
	BackupPath     string `env:"BACKUP_PATH"`

	RateLimit       string `env:"RATE_LIMIT"` // 如 "30-M"
	LanguageEnabled bool   `env:"LANGUAGE_ENABLED"`
	SearchEnabled   bool   `env:"SEARCH_ENABLED"`
	SearchPath      string `env:"SEARCH_PATH"`
	GeoIPDBPath     string `env:"GEOIP_DB_PATH"`
	MonitorEnabled  bool   `env:"MONITOR_ENABLED"`
}

var GlobalConfig *Config

func Load() error {
	// 1. 根据环境加载 .env 文件
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development" // 默认使用开发环境
	}
	err := util.LoadEnv(env)
	if err != nil {
		log.Printf("Failed to load .env file: %v", err)
	}

	// 2. 加载全局配置
	GlobalConfig = &Config{
		Addr:              util.GetEnvDefault("ADDR", ":8080"),
		Mode:              util.GetEnv("MODE"),
		APIPrefix:         util.GetEnvDefault("API_PREFIX", "/api"),
		DBDriver:          util.GetEnv("DB_DRIVER"),
		DSN:               util.GetEnv("DSN"),
		SessionSecret:     util.GetEnvDefault("SESSION_SECRET", "translingo-secret"),
		SessionExpireDays: int(util.GetIntEnv("SESSION_EXPIRE_DAYS")),
		Log: logger.LogConfig{
			Level:      util.GetEnv("LOG_LEVEL"),
			Filename:   util.GetEnv("LOG_FILENAME"),
			MaxSize:    int(util.GetIntEnv("LOG_MAX_SIZE")),
			MaxAge:     int(util.GetIntEnv("LOG_MAX_AGE")),
			MaxBackups: int(util.GetIntEnv("LOG_MAX_BACKUPS")),
		},
		TencentSecretID:   util.GetEnv("TENCENT_SECRET_ID"),
		TencentSecretKey:  util.GetEnv("TENCENT_SECRET_KEY"),
		TencentRegion:     util.GetEnvDefault("TENCENT_REGION", "ap-guangzhou"),
		MTProvider:        util.GetEnvDefault("MT_PROVIDER", "tencent"),
		LLMApiKey:         util.GetEnv("LLM_API_KEY"),
		LLMBaseURL:        util.GetEnv("LLM_BASE_URL"),
		LLMModel:          util.GetEnv("LLM_MODEL"),
		SpeechCacheDir:    util.GetEnv("SPEECH_CACHE_DIR"),
		SpeechCacheMaxAge: util.GetDurationEnv("SPEECH_CACHE_MAX_AGE"),
		SpeechCleanupCron: util.GetEnvDefault("SPEECH_CLEANUP_CRON", "0 3 * * *"),
		ArtifactStore:     util.GetEnvDefault("ARTIFACT_STORE", "local"),
		CacheType:         util.GetEnvDefault("CACHE_TYPE", "local"),
		CacheExpiration:   util.GetDurationEnv("CACHE_EXPIRATION"),
		RedisAddr:         util.GetEnv("REDIS_ADDR"),
		RedisPassword:     util.GetEnv("REDIS_PASSWORD"),
		RedisDB:           int(util.GetIntEnv("REDIS_DB")),
		TaskPoolSize:      int(util.GetIntEnv("TASK_POOL_SIZE")),
		BackupEnabled:     util.GetBoolEnv("BACKUP_ENABLED"),
		BackupSchedule:    util.GetEnvDefault("BACKUP_SCHEDULE", "0 4 * * *"),
		BackupPath:        util.GetEnvDefault("BACKUP_PATH", "backups"),
		RateLimit:         util.GetEnvDefault("RATE_LIMIT", "30-M"),
		LanguageEnabled:   util.GetBoolEnv("LANGUAGE_ENABLED"),
		SearchEnabled:     util.GetBoolEnv("SEARCH_ENABLED"),
		SearchPath:        util.GetEnv("SEARCH_PATH"),
		GeoIPDBPath:       util.GetEnv("GEOIP_DB_PATH"),
		MonitorEnabled:    util.GetBoolEnv("MONITOR_ENABLED"),
	}
	return nil
}
