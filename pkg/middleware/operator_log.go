package middleware

import (
	"net"
	"sync"
	"time"

	constants "TransLingo/pkg/constant"
	"TransLingo/pkg/logger"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/mssola/user_agent"
	"github.com/oschwald/geoip2-golang"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OperationLog 记录用户操作日志
type OperationLog struct {
	ID              int64     `gorm:"primaryKey;autoIncrement;not null" json:"id"`
	UserID          uint      `gorm:"index" json:"user_id"`
	Action          string    `gorm:"not null" json:"action"`           // HTTP 方法
	Target          string    `gorm:"not null" json:"target"`           // API 路径
	Status          int       `json:"status"`                           // 响应状态码
	IPAddress       string    `json:"ip_address"`                       // 用户 IP 地址
	UserAgent       string    `json:"user_agent"`                       // 原始 UA
	Referer         string    `json:"referer"`                          // 请求来源页面
	Device          string    `json:"device"`                           // 用户设备平台
	Browser         string    `json:"browser"`                          // 浏览器信息
	OperatingSystem string    `json:"operating_system"`                 // 操作系统
	Location        string    `json:"location"`                         // 地理位置（城市）
	DurationMs      int64     `json:"duration_ms"`                      // 请求耗时
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"` // 操作时间
}

var (
	geoOnce   sync.Once
	geoReader *geoip2.Reader
)

// initGeoReader 打开 GeoIP 数据库，失败时仅记录日志，地理位置留空
func initGeoReader(path string) {
	geoOnce.Do(func() {
		if path == "" {
			return
		}
		r, err := geoip2.Open(path)
		if err != nil {
			logger.Warn("geoip database unavailable", zap.String("path", path), zap.Error(err))
			return
		}
		geoReader = r
	})
}

func geoLocation(address string) string {
	if geoReader == nil {
		return ""
	}
	ip := net.ParseIP(address)
	if ip == nil {
		return ""
	}
	record, err := geoReader.City(ip)
	if err != nil {
		return ""
	}
	return record.City.Names["en"]
}

// OperationLogMiddleware 记录操作日志，写库失败不影响请求
func OperationLogMiddleware(geoDBPath string) gin.HandlerFunc {
	initGeoReader(geoDBPath)

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		v, exists := c.Get(constants.DbField)
		if !exists {
			return
		}
		db, ok := v.(*gorm.DB)
		if !ok {
			return
		}

		var userID uint
		if v := sessions.Default(c).Get(constants.SessionUserID); v != nil {
			if id, ok := v.(uint); ok {
				userID = id
			}
		}

		ua := user_agent.New(c.GetHeader("User-Agent"))
		browser, version := ua.Browser()

		entry := OperationLog{
			UserID:          userID,
			Action:          c.Request.Method,
			Target:          c.Request.URL.Path,
			Status:          c.Writer.Status(),
			IPAddress:       c.ClientIP(),
			UserAgent:       c.GetHeader("User-Agent"),
			Referer:         c.GetHeader("Referer"),
			Device:          ua.Platform(),
			Browser:         browser + " " + version,
			OperatingSystem: ua.OS(),
			Location:        geoLocation(c.ClientIP()),
			DurationMs:      time.Since(start).Milliseconds(),
		}

		if err := db.Create(&entry).Error; err != nil {
			logger.Warn("record operation log failed", zap.Error(err))
		}
	}
}
