package handlers

import (
	"net/http"

	"TransLingo/pkg/metrics"
	"TransLingo/pkg/response"

	"github.com/gin-gonic/gin"
)

// HealthCheck 健康检查接口
func (h *Handlers) HealthCheck(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": "database connection failed"})
		return
	}
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": "database ping failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// SystemStatus 运行时与主机指标快照
func (h *Handlers) SystemStatus(c *gin.Context) {
	response.Success(c, "ok", metrics.CollectSystemStats())
}
