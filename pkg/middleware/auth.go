package middleware

import (
	"net/http"

	constants "TransLingo/pkg/constant"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// AuthRequired 要求已登录会话；当前用户 ID 写入 context 供后续处理器读取。
// 用会话对象代替进程级全局变量保存登录状态。
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(constants.SessionUserID)
		if userID == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}
		c.Set(constants.SessionUserID, userID)
		c.Next()
	}
}

// CurrentUserID 读取当前登录用户 ID，未登录返回 0
func CurrentUserID(c *gin.Context) uint {
	v, ok := c.Get(constants.SessionUserID)
	if !ok {
		session := sessions.Default(c)
		v = session.Get(constants.SessionUserID)
	}
	if id, ok := v.(uint); ok {
		return id
	}
	return 0
}
