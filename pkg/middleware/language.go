package middleware

import (
	constants "TransLingo/pkg/constant"

	"github.com/gin-gonic/gin"
)

// LanguageMiddleware 解析请求语言（查询参数优先，其次 Accept-Language 前缀）
func LanguageMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := c.DefaultQuery("lang", "")
		if lang == "" {
			accept := c.GetHeader("Accept-Language")
			if len(accept) >= 2 {
				lang = accept[:2]
			}
		}
		if lang != "en" && lang != "zh" {
			lang = "en" // 无效语言一律回退英文
		}

		c.Set(constants.LangField, lang)
		c.Next()
	}
}

// RequestLang 读取请求语言
func RequestLang(c *gin.Context) string {
	if v, ok := c.Get(constants.LangField); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return "en"
}
