package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SecurityHeadersMiddleware 为所有响应添加日期与安全相关的响应头
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return securityHeaders(time.Now)
}

func securityHeaders(now func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Date", now().UTC().Format(http.TimeFormat))
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		c.Next()
	}
}
