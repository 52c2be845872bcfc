package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/davbin/internal/webdav/status"
)

// OutcomeKey 处理器记录模拟结果时使用的上下文键
const OutcomeKey = "davbin.outcome"

// LoggerMiddleware 每个请求输出一条结构化日志
func LoggerMiddleware(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		c.Next()

		code := c.Writer.Status()
		fields := logrus.Fields{
			"status":  code,
			"class":   status.Class(code),
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"latency": time.Since(startTime),
			"ip":      c.ClientIP(),
		}
		if outcome := c.GetString(OutcomeKey); outcome != "" {
			fields["outcome"] = outcome
		}

		entry := logger.WithFields(fields)
		if len(c.Errors) > 0 {
			entry.WithField("errors", c.Errors.String()).Error("request failed")
			return
		}
		entry.Info("request processed")
	}
}

// RecoveryMiddleware 捕获 panic 并返回 500
func RecoveryMiddleware(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.WithFields(logrus.Fields{
					"error":  err,
					"method": c.Request.Method,
					"path":   c.Request.URL.Path,
				}).Error("panic recovered")
				c.AbortWithStatus(http.StatusInternalServerError)
			}
		}()
		c.Next()
	}
}
