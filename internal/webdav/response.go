package webdav

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/davbin/internal/middleware"
	"github.com/davbin/internal/types"
	"github.com/davbin/internal/webdav/status"
)

// 记录到请求上下文中的模拟结果
const (
	outcomeSuccess     = "success"
	outcomeClientError = "client_error"
	outcomeSimulated   = "simulated_error"
	outcomeMultistatus = "multistatus"
	outcomeInternal    = "internal_error"
)

// ContentTypeXML XML 响应的媒体类型
const ContentTypeXML = "text/xml; charset=UTF-8"

func (h *Handler) entry(c *gin.Context) *logrus.Entry {
	return h.logger.WithFields(logrus.Fields{
		"method":   c.Request.Method,
		"resource": h.resourcePath(c),
	})
}

// succeed 无响应体的成功状态
func (h *Handler) succeed(c *gin.Context, code int) {
	c.Set(middleware.OutcomeKey, outcomeSuccess)
	c.Status(code)
}

// fail 协议错误，以纯文本返回描述
func (h *Handler) fail(c *gin.Context, code int, format string, args ...interface{}) {
	err := types.NewSimulationError(code, format, args...)
	h.entry(c).WithError(err).Debug("request rejected")
	c.Set(middleware.OutcomeKey, outcomeClientError)
	c.String(err.Code, err.Message)
}

// simulate 返回刻意选择的错误状态码，响应体为标准描述
func (h *Handler) simulate(c *gin.Context, code int) {
	if !status.IsError(code) {
		h.internalError(c, fmt.Errorf("模拟状态码 %d 不是错误状态", code))
		return
	}
	desc, err := status.Description(code)
	if err != nil {
		h.internalError(c, err)
		return
	}
	h.entry(c).WithField("status", code).Debug("simulated error")
	c.Set(middleware.OutcomeKey, outcomeSimulated)
	c.String(code, desc)
}

// resolve 取 status_code 参数指定的状态码，不在集合内时随机选取
func (h *Handler) resolve(c *gin.Context, set status.Set) int {
	requested := strings.TrimSpace(c.Query("status_code"))
	code := set.Resolve(requested, h.random)
	if requested != "" && requested != strconv.Itoa(code) {
		h.entry(c).WithFields(logrus.Fields{
			"status_code": requested,
			"allowed":     set.String(),
			"picked":      code,
		}).Info("status_code not allowed")
	}
	return code
}

// internalError 记录错误并以 500 结束请求；已开始写响应时只能中止
func (h *Handler) internalError(c *gin.Context, err error) {
	h.entry(c).WithError(err).Warn("request failed")
	c.Set(middleware.OutcomeKey, outcomeInternal)
	_ = c.Error(err)
	if c.Writer.Written() {
		c.Abort()
		return
	}
	c.Writer.Header().Del("Content-Type")
	c.Writer.Header().Del("Transfer-Encoding")
	c.AbortWithStatus(http.StatusInternalServerError)
}

// writeXML 设置 XML 响应头与状态码后流式写出文档
func (h *Handler) writeXML(c *gin.Context, code int, render func(w io.Writer) error) {
	c.Header("Content-Type", ContentTypeXML)
	c.Header("Transfer-Encoding", "chunked")
	c.Status(code)
	if err := render(c.Writer); err != nil {
		h.internalError(c, fmt.Errorf("写出 %s 响应失败: %w", c.Request.Method, err))
	}
}
