package webdav

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/davbin/internal/webdav/status"
	davxml "github.com/davbin/internal/webdav/xml"
)

// HandleMkcol 模拟 MKCOL
func (h *Handler) HandleMkcol(c *gin.Context) {
	if responseType(c) == responseError {
		h.simulate(c, h.resolve(c, status.MkcolErrors))
		return
	}
	h.succeed(c, http.StatusCreated)
}

// HandlePropfind 属性不做模拟，请求体只用于记录日志
func (h *Handler) HandlePropfind(c *gin.Context) {
	if c.Request.Body != nil && c.Request.Body != http.NoBody && c.Request.ContentLength != 0 {
		req, err := davxml.ParsePropfind(c.Request.Body)
		if err != nil {
			h.entry(c).WithError(err).Warn("invalid propfind body")
		} else {
			h.entry(c).WithFields(logrus.Fields{
				"allprop":    req.AllProperties,
				"properties": req.Properties,
			}).Debug("propfind requested")
		}
	}
	h.methodNotAllowed(c)
}

// HandleProppatch 属性不做模拟
func (h *Handler) HandleProppatch(c *gin.Context) {
	h.methodNotAllowed(c)
}

// HandleOptions 声明 DAV 能力与支持的方法
func (h *Handler) HandleOptions(c *gin.Context) {
	c.Header("DAV", "1, 2")
	c.Header("MS-Author-Via", "DAV")
	c.Header("Allow", strings.Join(allowedMethods, ", "))
	h.succeed(c, http.StatusOK)
}

// HandleGet 条件 GET，资源内容不做模拟
func (h *Handler) HandleGet(c *gin.Context) {
	if h.checkModified(c) {
		h.methodNotAllowed(c)
	}
}

// HandleHead 同 GET，但不写响应体
func (h *Handler) HandleHead(c *gin.Context) {
	if h.checkModified(c) {
		c.Header("Allow", strings.Join(allowedMethods, ", "))
		c.Status(http.StatusMethodNotAllowed)
	}
}

// checkModified 资源未修改时返回 304 与 false；否则设置 Last-Modified 并返回 true
func (h *Handler) checkModified(c *gin.Context) bool {
	lastModified := h.lastModified(c)
	if lastModified.IsZero() {
		return true
	}
	lastModified = lastModified.UTC().Truncate(time.Second)

	if since, err := http.ParseTime(c.GetHeader("If-Modified-Since")); err == nil && !lastModified.After(since) {
		h.succeed(c, http.StatusNotModified)
		return false
	}
	c.Header("Last-Modified", lastModified.Format(http.TimeFormat))
	return true
}

func (h *Handler) methodNotAllowed(c *gin.Context) {
	c.Header("Allow", strings.Join(allowedMethods, ", "))
	h.fail(c, http.StatusMethodNotAllowed, "Method %s is not supported on %s", c.Request.Method, c.Request.URL.Path)
}
