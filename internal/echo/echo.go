// Package echo 将请求的参数、请求头与请求体以 JSON 形式回显
package echo

import (
	"fmt"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/sirupsen/logrus"

	"github.com/davbin/internal/webdav/utils"
)

const (
	contentTypeForm = "application/x-www-form-urlencoded"
	contentTypeJSON = "application/json"

	maxBodyBytes = 1 << 20
)

// Handler 回显处理器
type Handler struct {
	logger logrus.FieldLogger
}

// NewHandler 创建回显处理器
func NewHandler(logger logrus.FieldLogger) *Handler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Handler{logger: logger}
}

// Register 注册 GET/DELETE/POST/PUT
func (h *Handler) Register(group *gin.RouterGroup) {
	group.GET("/*path", h.HandleBodyless)
	group.DELETE("/*path", h.HandleBodyless)
	group.POST("/*path", h.HandleWithBody)
	group.PUT("/*path", h.HandleWithBody)
}

// HandleBodyless 回显 args、headers 与 url
func (h *Handler) HandleBodyless(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"args":       flatten(c.Request.URL.Query()),
		"headers":    flatten(c.Request.Header),
		"attributes": attributes(c),
		"url":        requestURL(c.Request),
	})
}

// HandleWithBody 回显请求体：表单进入 form，JSON 进入 json 与 data
func (h *Handler) HandleWithBody(c *gin.Context) {
	contentType := c.GetHeader("Content-Type")
	if contentType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content-Type header is required"})
		return
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid Content-Type: %v", err)})
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	form := map[string]interface{}{}
	jsonBody := map[string]interface{}{}
	data := ""

	switch mediaType {
	case contentTypeForm:
		values := map[string][]string{}
		if err := c.ShouldBindWith(&values, binding.FormPost); err != nil {
			h.logger.WithError(err).Warn("bind form body failed")
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		form = flatten(values)
	case contentTypeJSON:
		err := c.ShouldBindBodyWith(&jsonBody, binding.JSON)
		raw, ok := c.Get(gin.BodyBytesKey)
		if !ok {
			h.logger.WithError(err).Warn("read json body failed")
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("read body: %v", err)})
			return
		}
		data = string(raw.([]byte))
		// 空请求体回显为空对象
		if err != nil && data != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid JSON body: %v", err)})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"args":       flatten(c.Request.URL.Query()),
		"headers":    flatten(c.Request.Header),
		"attributes": attributes(c),
		"url":        requestURL(c.Request),
		"form":       form,
		"json":       jsonBody,
		"data":       data,
	})
}

// flatten 单值保持为字符串，多值为数组
func flatten(values map[string][]string) map[string]interface{} {
	out := make(map[string]interface{}, len(values))
	for k, v := range values {
		if len(v) == 1 {
			out[k] = v[0]
		} else {
			out[k] = v
		}
	}
	return out
}

func attributes(c *gin.Context) map[string]interface{} {
	out := make(map[string]interface{}, len(c.Keys))
	for k, v := range c.Keys {
		switch v.(type) {
		case bool, int, int64, float64, string, []string:
			out[k] = v
		default:
			out[k] = fmt.Sprint(v)
		}
	}
	return out
}

func requestURL(r *http.Request) string {
	scheme, host := utils.URL.Origin(r)
	u := scheme + "://" + host + r.URL.EscapedPath()
	if r.URL.RawQuery != "" {
		u += "?" + r.URL.RawQuery
	}
	return u
}
