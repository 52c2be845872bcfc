// Package webdav 模拟 WebDAV 服务端对各方法的响应，不存储任何资源
package webdav

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/davbin/internal/config"
	"github.com/davbin/internal/webdav/status"
	"github.com/davbin/internal/webdav/utils"
	davxml "github.com/davbin/internal/webdav/xml"
)

// WebDAV 扩展方法
const (
	MethodCopy      = "COPY"
	MethodLock      = "LOCK"
	MethodMkcol     = "MKCOL"
	MethodMove      = "MOVE"
	MethodPropfind  = "PROPFIND"
	MethodProppatch = "PROPPATCH"
	MethodUnlock    = "UNLOCK"
)

// allowedMethods 出现在 Allow 响应头中的方法
var allowedMethods = []string{
	http.MethodOptions,
	http.MethodGet,
	http.MethodHead,
	MethodCopy,
	MethodLock,
	MethodMkcol,
	MethodMove,
	MethodPropfind,
	MethodProppatch,
	MethodUnlock,
}

// Methods 注册到路由上的全部方法，其余方法经 Fallback 进入 Service 后返回 501
var Methods = append([]string{http.MethodPost, http.MethodPut, http.MethodDelete}, allowedMethods...)

// LastModifiedFunc 返回资源的最后修改时间，零值表示未知
type LastModifiedFunc func(c *gin.Context) time.Time

// Handler WebDAV 方法模拟处理器。请求之间不共享可变状态
type Handler struct {
	prefix         string
	maxMultistatus int
	lockOwner      string
	lockTimeout    time.Duration
	random         status.Source
	lastModified   LastModifiedFunc
	logger         logrus.FieldLogger
}

// Option 处理器选项
type Option func(*Handler)

// WithRandom 替换随机源，测试中用于得到确定的结果
func WithRandom(r status.Source) Option {
	return func(h *Handler) {
		h.random = r
	}
}

// WithLastModified 设置条件 GET 使用的最后修改时间来源
func WithLastModified(fn LastModifiedFunc) Option {
	return func(h *Handler) {
		h.lastModified = fn
	}
}

// NewHandler 创建处理器
func NewHandler(cfg config.WebDAVConfig, logger logrus.FieldLogger, opts ...Option) *Handler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	h := &Handler{
		prefix:         strings.TrimSuffix(cfg.PathPrefix, "/"),
		maxMultistatus: cfg.MaxMultistatus,
		lockOwner:      cfg.DefaultLockOwner,
		lockTimeout:    cfg.DefaultLockTimeout,
		random:         status.CryptoSource(),
		lastModified:   func(*gin.Context) time.Time { return time.Time{} },
		logger:         logger,
	}
	if h.maxMultistatus < 1 {
		h.maxMultistatus = 1
	}
	if h.lockOwner == "" {
		h.lockOwner = davxml.DefaultLockOwner
	}
	if h.lockTimeout <= 0 {
		h.lockTimeout = davxml.DefaultLockTimeout
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register 在路由组上为全部方法注册 Service
func (h *Handler) Register(group *gin.RouterGroup) {
	for _, m := range Methods {
		group.Handle(m, "/*path", h.Service)
	}
}

// Fallback 用作 NoRoute：前缀下的未知方法交给 Service，其余返回 404
func (h *Handler) Fallback(c *gin.Context) {
	p := c.Request.URL.Path
	if p == h.prefix || strings.HasPrefix(p, h.prefix+"/") {
		h.Service(c)
		return
	}
	c.Status(http.StatusNotFound)
}

// Service 按请求方法分派
func (h *Handler) Service(c *gin.Context) {
	switch method := c.Request.Method; method {
	case MethodCopy:
		h.HandleCopy(c)
	case MethodMove:
		h.HandleMove(c)
	case MethodLock:
		h.HandleLock(c)
	case MethodUnlock:
		h.HandleUnlock(c)
	case MethodMkcol:
		h.HandleMkcol(c)
	case MethodPropfind:
		h.HandlePropfind(c)
	case MethodProppatch:
		h.HandleProppatch(c)
	case http.MethodOptions:
		h.HandleOptions(c)
	case http.MethodGet:
		h.HandleGet(c)
	case http.MethodHead:
		h.HandleHead(c)
	case http.MethodPost, http.MethodPut, http.MethodDelete:
		h.methodNotAllowed(c)
	default:
		h.fail(c, http.StatusNotImplemented, "Method %s is not implemented by this server", method)
	}
}

func (h *Handler) resourcePath(c *gin.Context) string {
	return utils.URL.ResourcePath(c.Request.URL.Path, h.prefix)
}
