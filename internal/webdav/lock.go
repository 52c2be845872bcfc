package webdav

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/davbin/internal/middleware"
	davxml "github.com/davbin/internal/webdav/xml"
)

// HandleLock 模拟 LOCK：带 If 头时为刷新，否则为新建锁
func (h *Handler) HandleLock(c *gin.Context) {
	if ParseDepth(c.GetHeader("Depth")) == "1" {
		h.fail(c, http.StatusBadRequest, "Depth 1 is not allowed for LOCK")
		return
	}

	if token, ok := ParseLockRefreshToken(c.GetHeader("If")); ok {
		h.refreshLock(c, token)
		return
	}

	if responseType(c) == responseError {
		h.fail(c, http.StatusLocked, "Resource %s is already locked", h.resourcePath(c))
		return
	}

	info, err := davxml.ParseLockInfo(c.Request.Body)
	if err != nil {
		h.internalError(c, fmt.Errorf("解析 lockinfo 失败: %w", err))
		return
	}

	d := info.Descriptor()
	if d.Owner == "" {
		d.Owner = h.lockOwner
	}
	d.Timeout = ParseTimeout(c.GetHeader("Timeout"))
	if d.Timeout == 0 {
		d.Timeout = h.lockTimeout
	}
	d = davxml.WithDefaults(d)

	h.entry(c).WithFields(logrus.Fields{
		"scope": d.Scope.String(),
		"type":  d.Type,
		"owner": d.Owner,
		"token": d.Token.String(),
	}).Debug("lock granted")

	c.Set(middleware.OutcomeKey, outcomeSuccess)
	c.Header("Lock-Token", "<"+davxml.TokenURI(d.Token)+">")
	h.writeXML(c, http.StatusOK, func(w io.Writer) error {
		return davxml.RenderLockDiscovery(w, d)
	})
}

func (h *Handler) refreshLock(c *gin.Context, token string) {
	resource := h.resourcePath(c)
	if responseType(c) == responseError {
		h.fail(c, http.StatusPreconditionFailed, "Lock %s does not exist for %s", token, resource)
		return
	}
	if !boolParam(c, "lock_tokens_match", true) {
		h.fail(c, http.StatusPreconditionFailed, "Lock token %s does not match the lock on %s", token, resource)
		return
	}
	h.succeed(c, http.StatusNoContent)
}

// HandleUnlock 模拟 UNLOCK
func (h *Handler) HandleUnlock(c *gin.Context) {
	token := c.GetHeader("Lock-Token")
	if token == "" {
		h.fail(c, http.StatusBadRequest, "Lock-Token header is required")
		return
	}
	if responseType(c) == responseError {
		c.Set(middleware.OutcomeKey, outcomeSimulated)
		c.Status(http.StatusLocked)
		return
	}
	h.succeed(c, http.StatusNoContent)
}
