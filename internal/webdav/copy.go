package webdav

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/davbin/internal/middleware"
	"github.com/davbin/internal/types"
	"github.com/davbin/internal/webdav/status"
	"github.com/davbin/internal/webdav/utils"
	davxml "github.com/davbin/internal/webdav/xml"
)

// HandleCopy 模拟 COPY
func (h *Handler) HandleCopy(c *gin.Context) {
	resource := h.resourcePath(c)
	if resource == "" {
		h.fail(c, http.StatusBadRequest, "No resource given in request path")
		return
	}

	destination := c.GetHeader("Destination")
	if destination == "" {
		h.fail(c, http.StatusBadRequest, "Destination header is required")
		return
	}
	if utils.URL.SameResource(resource, destination, h.prefix) {
		h.fail(c, http.StatusForbidden, "Destination %s is the same as the source", destination)
		return
	}

	overwrite := ParseOverwrite(c.GetHeader("Overwrite"))

	switch responseType(c) {
	case responseError:
		h.simulate(c, h.resolve(c, status.CopyErrors))
	case responseMultistatus:
		h.sendMultistatus(c, destination)
	default:
		if !boolParam(c, "resource_exists", false) {
			h.succeed(c, http.StatusCreated)
			return
		}
		if overwrite == "F" {
			h.fail(c, http.StatusPreconditionFailed, "Resource %s exists and Overwrite is F", destination)
			return
		}
		h.succeed(c, http.StatusNoContent)
	}
}

// HandleMove MOVE 与 COPY 的模拟行为一致
func (h *Handler) HandleMove(c *gin.Context) {
	h.HandleCopy(c)
}

// sendMultistatus 生成 1..maxMultistatus 条随机错误
func (h *Handler) sendMultistatus(c *gin.Context, destination string) {
	base := utils.URL.DestinationBase(c.Request, h.prefix, destination)
	n := 1 + h.random.Intn(h.maxMultistatus)

	entries := make([]types.MultistatusEntry, n)
	for i := range entries {
		entries[i] = types.MultistatusEntry{
			Code:   status.CopyErrors.Pick(h.random),
			Target: base + "R" + strconv.Itoa(i),
		}
	}

	c.Set(middleware.OutcomeKey, outcomeMultistatus)
	h.writeXML(c, http.StatusMultiStatus, func(w io.Writer) error {
		return davxml.RenderMultistatus(w, entries)
	})
}
