package xml

import (
	"io"
	"strings"

	"github.com/davbin/internal/types"
)

// lockInfoHandler 从 <lockinfo> 中提取 scope、type 与 owner href
type lockInfoHandler struct {
	inLockScope bool
	inLockType  bool
	inOwner     bool
	inOwnerHref bool

	scope string
	typ   string
	owner strings.Builder
}

func (h *lockInfoHandler) StartElement(el Element) {
	switch {
	case h.inLockScope:
		if h.scope == "" {
			h.scope = el.Local
		}
	case h.inLockType:
		if h.typ == "" {
			h.typ = el.Local
		}
	case el.Is(ElemLockscope):
		h.inLockScope = true
	case el.Is(ElemLocktype):
		h.inLockType = true
	case el.Is(ElemOwner):
		h.inOwner = true
	case h.inOwner && el.Is(ElemHref):
		h.inOwnerHref = true
	}
}

func (h *lockInfoHandler) EndElement(el Element) {
	switch {
	case el.Is(ElemLockscope):
		h.inLockScope = false
	case el.Is(ElemLocktype):
		h.inLockType = false
	case el.Is(ElemOwner):
		h.inOwner = false
	case el.Is(ElemHref):
		h.inOwnerHref = false
	}
}

func (h *lockInfoHandler) CharData(data []byte) {
	if h.inOwnerHref {
		h.owner.Write(data)
	}
}

// ParseLockInfo 解析 LOCK 请求体。没有 <owner><href> 时 owner 为空，不视为错误
func ParseLockInfo(r io.Reader) (types.LockInfoRequest, error) {
	h := &lockInfoHandler{}
	if err := Parse(r, h); err != nil {
		return types.LockInfoRequest{}, err
	}
	return types.LockInfoRequest{
		Scope:     h.scope,
		Type:      h.typ,
		OwnerHref: strings.TrimSpace(h.owner.String()),
	}, nil
}
