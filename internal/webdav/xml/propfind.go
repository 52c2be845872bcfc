package xml

import (
	"io"

	"github.com/davbin/internal/types"
)

type propfindHandler struct {
	inPropfind bool
	all        bool
	seen       map[string]bool
	props      []string
}

func (h *propfindHandler) StartElement(el Element) {
	if el.Is(ElemPropfind) {
		h.inPropfind = true
		return
	}
	if !h.inPropfind {
		return
	}
	if el.Is(ElemAllprop) {
		h.all = true
		return
	}
	if IsProperty(el.Local) && el.Is(DAV(el.Local)) && !h.seen[el.Local] {
		h.seen[el.Local] = true
		h.props = append(h.props, el.Local)
	}
}

func (h *propfindHandler) EndElement(el Element) {
	if el.Is(ElemPropfind) {
		h.inPropfind = false
	}
}

func (h *propfindHandler) CharData([]byte) {}

// ParsePropfind 解析 PROPFIND 请求体。<allprop/> 优先于具体属性；空的 <propfind/> 返回空集合
func ParsePropfind(r io.Reader) (types.PropfindRequest, error) {
	h := &propfindHandler{seen: make(map[string]bool)}
	if err := Parse(r, h); err != nil {
		return types.PropfindRequest{}, err
	}
	if h.all {
		return types.PropfindRequest{AllProperties: true, Properties: Properties()}, nil
	}
	props := h.props
	if props == nil {
		props = []string{}
	}
	return types.PropfindRequest{Properties: props}, nil
}
