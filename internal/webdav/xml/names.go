// Package xml WebDAV 文档的流式读写
package xml

import (
	"encoding/xml"
	"fmt"
	"unicode"
	"unicode/utf8"
)

const (
	// NamespaceDAV WebDAV 命名空间
	NamespaceDAV = "DAV:"
	// PrefixDAV 输出文档中 DAV: 绑定的前缀
	PrefixDAV = "D"
)

// Name 带命名空间的元素名，渲染为 prefix:local
type Name struct {
	Space  string
	Prefix string
	Local  string
}

// NewName 校验并创建元素名
func NewName(space, local, prefix string) (Name, error) {
	if space == "" {
		return Name{}, fmt.Errorf("元素 %q 缺少命名空间", local)
	}
	if !isNCName(local) {
		return Name{}, fmt.Errorf("非法的元素名: %q", local)
	}
	if prefix != "" && !isNCName(prefix) {
		return Name{}, fmt.Errorf("非法的命名空间前缀: %q", prefix)
	}
	return Name{Space: space, Prefix: prefix, Local: local}, nil
}

// MustName 同 NewName，出错时 panic，仅用于包级常量
func MustName(space, local, prefix string) Name {
	n, err := NewName(space, local, prefix)
	if err != nil {
		panic(err)
	}
	return n
}

// DAV 返回 DAV: 命名空间下的元素名
func DAV(local string) Name {
	return MustName(NamespaceDAV, local, PrefixDAV)
}

// Qualified 返回 prefix:local
func (n Name) Qualified() string {
	if n.Prefix == "" {
		return n.Local
	}
	return n.Prefix + ":" + n.Local
}

// XMLName 转换为 encoding/xml 的名字，可用于 Marshal/Unmarshal 的结构体字段
func (n Name) XMLName() xml.Name {
	return xml.Name{Space: n.Space, Local: n.Local}
}

func (n Name) start(declare bool) xml.StartElement {
	se := xml.StartElement{Name: xml.Name{Local: n.Qualified()}}
	if declare {
		attr := "xmlns"
		if n.Prefix != "" {
			attr += ":" + n.Prefix
		}
		se.Attr = []xml.Attr{{Name: xml.Name{Local: attr}, Value: n.Space}}
	}
	return se
}

func (n Name) end() xml.EndElement {
	return xml.EndElement{Name: xml.Name{Local: n.Qualified()}}
}

func isNCName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == utf8.RuneError || r == ':' {
			return false
		}
		if i == 0 && !(unicode.IsLetter(r) || r == '_') {
			return false
		}
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' || r == '.') {
			return false
		}
	}
	return true
}

// 元素词汇表
var (
	ElemMultistatus   = DAV("multistatus")
	ElemResponse      = DAV("response")
	ElemHref          = DAV("href")
	ElemStatus        = DAV("status")
	ElemPropfind      = DAV("propfind")
	ElemAllprop       = DAV("allprop")
	ElemProp          = DAV("prop")
	ElemLockscope     = DAV("lockscope")
	ElemLocktype      = DAV("locktype")
	ElemLockdiscovery = DAV("lockdiscovery")
	ElemActivelock    = DAV("activelock")
	ElemLockinfo      = DAV("lockinfo")
	ElemOwner         = DAV("owner")
	ElemTimeout       = DAV("timeout")
	ElemLocktoken     = DAV("locktoken")
	ElemWrite         = DAV("write")
	ElemExclusive     = DAV("exclusive")
	ElemShared        = DAV("shared")
)

var properties = [...]string{
	"creationdate",
	"displayname",
	"getcontentlanguage",
	"getcontentlength",
	"getcontenttype",
	"getetag",
	"getlastmodified",
	"lockdiscovery",
	"resourcetype",
	"source",
	"supportedlock",
}

// Properties 返回 WebDAV 属性词汇表的副本
func Properties() []string {
	out := make([]string, len(properties))
	copy(out, properties[:])
	return out
}

// IsProperty 是否为已知的 WebDAV 属性名
func IsProperty(local string) bool {
	for _, p := range properties {
		if p == local {
			return true
		}
	}
	return false
}
