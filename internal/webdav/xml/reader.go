package xml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html/charset"
)

// ErrEmptyDocument 请求体中没有根元素
var ErrEmptyDocument = errors.New("xml document has no root element")

// Element 解析时看到的元素名，Prefix 为空表示没有已知的前缀绑定
type Element struct {
	Space  string
	Prefix string
	Local  string
}

// Is 有前缀绑定时按限定名比较，否则按本地名比较
func (e Element) Is(n Name) bool {
	if e.Local != n.Local {
		return false
	}
	if e.Prefix != "" {
		return e.Space == n.Space
	}
	return true
}

// EventHandler 流式解析回调
type EventHandler interface {
	StartElement(el Element)
	EndElement(el Element)
	CharData(data []byte)
}

// Parse 逐个读取 token 并驱动 handler，不构建文档树。
// XML 声明中的非 UTF-8 编码按其标签转换
func Parse(r io.Reader, h EventHandler) error {
	d := xml.NewDecoder(r)
	d.CharsetReader = charset.NewReaderLabel
	var scopes []map[string]string // uri -> prefix
	seenRoot := false

	for {
		tok, err := d.Token()
		if err == io.EOF {
			if !seenRoot {
				return ErrEmptyDocument
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("解析XML失败: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			seenRoot = true
			scopes = append(scopes, bindings(t.Attr))
			h.StartElement(resolve(t.Name, scopes))
		case xml.EndElement:
			h.EndElement(resolve(t.Name, scopes))
			if len(scopes) > 0 {
				scopes = scopes[:len(scopes)-1]
			}
		case xml.CharData:
			h.CharData(t)
		}
	}
}

func bindings(attrs []xml.Attr) map[string]string {
	var m map[string]string
	for _, a := range attrs {
		if a.Name.Space != "xmlns" {
			continue
		}
		if m == nil {
			m = make(map[string]string)
		}
		m[a.Value] = a.Name.Local
	}
	return m
}

func resolve(n xml.Name, scopes []map[string]string) Element {
	el := Element{Space: n.Space, Local: n.Local}
	for i := len(scopes) - 1; i >= 0; i-- {
		if p, ok := scopes[i][n.Space]; ok {
			el.Prefix = p
			break
		}
	}
	return el
}
