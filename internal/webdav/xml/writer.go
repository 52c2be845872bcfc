package xml

import (
	"encoding/xml"
	"io"
)

var procInst = xml.ProcInst{Target: "xml", Inst: []byte(`version="1.0" encoding="UTF-8"`)}

// tokenWriter 在 xml.Encoder 之上记录首个错误，命名空间在首次使用时声明
type tokenWriter struct {
	enc      *xml.Encoder
	declared map[string]bool
	err      error
}

func newTokenWriter(w io.Writer) *tokenWriter {
	tw := &tokenWriter{
		enc:      xml.NewEncoder(w),
		declared: make(map[string]bool),
	}
	tw.token(procInst)
	return tw
}

func (tw *tokenWriter) token(t xml.Token) {
	if tw.err != nil {
		return
	}
	tw.err = tw.enc.EncodeToken(t)
}

func (tw *tokenWriter) start(n Name) {
	declare := !tw.declared[n.Prefix]
	tw.declared[n.Prefix] = true
	tw.token(n.start(declare))
}

func (tw *tokenWriter) end(n Name) {
	tw.token(n.end())
}

func (tw *tokenWriter) empty(n Name) {
	tw.start(n)
	tw.end(n)
}

func (tw *tokenWriter) leaf(n Name, text string) {
	tw.start(n)
	tw.token(xml.CharData(text))
	tw.end(n)
}

func (tw *tokenWriter) flush() error {
	if tw.err != nil {
		return tw.err
	}
	tw.err = tw.enc.Flush()
	return tw.err
}
