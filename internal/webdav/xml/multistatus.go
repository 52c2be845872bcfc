package xml

import (
	"fmt"
	"io"

	"github.com/davbin/internal/types"
	"github.com/davbin/internal/webdav/status"
)

// MultistatusWriter 逐条写出 <D:response>，不在内存中构建完整文档
type MultistatusWriter struct {
	tw     *tokenWriter
	closed bool
}

// NewMultistatusWriter 写出 XML 声明与根元素
func NewMultistatusWriter(w io.Writer) *MultistatusWriter {
	mw := &MultistatusWriter{tw: newTokenWriter(w)}
	mw.tw.start(ElemMultistatus)
	return mw
}

// Write 写出一条响应并刷新到底层 writer
func (mw *MultistatusWriter) Write(entry types.MultistatusEntry) error {
	if mw.closed {
		return fmt.Errorf("multistatus 文档已关闭")
	}
	line, err := status.Line(entry.Code)
	if err != nil {
		return fmt.Errorf("渲染 multistatus 响应失败: %w", err)
	}
	mw.tw.start(ElemResponse)
	mw.tw.leaf(ElemHref, entry.Target)
	mw.tw.leaf(ElemStatus, line)
	mw.tw.end(ElemResponse)
	return mw.tw.flush()
}

// Close 结束根元素
func (mw *MultistatusWriter) Close() error {
	if mw.closed {
		return nil
	}
	mw.closed = true
	mw.tw.end(ElemMultistatus)
	return mw.tw.flush()
}

// RenderMultistatus 按顺序渲染所有条目。状态码先全部校验，失败时不写出任何内容
func RenderMultistatus(w io.Writer, entries []types.MultistatusEntry) error {
	for _, e := range entries {
		if _, err := status.Description(e.Code); err != nil {
			return fmt.Errorf("渲染 multistatus 响应失败: %w", err)
		}
	}

	mw := NewMultistatusWriter(w)
	for _, e := range entries {
		if err := mw.Write(e); err != nil {
			return err
		}
	}
	return mw.Close()
}
