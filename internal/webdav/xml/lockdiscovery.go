package xml

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/davbin/internal/types"
)

const (
	// DefaultLockOwner 未提供 owner 时使用
	DefaultLockOwner = "davbin"
	// DefaultLockTimeout 未提供超时时使用
	DefaultLockTimeout = 120 * time.Second
	// LockTokenScheme 锁令牌 URI 前缀
	LockTokenScheme = "opaquelocktoken:"
)

// WithDefaults 填充缺省的 owner、超时与令牌
func WithDefaults(d types.LockDescriptor) types.LockDescriptor {
	if d.Owner == "" {
		d.Owner = DefaultLockOwner
	}
	if d.Timeout <= 0 {
		d.Timeout = DefaultLockTimeout
	}
	if !d.HasToken() {
		d.Token = uuid.New()
	}
	return d
}

// TokenURI 返回 opaquelocktoken:{uuid}
func TokenURI(token uuid.UUID) string {
	return LockTokenScheme + token.String()
}

// RenderLockDiscovery 渲染 <D:prop><D:lockdiscovery><D:activelock>…
// activelock 子元素顺序固定: locktype?, lockscope, owner, timeout, locktoken
func RenderLockDiscovery(w io.Writer, d types.LockDescriptor) error {
	d = WithDefaults(d)

	tw := newTokenWriter(w)
	tw.start(ElemProp)
	tw.start(ElemLockdiscovery)
	tw.start(ElemActivelock)

	if d.Type == types.LockTypeWrite {
		tw.start(ElemLocktype)
		tw.empty(ElemWrite)
		tw.end(ElemLocktype)
	}

	tw.start(ElemLockscope)
	if d.Scope == types.LockScopeExclusive {
		tw.empty(ElemExclusive)
	} else {
		tw.empty(ElemShared)
	}
	tw.end(ElemLockscope)

	tw.start(ElemOwner)
	tw.leaf(ElemHref, d.Owner)
	tw.end(ElemOwner)

	tw.leaf(ElemTimeout, fmt.Sprintf("Seconds-%d", int64(d.Timeout/time.Second)))

	tw.start(ElemLocktoken)
	tw.leaf(ElemHref, TokenURI(d.Token))
	tw.end(ElemLocktoken)

	tw.end(ElemActivelock)
	tw.end(ElemLockdiscovery)
	tw.end(ElemProp)

	if err := tw.flush(); err != nil {
		return fmt.Errorf("渲染 lockdiscovery 失败: %w", err)
	}
	return nil
}
