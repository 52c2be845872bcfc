package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ========================================
// Lock Types - 锁相关类型定义
// ========================================

// LockScope 锁范围
type LockScope int

const (
	LockScopeExclusive LockScope = iota
	LockScopeShared
)

// String 返回小写元素名
func (s LockScope) String() string {
	if s == LockScopeExclusive {
		return "exclusive"
	}
	return "shared"
}

// ParseLockScope 只有 "exclusive" 映射为独占锁，其余一律视为共享锁
func ParseLockScope(scope string) LockScope {
	if scope == LockScopeExclusive.String() {
		return LockScopeExclusive
	}
	return LockScopeShared
}

// LockTypeWrite 唯一会被渲染的锁类型
const LockTypeWrite = "write"

// LockDescriptor 单次LOCK响应渲染所需的锁描述，不做持久化
type LockDescriptor struct {
	Scope   LockScope
	Type    string
	Owner   string
	Timeout time.Duration
	Token   uuid.UUID
}

// HasToken 是否显式指定了令牌
func (d LockDescriptor) HasToken() bool {
	return d.Token != uuid.Nil
}

// LockInfoRequest LOCK请求体解析结果
type LockInfoRequest struct {
	Scope     string
	Type      string
	OwnerHref string
}

// Descriptor 转换为渲染用的锁描述
func (r LockInfoRequest) Descriptor() LockDescriptor {
	return LockDescriptor{
		Scope: ParseLockScope(r.Scope),
		Type:  r.Type,
		Owner: strings.TrimSpace(r.OwnerHref),
	}
}

// ========================================
// Multistatus / PROPFIND Types
// ========================================

// MultistatusEntry 多状态响应中的一项
type MultistatusEntry struct {
	Code   int
	Target string
}

// PropfindRequest PROPFIND请求体解析结果
type PropfindRequest struct {
	AllProperties bool
	Properties    []string
}

// ========================================
// Errors
// ========================================

// SimulationError 面向客户端的协议错误
type SimulationError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

// NewSimulationError 创建协议错误
func NewSimulationError(code int, format string, args ...interface{}) *SimulationError {
	return &SimulationError{Code: code, Message: fmt.Sprintf(format, args...)}
}
