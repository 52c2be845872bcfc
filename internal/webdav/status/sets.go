package status

import (
	"net/http"
	"strconv"
	"strings"
)

// Set 某个方法允许模拟的错误状态码集合，创建后不可修改
type Set struct {
	codes []int
}

func newSet(codes ...int) Set {
	return Set{codes: codes}
}

var (
	// CopyErrors COPY/MOVE 可模拟的错误
	CopyErrors = newSet(
		http.StatusForbidden,
		http.StatusConflict,
		http.StatusPreconditionFailed,
		http.StatusLocked,
		http.StatusBadGateway,
		http.StatusInsufficientStorage,
	)

	// MkcolErrors MKCOL 可模拟的错误
	MkcolErrors = newSet(
		http.StatusForbidden,
		http.StatusMethodNotAllowed,
		http.StatusConflict,
		http.StatusUnsupportedMediaType,
		http.StatusInsufficientStorage,
	)
)

// Contains 是否包含该状态码
func (s Set) Contains(code int) bool {
	for _, c := range s.codes {
		if c == code {
			return true
		}
	}
	return false
}

// Codes 返回副本
func (s Set) Codes() []int {
	out := make([]int, len(s.codes))
	copy(out, s.codes)
	return out
}

// Len 集合大小
func (s Set) Len() int {
	return len(s.codes)
}

// Pick 均匀随机选取一个状态码
func (s Set) Pick(r Source) int {
	return s.codes[r.Intn(len(s.codes))]
}

// Resolve 请求的状态码合法且在集合内时原样返回，否则随机选取
func (s Set) Resolve(requested string, r Source) int {
	if code, err := strconv.Atoi(strings.TrimSpace(requested)); err == nil && s.Contains(code) {
		return code
	}
	return s.Pick(r)
}

func (s Set) String() string {
	parts := make([]string, len(s.codes))
	for i, c := range s.codes {
		parts[i] = strconv.Itoa(c)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
