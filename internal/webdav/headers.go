package webdav

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	davxml "github.com/davbin/internal/webdav/xml"
)

// response_type 参数的取值
const (
	responseError       = "error"
	responseMultistatus = "multistatus"
)

// DepthInfinity Depth 头缺省值
const DepthInfinity = "infinity"

func responseType(c *gin.Context) string {
	return strings.ToLower(strings.TrimSpace(c.Query("response_type")))
}

// boolParam 参数缺失时返回默认值；出现但无法解析时视为 false
func boolParam(c *gin.Context, name string, def bool) bool {
	v, ok := c.GetQuery(name)
	if !ok || strings.TrimSpace(v) == "" {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false
	}
	return b
}

// ParseDepth 返回 Depth 头的值，缺失时为 infinity
func ParseDepth(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return DepthInfinity
	}
	return strings.ToLower(header)
}

// ParseOverwrite 返回 Overwrite 头的值，缺失时为 T
func ParseOverwrite(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return "T"
	}
	return strings.ToUpper(header)
}

// ParseLockRefreshToken 从形如 (<opaquelocktoken:uuid>) 的 If 头中取出令牌
func ParseLockRefreshToken(ifHeader string) (string, bool) {
	ifHeader = strings.TrimSpace(ifHeader)
	if !strings.HasPrefix(ifHeader, "(<") ||
		!strings.HasSuffix(ifHeader, ">)") ||
		!strings.Contains(ifHeader, davxml.LockTokenScheme) {
		return "", false
	}

	token := ifHeader[len("(<"):]
	if idx := strings.Index(token, ">)"); idx >= 0 {
		token = token[:idx]
	}
	return token, true
}

// maxTimeoutSeconds time.Duration 能表示的最大秒数
const maxTimeoutSeconds = math.MaxInt64 / int64(time.Second)

// ParseTimeout 解析 Timeout 头中的第一个 Second-N，Infinite 或无法解析时返回 0。
// 超出 time.Duration 范围的秒数截断为 maxTimeoutSeconds
func ParseTimeout(header string) time.Duration {
	for _, part := range strings.Split(header, ",") {
		part = strings.TrimSpace(part)
		if len(part) < len("Second-") || !strings.EqualFold(part[:len("Second-")], "Second-") {
			continue
		}
		digits := part[len("Second-"):]
		seconds, err := strconv.ParseInt(digits, 10, 64)
		if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(digits, "-") {
			seconds, err = maxTimeoutSeconds, nil
		}
		if err != nil || seconds <= 0 {
			continue
		}
		if seconds > maxTimeoutSeconds {
			seconds = maxTimeoutSeconds
		}
		return time.Duration(seconds) * time.Second
	}
	return 0
}
