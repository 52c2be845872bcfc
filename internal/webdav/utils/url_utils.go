package utils

import (
	"net/http"
	"net/url"
	"strings"
)

// URLUtil 请求与目标 URL 工具类
type URLUtil struct{}

var URL URLUtil

// Origin 返回请求的 scheme 与 host，X-Forwarded-Proto 优先
func (URLUtil) Origin(r *http.Request) (scheme, host string) {
	scheme = "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme, r.Host
}

// ResourcePath 去掉路径前缀后的资源路径，根路径视为空
func (URLUtil) ResourcePath(requestPath, prefix string) string {
	p := strings.TrimPrefix(requestPath, prefix)
	if p == "/" {
		return ""
	}
	return p
}

// DestinationPath 从 Destination 头中取出路径部分并去掉路径前缀
func (u URLUtil) DestinationPath(destination, prefix string) string {
	p := destination
	if parsed, err := url.Parse(destination); err == nil {
		p = parsed.Path
	}
	return u.ResourcePath(p, prefix)
}

// SameResource Destination 是否指向请求的资源本身
func (u URLUtil) SameResource(resource, destination, prefix string) bool {
	if destination == resource {
		return true
	}
	return resource != "" && u.DestinationPath(destination, prefix) == resource
}

// DestinationBase 生成以 / 结尾的目标集合 URL，multistatus 的各条目在其后追加名称
func (u URLUtil) DestinationBase(r *http.Request, prefix, destination string) string {
	scheme, host := u.Origin(r)
	p := destination
	if parsed, err := url.Parse(destination); err == nil {
		if parsed.Host != "" {
			host = parsed.Host
			if parsed.Scheme != "" {
				scheme = parsed.Scheme
			}
		}
		p = parsed.EscapedPath()
	}

	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if prefix != "" && p != prefix && !strings.HasPrefix(p, prefix+"/") {
		p = prefix + p
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return scheme + "://" + host + p
}
