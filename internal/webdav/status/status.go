// Package status 状态码描述表与各方法的模拟错误集合
package status

import (
	"errors"
	"fmt"
)

// ProtocolVersion 多状态响应中状态行使用的协议版本
const ProtocolVersion = "HTTP/1.1"

// ErrUnknown 状态码不在描述表中
var ErrUnknown = errors.New("status code has no description")

var descriptions = map[int]string{
	100: "Continue",
	101: "Switching Protocols",
	102: "Processing",
	103: "Early Hints",

	200: "OK",
	201: "Created",
	202: "Accepted",
	203: "Non-Authoritative Information",
	204: "No Content",
	205: "Reset Content",
	206: "Partial Content",
	207: "Multi-Status",
	208: "Already Reported",
	226: "IM Used",

	300: "Multiple Choices",
	301: "Moved Permanently",
	302: "Found",
	303: "See Other",
	304: "Not Modified",
	305: "Use Proxy",
	307: "Temporary Redirect",
	308: "Permanent Redirect",

	400: "Bad Request",
	401: "Unauthorized",
	402: "Payment Required",
	403: "Forbidden",
	404: "Not Found",
	405: "Method Not Allowed",
	406: "Not Acceptable",
	407: "Proxy Authentication Required",
	408: "Request Timeout",
	409: "Conflict",
	410: "Gone",
	411: "Length Required",
	412: "Precondition Failed",
	413: "Payload Too Large",
	414: "URI Too Long",
	415: "Unsupported Media Type",
	416: "Range Not Satisfiable",
	417: "Expectation Failed",
	418: "I'm a teapot",
	421: "Misdirected Request",
	422: "Unprocessable Entity",
	423: "Locked",
	424: "Failed Dependency",
	425: "Too Early",
	426: "Upgrade Required",
	428: "Precondition Required",
	429: "Too Many Requests",
	431: "Request Header Fields Too Large",
	451: "Unavailable For Legal Reasons",

	500: "Internal Server Error",
	501: "Not Implemented",
	502: "Bad Gateway",
	503: "Service Unavailable",
	504: "Gateway Timeout",
	505: "HTTP Version Not Supported",
	506: "Variant Also Negotiates",
	507: "Insufficient Storage",
	508: "Loop Detected",
	510: "Not Extended",
	511: "Network Authentication Required",
}

// Description 返回状态码的标准原因短语
func Description(code int) (string, error) {
	desc, ok := descriptions[code]
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrUnknown, code)
	}
	return desc, nil
}

// Line 多状态响应中的状态行，例如 "HTTP/1.1 423 Locked"
func Line(code int) (string, error) {
	desc, err := Description(code)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %d %s", ProtocolVersion, code, desc), nil
}

// Codes 描述表中的全部状态码，无序
func Codes() []int {
	codes := make([]int, 0, len(descriptions))
	for code := range descriptions {
		codes = append(codes, code)
	}
	return codes
}

// ========================================
// Range predicates
// ========================================

func IsInformational(code int) bool { return code >= 100 && code < 200 }

func IsSuccess(code int) bool { return code >= 200 && code < 300 }

func IsRedirection(code int) bool { return code >= 300 && code < 400 }

func IsClientError(code int) bool { return code >= 400 && code < 500 }

func IsServerError(code int) bool { return code >= 500 && code < 600 }

// IsError 4xx 或 5xx
func IsError(code int) bool { return IsClientError(code) || IsServerError(code) }

// Class 返回状态码所属的类别，用于日志
func Class(code int) string {
	switch {
	case IsInformational(code):
		return "informational"
	case IsSuccess(code):
		return "success"
	case IsRedirection(code):
		return "redirection"
	case IsClientError(code):
		return "client_error"
	case IsServerError(code):
		return "server_error"
	default:
		return "unknown"
	}
}
