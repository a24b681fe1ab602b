// Package timeout defines centralized timeout constants for temporal parsing.
// Package timeout 定义时间解析的集中式超时常量。
package timeout

import "time"

// Temporal parsing timeout constants.
// 时间解析超时常量。
const (
	// LLMRequestTimeout is the timeout for a single LLM completion.
	// LLMRequestTimeout 是单次 LLM 调用的超时时间。
	LLMRequestTimeout = 30 * time.Second

	// FallbackTimeout bounds the whole fallback chain for one sentence.
	// FallbackTimeout 是单句回退解析链的总超时时间。
	FallbackTimeout = 45 * time.Second

	// RequestTimeout is the timeout for one API parse request.
	// RequestTimeout 是单个 API 解析请求的超时时间。
	RequestTimeout = time.Minute

	// ShutdownTimeout is the grace period for in-flight requests on shutdown.
	// ShutdownTimeout 是关闭服务时等待处理中请求的时间。
	ShutdownTimeout = 10 * time.Second

	// MaxTruncateLength is the maximum length for truncating strings in logs.
	// MaxTruncateLength 是日志中字符串截断的最大长度。
	MaxTruncateLength = 200
)

// Truncate shortens s to MaxTruncateLength runes for logging.
func Truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= MaxTruncateLength {
		return s
	}
	return string(runes[:MaxTruncateLength]) + "..."
}
