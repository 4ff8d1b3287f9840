// Package logger 根据配置安装默认的 slog 处理器。
package logger

import (
	"io"
	"log/slog"
	"strings"
)

// ParseLevel 解析日志级别，无法识别时返回 info。
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New 创建 logger，format 为 "json" 时输出 JSON，否则输出文本。
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

// Setup 创建 logger 并设为 slog 默认值。
func Setup(w io.Writer, level, format string) *slog.Logger {
	l := New(w, level, format)
	slog.SetDefault(l)

	return l
}
