// Package logger はプロセス全体で使用するslogロガーを構築します。
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New は指定されたレベルの構造化ロガーを生成します。
// レベルは "debug" / "info" / "warn" / "error" で、それ以外は info になります。
// format が "text" ならテキスト形式、それ以外はJSON形式です。
func New(level, format string) *slog.Logger {
	return newWithWriter(os.Stdout, level, format)
}

func newWithWriter(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if strings.EqualFold(format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
