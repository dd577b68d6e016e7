// Package logging はlog/slogによる構造化ログの設定を提供します。
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Setup はレベルと形式に従ってデフォルトのslogロガーを設定します。
//
// level: "debug", "info", "warn", "error"（デフォルト: "info"）
// format: "text", "json"（デフォルト: "text"）
func Setup(level, format string) {
	slog.SetDefault(slog.New(NewHandler(os.Stdout, level, format)))
}

// NewHandler は w に書き込むハンドラーを生成します。
func NewHandler(w io.Writer, level, format string) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}
	if strings.ToLower(format) == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// parseLevel は文字列のログレベルを slog.Level に変換します。
func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
