package logger

import (
	"log/slog"
	"os"
	"strings"
)

var defaultLogger *slog.Logger

func Init(level, format string) {
	var handler slog.Handler

	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
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

// L returns the process logger, lazily initializing a development logger so
// callers never get nil.
func L() *slog.Logger {
	if defaultLogger == nil {
		Init("debug", "text")
	}
	return defaultLogger
}
