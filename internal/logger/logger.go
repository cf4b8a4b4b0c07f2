package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/polkiloo/webstudio/internal/config"
)

// New creates a preconfigured JSON slog.Logger writing to stdout.
func New(cfg *config.Config) *slog.Logger {
	return newJSON(os.Stdout, ParseLevel(cfg.LogLevel))
}

// ParseLevel maps a textual level to slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
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

func newJSON(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}
