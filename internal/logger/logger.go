// Package logger builds the process-wide structured logger. Output is always
// JSON; only the minimum level comes from configuration.
package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/stock-tracking-backend/internal/config"
)

// NewLogger creates the slog.Logger every component shares. Source locations
// are attached only at debug level, where the extra cost is acceptable.
func NewLogger(cfg *config.Config) *slog.Logger {
	level := parseLevel(cfg.Logging.Level)

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	})

	logger := slog.New(handler)
	logger.Info("logger initialized", "level", level)
	return logger
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
