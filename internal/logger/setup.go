package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Setup initializes the default slog logger writing to the given sinks.
// Pass os.Stdout alone for local runs, or add a log file for deployments.
func Setup(level string, sinks ...io.Writer) {
	var w io.Writer = os.Stdout
	if len(sinks) > 0 {
		w = io.MultiWriter(sinks...)
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	}))
	slog.SetDefault(logger)
}

// ParseLevel converts a string level to slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
