// Package logging configures the process-wide slog logger.
//
// Log output goes to stderr by default so that stdout carries only the
// converted document.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// Setup installs a default slog logger with the given level and format and returns it.
//
// Level values: "debug", "info", "warn", "error" (default: "warn")
// Format values: "text", "json" (default: "text")
func Setup(level, format string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// ParseLevel converts a string log level to slog.Level.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// ValidLevel reports whether level is a recognised level name.
func ValidLevel(level string) bool {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}
