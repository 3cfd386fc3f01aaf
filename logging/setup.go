package logging

import (
	"io"
	"log/slog"
	"os"
)

type LogLevel string

const (
	LogLevelNone  LogLevel = "none"
	LogLevelInfo  LogLevel = "info"
	LogLevelDebug LogLevel = "debug"
)

var logger *slog.Logger

// Setup sends log records at or above level to stderr.
func Setup(level LogLevel) {
	SetupWriter(os.Stderr, level)
}

// SetupWriter sends log records at or above level to sink. LogLevelNone
// discards everything.
func SetupWriter(sink io.Writer, level LogLevel) {
	if level == LogLevelNone {
		sink = io.Discard
	}
	slevel := slog.LevelDebug
	if level == LogLevelInfo {
		slevel = slog.LevelInfo
	}
	handler := slog.NewTextHandler(sink, &slog.HandlerOptions{
		Level: slevel,
	})
	logger = slog.New(handler)
}
