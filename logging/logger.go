package logging

import (
	"context"
	"log/slog"
)

func Log(level LogLevel, msg string, args ...any) {
	if logger == nil {
		return
	}
	switch level {
	case LogLevelDebug:
		logger.Debug(msg, args...)
	case LogLevelInfo:
		logger.Info(msg, args...)
	default:
		panic("logging: only debug and info records can be logged, use -l none to silence them")
	}
}

// LogErr logs err at error level. A nil err is ignored.
func LogErr(err error, msg string, args ...any) {
	if err == nil || logger == nil {
		return
	}
	logger.Error(msg, append([]any{"error", err.Error()}, args...)...)
}

// Enabled reports whether records at level would be written.
func Enabled(level LogLevel) bool {
	if logger == nil {
		return false
	}
	l := slog.LevelInfo
	if level == LogLevelDebug {
		l = slog.LevelDebug
	}
	return logger.Enabled(context.Background(), l)
}
