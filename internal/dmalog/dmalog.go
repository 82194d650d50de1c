// Package dmalog is a thin wrapper around log/slog used by the DMA core to
// emit structured trace lines (descriptor fetches, register arms,
// reserved extended-list opcodes). Nothing else in this codebase pulls in
// a third-party logging framework, so the core doesn't either.
package dmalog

import (
	"io"
	"log/slog"
	"os"
)

// Logger gates a small set of debug/error trace calls behind a runtime
// level, so a host embedding the DMA core can turn tracing on only while
// diagnosing a problem.
type Logger struct {
	inner *slog.Logger
	level *slog.LevelVar
}

// New returns a Logger writing to stderr with debug output disabled.
func New() *Logger {
	lv := new(slog.LevelVar)
	lv.Set(slog.LevelWarn)
	return &Logger{
		inner: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lv})),
		level: lv,
	}
}

// Discard returns a Logger that drops everything. This is the engine's
// default: a library should stay silent until a caller asks for tracing.
func Discard() *Logger {
	lv := new(slog.LevelVar)
	lv.Set(slog.LevelError + 1)
	return &Logger{
		inner: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: lv})),
		level: lv,
	}
}

// SetDebug enables or disables debug-level trace output.
func (l *Logger) SetDebug(enabled bool) {
	if enabled {
		l.level.Set(slog.LevelDebug)
	} else {
		l.level.Set(slog.LevelWarn)
	}
}

func (l *Logger) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.inner.Error(msg, args...) }
