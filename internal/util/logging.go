// Package util provides shared utilities for kitchenx.
package util

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	mu       sync.RWMutex
	logLevel = new(slog.LevelVar)
	logger   *slog.Logger
)

func init() {
	logLevel.Set(slog.LevelInfo)
	logger = newLogger(os.Stderr)
}

func newLogger(w io.Writer) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				// Format time as HH:MM:SS
				if t, ok := a.Value.Any().(interface{ Format(string) string }); ok {
					return slog.String(slog.TimeKey, t.Format("15:04:05"))
				}
			}
			return a
		},
	})
	return slog.New(handler)
}

// SetOutput redirects log output to w. It returns a function restoring
// the previous logger, which tests use to capture warnings.
func SetOutput(w io.Writer) (restore func()) {
	mu.Lock()
	defer mu.Unlock()
	prev := logger
	logger = newLogger(w)
	return func() {
		mu.Lock()
		defer mu.Unlock()
		logger = prev
	}
}

// Debug logs a debug message with structured attributes.
func Debug(msg string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	logger.Debug(msg, args...)
}

// Info logs an info message with structured attributes.
func Info(msg string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	logger.Info(msg, args...)
}

// Warn logs a warning message with structured attributes.
func Warn(msg string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	logger.Warn(msg, args...)
}

// Error logs an error message with structured attributes.
func Error(msg string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	logger.Error(msg, args...)
}

// SetVerbose enables or disables debug output.
func SetVerbose(verbose bool) {
	if verbose {
		logLevel.Set(slog.LevelDebug)
	} else {
		logLevel.Set(slog.LevelInfo)
	}
}

// SetQuiet limits output to errors.
func SetQuiet() {
	logLevel.Set(slog.LevelError)
}
