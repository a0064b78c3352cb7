// Package log configures the process-wide structured logger. Pipeline
// packages tag their own component off slog.Default(); the helpers here
// cover the untagged call sites in the daemon and the broadcast hub.
package log

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

var once sync.Once

// Init sets the default logger once. Level is one of "debug", "info",
// "warn", "error"; anything else falls back to info. Setting
// WAYPATH_LOG_FORMAT=json switches to JSON output for log shippers.
func Init(level string) {
	once.Do(func() {
		var lvl slog.Level
		switch strings.ToLower(level) {
		case "debug":
			lvl = slog.LevelDebug
		case "warn":
			lvl = slog.LevelWarn
		case "error":
			lvl = slog.LevelError
		default:
			lvl = slog.LevelInfo
		}

		opts := &slog.HandlerOptions{Level: lvl}
		var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
		if os.Getenv("WAYPATH_LOG_FORMAT") == "json" {
			handler = slog.NewJSONHandler(os.Stderr, opts)
		}
		slog.SetDefault(slog.New(handler))
	})
}

// Debug logs at debug level.
func Debug(msg string, args ...any) {
	slog.Default().Debug(msg, args...)
}

// Info logs at info level.
func Info(msg string, args ...any) {
	slog.Default().Info(msg, args...)
}

// Warn logs at warn level.
func Warn(msg string, args ...any) {
	slog.Default().Warn(msg, args...)
}

// Error logs at error level.
func Error(msg string, args ...any) {
	slog.Default().Error(msg, args...)
}
