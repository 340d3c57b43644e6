// Package logger builds the application's slog logger. Loggers are passed
// explicitly into components rather than accumulated in package state, so
// parallel runs and tests stay isolated.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Config holds the logger configuration.
type Config struct {
	Level  slog.Level
	Format string
}

// New initializes a slog logger based on the provided configuration.
// A nil output writes to stderr, keeping stdout clean for report rendering.
func New(cfg Config, output io.Writer) *slog.Logger {
	if output == nil {
		output = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: cfg.Level}

	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(output, opts)
	default:
		handler = slog.NewTextHandler(output, opts)
	}

	return slog.New(handler)
}
