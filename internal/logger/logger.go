package logger

import (
	"io"
	"log/slog"
	"os"
)

// InitLogger configures the process-wide slog logger for the given environment
// and returns it. Development gets human readable debug output with source
// locations, everything else gets JSON at info level.
func InitLogger(environment string) *slog.Logger {
	return New(environment, os.Stdout)
}

// New builds a logger writing to w and installs it as the slog default
func New(environment string, w io.Writer) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	if environment == "development" {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts).WithAttrs([]slog.Attr{
			slog.String("service", "secrets"),
		})
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}
