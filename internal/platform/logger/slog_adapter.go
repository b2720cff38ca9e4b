package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// SlogAdapter implements the Logger interface using Go's standard slog library.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new logger based on the application configuration.
func NewSlogAdapter(env string, level string) *SlogAdapter {
	return NewSlogAdapterTo(os.Stdout, env, level)
}

// NewSlogAdapterTo is NewSlogAdapter writing to w.
func NewSlogAdapterTo(w io.Writer, env string, level string) *SlogAdapter {
	opts := &slog.HandlerOptions{Level: slogLevel(level)}

	var handler slog.Handler
	if env == "development" {
		// Use a more human-readable text handler for development.
		handler = slog.NewTextHandler(w, opts)
	} else {
		// Use JSON handler for production, which is better for machine parsing.
		handler = slog.NewJSONHandler(w, opts)
	}

	return &SlogAdapter{
		logger: slog.New(handler),
	}
}

func slogLevel(level string) slog.Level {
	switch level {
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

// Debug logs a message at debug level
func (s *SlogAdapter) Debug(ctx context.Context, msg string, args ...any) {
	s.logger.DebugContext(ctx, msg, args...)
}

// Info logs a message at info level
func (s *SlogAdapter) Info(ctx context.Context, msg string, args ...any) {
	s.logger.InfoContext(ctx, msg, args...)
}

// Warn logs a message at warn level
func (s *SlogAdapter) Warn(ctx context.Context, msg string, args ...any) {
	s.logger.WarnContext(ctx, msg, args...)
}

// Error logs a message at error level
func (s *SlogAdapter) Error(ctx context.Context, msg string, args ...any) {
	s.logger.ErrorContext(ctx, msg, args...)
}

var _ Logger = (*SlogAdapter)(nil)
