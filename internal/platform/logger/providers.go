package logger

import (
	"github.com/google/wire"
)

// ProviderSet is the wire provider set for the logger.
var ProviderSet = wire.NewSet(
	NewConfiguredLogger,
)

// Backends accepted in Config.Backend.
const (
	BackendSlog = "slog"
	BackendZap  = "zap"
)

// Config holds the values needed to configure the logger
type Config struct {
	Environment string
	LogLevel    string
	Backend     string
	File        string // optional rotating log file, zap backend only
}

// NewConfiguredLogger creates the main application logger from config. The
// cleanup flushes buffered output.
func NewConfiguredLogger(config Config) (Logger, func()) {
	if config.Backend == BackendZap {
		z := NewZapAdapter(config.Environment, config.LogLevel, config.File)
		return z, func() { _ = z.Sync() }
	}
	return NewSlogAdapter(config.Environment, config.LogLevel), func() {}
}
