package logger

import (
	"context"
	"io"
	"os"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapAdapter implements the Logger interface on a zap SugaredLogger. Output
// goes to stdout and, when a file is configured, to a rotating JSON file.
type ZapAdapter struct {
	logger *zap.SugaredLogger
}

// NewZapAdapter builds a zap logger for env at level. A non-empty file adds
// a lumberjack-rotated JSON sink next to the console output.
func NewZapAdapter(env, level, file string) *ZapAdapter {
	var sinks []io.Writer
	sinks = append(sinks, os.Stdout)
	if file != "" {
		sinks = append(sinks, &lumberjack.Logger{
			Filename:   file,
			MaxSize:    50, // MB
			MaxBackups: 7,
			MaxAge:     14, // days
			Compress:   true,
		})
	}
	return newZapAdapter(env, level, sinks...)
}

func newZapAdapter(env, level string, sinks ...io.Writer) *ZapAdapter {
	encCfg := zapcore.EncoderConfig{
		TimeKey:      "ts",
		LevelKey:     "level",
		MessageKey:   "msg",
		CallerKey:    "caller",
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		EncodeLevel:  zapcore.LowercaseLevelEncoder,
		EncodeCaller: zapcore.ShortCallerEncoder,
	}

	lvl := zapLevel(level)
	cores := make([]zapcore.Core, 0, len(sinks))
	for i, w := range sinks {
		enc := zapcore.NewJSONEncoder(encCfg)
		// The first sink is the console; keep it readable during development.
		if i == 0 && env == "development" {
			enc = zapcore.NewConsoleEncoder(encCfg)
		}
		cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(w), lvl))
	}

	z := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))
	return &ZapAdapter{logger: z.Sugar()}
}

func zapLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Debug logs a message at debug level
func (z *ZapAdapter) Debug(ctx context.Context, msg string, args ...any) {
	z.logger.Debugw(msg, args...)
}

// Info logs a message at info level
func (z *ZapAdapter) Info(ctx context.Context, msg string, args ...any) {
	z.logger.Infow(msg, args...)
}

// Warn logs a message at warn level
func (z *ZapAdapter) Warn(ctx context.Context, msg string, args ...any) {
	z.logger.Warnw(msg, args...)
}

// Error logs a message at error level
func (z *ZapAdapter) Error(ctx context.Context, msg string, args ...any) {
	z.logger.Errorw(msg, args...)
}

// Sync flushes buffered entries.
func (z *ZapAdapter) Sync() error {
	return z.logger.Sync()
}

var _ Logger = (*ZapAdapter)(nil)
