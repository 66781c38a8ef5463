// Package logging provides the zap-backed structured logger shared across
// the CLI and library entry points. Callers that never configure a logger
// get a safe no-op default rather than a nil-dereference.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the structured logging surface used by the compactscan
// command.
type Logger interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	With(fields ...zap.Field) Logger
}

type zapLogger struct {
	l *zap.Logger
}

func (z *zapLogger) Debug(msg string, fields ...zap.Field) { z.l.Debug(msg, fields...) }
func (z *zapLogger) Info(msg string, fields ...zap.Field)  { z.l.Info(msg, fields...) }
func (z *zapLogger) Warn(msg string, fields ...zap.Field)  { z.l.Warn(msg, fields...) }
func (z *zapLogger) Error(msg string, fields ...zap.Field) { z.l.Error(msg, fields...) }
func (z *zapLogger) With(fields ...zap.Field) Logger {
	return &zapLogger{l: z.l.With(fields...)}
}

// New builds a production zap logger (JSON output, info level), falling
// back to a no-op logger if construction fails.
func New(verbose bool) Logger {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapDebugLevel())
	}
	l, err := cfg.Build()
	if err != nil {
		return Noop()
	}
	return &zapLogger{l: l}
}

func zapDebugLevel() zapLevel {
	return zap.DebugLevel
}

// zapLevel names the level type New passes to zap.NewAtomicLevelAt.
type zapLevel = zapDebugLevelAlias

type zapDebugLevelAlias = zapcore.Level

type noopLogger struct{}

func (noopLogger) Debug(string, ...zap.Field)   {}
func (noopLogger) Info(string, ...zap.Field)    {}
func (noopLogger) Warn(string, ...zap.Field)    {}
func (noopLogger) Error(string, ...zap.Field)   {}
func (n noopLogger) With(...zap.Field) Logger   { return n }

// Noop returns a Logger that discards everything, used as the package
// default before any caller configures one.
func Noop() Logger { return noopLogger{} }
