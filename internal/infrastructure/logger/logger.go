package logger

import (
	"fmt"

	"research-agent/internal/application/port/output"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ output.LoggerPort = (*Adapter)(nil)

// Adapter exposes zap through the application's LoggerPort. Args are
// alternating key/value pairs, matching zap's sugared API.
type Adapter struct {
	sugar *zap.SugaredLogger
}

// New builds a console logger at the given level ("debug", "info", "warn",
// "error"). Unknown levels fall back to info.
func New(level string) (*Adapter, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return &Adapter{sugar: log.Sugar()}, nil
}

// NewNop returns a logger that discards everything. Used by tests and as a
// safe default for optional dependencies.
func NewNop() *Adapter {
	return &Adapter{sugar: zap.NewNop().Sugar()}
}

func (a *Adapter) Debug(msg string, args ...any) { a.sugar.Debugw(msg, args...) }
func (a *Adapter) Info(msg string, args ...any)  { a.sugar.Infow(msg, args...) }
func (a *Adapter) Warn(msg string, args ...any)  { a.sugar.Warnw(msg, args...) }
func (a *Adapter) Error(msg string, args ...any) { a.sugar.Errorw(msg, args...) }

func (a *Adapter) WithField(key string, value any) output.LoggerPort {
	return &Adapter{sugar: a.sugar.With(key, value)}
}

func (a *Adapter) Close() error {
	// Sync fails on some platforms when stderr is a terminal; that is not
	// an application error.
	_ = a.sugar.Sync()
	return nil
}
