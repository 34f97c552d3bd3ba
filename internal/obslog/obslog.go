// Package obslog provides the engine's structured logger: a thin
// wrapper around zap, used only at index build/rebuild boundaries and in
// the CLI -- never on the synchronous per-query scoring path.
package obslog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a development-formatted logger when debug is set, otherwise
// a production JSON logger. Either can fail to build only on a broken
// output sink, which stdout/stderr never is, so New wraps both builds in
// zap.Must and returns the logger directly.
func New(debug bool) *zap.Logger {
	if debug {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zap.Must(cfg.Build())
	}
	return zap.Must(zap.NewProduction())
}

// Nop returns a logger that discards everything, for callers (and tests)
// that don't want log output.
func Nop() *zap.Logger { return zap.NewNop() }
