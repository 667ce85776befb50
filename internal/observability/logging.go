// Package observability sets up the structured logs a fight server writes.
package observability

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/tactics/internal/config"
)

// LoggerName names the root logger; fight and subsystem loggers hang off it.
const LoggerName = "tactics"

var encoders = map[string]func(zapcore.EncoderConfig) zapcore.Encoder{
	"json":    zapcore.NewJSONEncoder,
	"console": zapcore.NewConsoleEncoder,
}

// NewLogger creates the root logger from the given logging configuration,
// writing to stderr.
//
// Precondition: cfg.Level must be one of "debug", "info", "warn", "error".
// Precondition: cfg.Format must be "json" or "console".
// Postcondition: Returns a logger named LoggerName or a non-nil error.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	return newLogger(cfg, zapcore.Lock(os.Stderr))
}

func newLogger(cfg config.LoggingConfig, out zapcore.WriteSyncer) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}
	encoder, ok := encoders[cfg.Format]
	if !ok {
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	enc.EncodeDuration = zapcore.StringDurationEncoder
	if cfg.Format == "console" {
		enc.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	// Unsampled: every turn repeats the same handful of messages, and a
	// sampled core would drop them once a skirmish gets busy.
	core := zapcore.NewCore(encoder(enc), out, zap.NewAtomicLevelAt(level))
	logger := zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.ErrorOutput(out),
	)
	return logger.Named(LoggerName), nil
}

// FightLogger scopes logger to one fight: every entry carries the fight id.
//
// Precondition: logger must not be nil.
func FightLogger(logger *zap.Logger, fightID string) *zap.Logger {
	return logger.With(zap.String("fight_id", fightID))
}
