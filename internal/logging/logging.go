// Package logging wires the process-wide loggers. slog is the logging API used
// throughout the module; records are written by zap through logr.
package logging

import (
	"log/slog"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DebugLevel is the zap level slog debug records arrive at through zapr.
// slog.LevelDebug is -4 and zapr passes negative slog levels through as is.
const DebugLevel = zapcore.Level(slog.LevelDebug)

// ParseLevel converts a level name into a zap level. Unknown names return
// false together with the info level.
func ParseLevel(name string) (zapcore.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return DebugLevel, true
	case "info", "":
		return zapcore.InfoLevel, true
	case "warn", "warning":
		return zapcore.WarnLevel, true
	case "error":
		return zapcore.ErrorLevel, true
	default:
		return zapcore.InfoLevel, false
	}
}

// encodeLevel prints levels below zap's debug level, used for slog debug
// records, as "debug".
func encodeLevel(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	if l < zapcore.DebugLevel {
		l = zapcore.DebugLevel
	}
	zapcore.LowercaseLevelEncoder(l, enc)
}

// NewZapConfig returns a JSON production config writing to stderr, keeping
// stdout clean for command output.
func NewZapConfig(level zap.AtomicLevel) zap.Config {
	cfg := zap.NewProductionConfig()
	cfg.Level = level
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.EncodeLevel = encodeLevel
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Sampling = nil
	return cfg
}

// Setup builds the zap logger, installs it as the slog default and returns
// the logr view of it. The returned level can be raised or lowered later.
func Setup(level zapcore.Level) (logr.Logger, zap.AtomicLevel, error) {
	atomicLevel := zap.NewAtomicLevelAt(level)

	zapLogger, err := NewZapConfig(atomicLevel).Build()
	if err != nil {
		return logr.Discard(), atomicLevel, err
	}

	logger := zapr.NewLogger(zapLogger)
	slog.SetDefault(slog.New(logr.ToSlogHandler(logger)))

	return logger, atomicLevel, nil
}
