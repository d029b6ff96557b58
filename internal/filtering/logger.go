package filtering

import (
	"log/slog"

	"github.com/go-logr/logr"
)

// Logger receives informational messages about items removed by an allow list.
type Logger interface {
	Info(msg string)
}

type noopLogger struct{}

func (noopLogger) Info(string) {}

// NewNoopLogger returns a Logger that discards every message.
func NewNoopLogger() Logger {
	return noopLogger{}
}

type slogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger adapts an slog.Logger. A nil logger uses slog.Default().
func NewSlogLogger(logger *slog.Logger) Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return &slogLogger{logger: logger}
}

func (l *slogLogger) Info(msg string) {
	l.logger.Info(msg)
}

type logrLogger struct {
	logger logr.Logger
}

// NewLogrLogger adapts a logr.Logger, such as one backed by zap through zapr.
func NewLogrLogger(logger logr.Logger) Logger {
	return &logrLogger{logger: logger}
}

func (l *logrLogger) Info(msg string) {
	l.logger.Info(msg)
}
