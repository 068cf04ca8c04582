package logger

import (
	"github.com/ryan-gang/rawmail/internal/config"
)

// LoggerInterface defines the interface for logging
type LoggerInterface interface {
	Info(v ...any)
	Infof(format string, v ...any)
	Warn(v ...any)
	Warnf(format string, v ...any)
	Error(v ...any)
	Errorf(format string, v ...any)
	Debug(v ...any)
	Debugf(format string, v ...any)
	Close() error
}

// NewLogger creates a logger writing to stdout and to the configured log file
func NewLogger(cfg config.ConfigProvider, verbose bool) (LoggerInterface, error) {
	logger := &Logger{}
	if err := logger.Init(cfg.GetLogPath(), verbose); err != nil {
		return nil, err
	}
	return logger, nil
}
