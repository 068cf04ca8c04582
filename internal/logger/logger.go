package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

type Logger struct {
	log  *log.Logger
	file *os.File
}

// New returns a logger writing to w only.
func New(w io.Writer, verbose bool) *Logger {
	return &Logger{log: newCharmLogger(w, verbose)}
}

func newCharmLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "rawmail",
		Level:           level,
	})
}

// Init opens logPath for appending and logs to it and stdout. An empty
// logPath logs to stdout only.
func (l *Logger) Init(logPath string, verbose bool) error {
	if logPath == "" {
		l.log = newCharmLogger(os.Stdout, verbose)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	l.file = file
	l.log = newCharmLogger(io.MultiWriter(file, os.Stdout), verbose)
	return nil
}

func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func join(v []any) string {
	return strings.TrimSuffix(fmt.Sprintln(v...), "\n")
}

func (l *Logger) Info(v ...any) {
	l.log.Info(join(v))
}

func (l *Logger) Infof(format string, v ...any) {
	l.log.Infof(format, v...)
}

func (l *Logger) Warn(v ...any) {
	l.log.Warn(join(v))
}

func (l *Logger) Warnf(format string, v ...any) {
	l.log.Warnf(format, v...)
}

func (l *Logger) Error(v ...any) {
	l.log.Error(join(v))
}

func (l *Logger) Errorf(format string, v ...any) {
	l.log.Errorf(format, v...)
}

func (l *Logger) Debug(v ...any) {
	l.log.Debug(join(v))
}

func (l *Logger) Debugf(format string, v ...any) {
	l.log.Debugf(format, v...)
}
