// Package logger builds the application's charmbracelet logger.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logger configuration.
type Config struct {
	Level string
	// File, when set, routes output to a rotating log file instead of the
	// fallback writer.
	File  string
	Debug bool
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// New creates a logger writing to fallback (normally stderr) or to the
// configured file. The returned Closer releases the file handle.
func New(cfg Config, fallback io.Writer) (*log.Logger, io.Closer, error) {
	level := log.WarnLevel
	if cfg.Level != "" {
		parsed, err := log.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return nil, nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}
	if cfg.Debug {
		level = log.DebugLevel
	}

	var out io.WriteCloser = nopCloser{fallback}
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating log directory: %w", err)
		}
		out = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    5, // megabytes
			MaxBackups: 3,
			MaxAge:     14, // days
		}
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "studyplan",
	})
	return logger, out, nil
}

// Discard returns a logger that drops everything. Useful for tests.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
