package util

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// NewLogger opens the log file for an interactive session. The terminal is
// owned by the UI, so nothing is written to stdout or stderr. The returned
// closer must be called on exit.
func NewLogger(cfg Config) (*log.Logger, func() error, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o700); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, err
	}
	logger := newLogger(f, cfg.Debug).With("session", uuid.NewString())
	return logger, f.Close, nil
}

// NewCLILogger logs to stderr for non-interactive subcommands.
func NewCLILogger(cfg Config) *log.Logger {
	return newLogger(os.Stderr, cfg.Debug)
}

func newLogger(w io.Writer, debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          "jterm",
		Level:           level,
		ReportTimestamp: true,
	})
}
