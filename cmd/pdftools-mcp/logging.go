package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/alnah/pdftools-mcp/internal/config"
	"github.com/alnah/pdftools-mcp/internal/fileutil"
)

// newLogger builds the process logger. Logs always go to stderr, since
// stdout carries the stdio protocol, and are also appended to cfg.File when
// set. The returned close function releases the log file.
func newLogger(cfg config.LogConfig, stderr io.Writer) (*logrus.Logger, func() error, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: log level %q", config.ErrInvalidValue, cfg.Level)
	}

	logger := logrus.New()
	logger.SetLevel(level)

	if cfg.Format == config.LogFormatJSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	}

	closeFn := func() error { return nil }
	out := stderr
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), fileutil.DirPerm); err != nil {
			return nil, nil, fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) // #nosec G304 -- operator-provided path
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		out = io.MultiWriter(stderr, f)
		closeFn = f.Close
	}
	logger.SetOutput(out)

	return logger, closeFn, nil
}
