// Package logging configures the process-wide logrus logger from config.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/amterp/swatch/internal/model"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup points logrus at cfg.File (appending) or, when no file is set, at
// fallback. The returned closer releases the log file.
func Setup(fs afero.Fs, cfg model.LogConfig, fallback io.Writer) (io.Closer, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if cfg.JSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if cfg.File == "" {
		logrus.SetOutput(fallback)
		return nopCloser{}, nil
	}

	if err := fs.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := fs.OpenFile(cfg.File, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logrus.SetOutput(f)
	return f, nil
}
