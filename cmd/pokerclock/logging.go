package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// newLogger builds the process logger. While the board owns the terminal,
// output goes to logFile; headless commands log to stderr.
func newLogger(toFile bool, logFile string, verbose bool) (*logrus.Logger, func()) {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	if !toFile {
		return logger, func() {}
	}
	if logFile == "" {
		logger.SetOutput(io.Discard)
		return logger, func() {}
	}
	if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
		logger.SetOutput(io.Discard)
		return logger, func() {}
	}
	f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		logger.SetOutput(io.Discard)
		return logger, func() {}
	}
	logger.SetOutput(f)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	return logger, func() {
		_ = f.Close()
	}
}
