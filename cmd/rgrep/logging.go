package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogConfig controls where diagnostic logs go.
type LogConfig struct {
	Verbose    bool
	LogFile    string // empty logs to stderr
	MaxSize    int    // Max size in megabytes
	MaxBackups int    // Max number of backups
	MaxAge     int    // Max age in days
}

func defaultLogConfig() LogConfig {
	return LogConfig{
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
	}
}

// setupLogging creates the logger for one invocation. The returned closer
// releases the log file, if any.
func setupLogging(config LogConfig, stderr io.Writer) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()
	logger.SetOutput(stderr)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(logrus.WarnLevel)
	if config.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	if config.LogFile == "" {
		return logger, nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(config.LogFile), 0755); err != nil {
		return nil, nil, err
	}

	file := &lumberjack.Logger{
		Filename:   config.LogFile,
		MaxSize:    config.MaxSize,
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAge,
	}
	logger.SetOutput(file)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})

	return logger, file, nil
}

// debugLogger adapts logrus to the Log(format, args...) interface used by
// the library packages.
type debugLogger struct {
	entry *logrus.Entry
}

func (l debugLogger) Log(format string, args ...interface{}) {
	l.entry.Debugf(format, args...)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
