// Package logger configures the global logrus logger. The terminal belongs to
// the TUI, so log output goes to a file.
package logger

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/colare/recruit/internal/config"
)

var logFile *os.File

// Setup routes logrus output to path and applies the configured level.
func Setup(cfg config.LoggerConfig, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	Cleanup()
	logFile = f

	log.SetOutput(f)
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05.000 -0700",
		DisableColors:   true,
	})
	log.SetLevel(level(cfg))
	return nil
}

func level(cfg config.LoggerConfig) log.Level {
	switch cfg.LogLevel {
	case config.LevelDebug:
		return log.DebugLevel
	case config.LevelWarning:
		return log.WarnLevel
	case config.LevelError:
		return log.ErrorLevel
	case config.LevelFatal:
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

// Cleanup closes the log file opened by Setup and sends output back to stderr.
func Cleanup() {
	if logFile != nil {
		log.SetOutput(os.Stderr)
		_ = logFile.Close()
		logFile = nil
	}
}
