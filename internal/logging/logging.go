package logging

import (
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/uiplatform/sidebar-cleanup/internal/config"
)

// Setup configures the global logrus logger from config. Verbose forces the
// debug level regardless of the configured level.
func Setup(cfg config.LogConfig, verbose bool) {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	level := parseLevel(cfg.Level)
	if verbose {
		level = log.DebugLevel
	}
	log.SetLevel(level)

	if file := strings.TrimSpace(cfg.File); file != "" {
		rotated := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
		}
		log.SetOutput(io.MultiWriter(os.Stdout, rotated))
		return
	}
	log.SetOutput(os.Stdout)
}

func parseLevel(level string) log.Level {
	parsed, errParse := log.ParseLevel(strings.TrimSpace(level))
	if errParse != nil {
		return log.InfoLevel
	}
	return parsed
}
