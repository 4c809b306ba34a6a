package config

import (
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// NewLogger configures the standard logrus logger and returns it.
func NewLogger(cfg *Config) *log.Logger {
	logger := log.StandardLogger()
	logger.SetOutput(os.Stdout)

	if strings.EqualFold(cfg.LogFormat, "json") {
		logger.SetFormatter(&log.JSONFormatter{})
	} else {
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.WithField("level", cfg.LogLevel).Warn("Unknown log level, falling back to info")
		level = log.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}
