package logging

import (
	"os"
	"strings"

	"github.com/safar/shopfront/internal/config"
	"github.com/sirupsen/logrus"
)

// New builds the process logger. Unknown levels fall back to info and any
// format other than "text" logs JSON.
func New(cfg config.LogConfig) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if strings.EqualFold(cfg.Format, "text") {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
	}

	if err != nil && cfg.Level != "" {
		logger.WithField("level", cfg.Level).Warn("unknown log level, using info")
	}

	return logger
}
