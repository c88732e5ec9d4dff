// internal/logging/logging.go
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"aps-bridge/internal/config"
)

// New builds the process logger. Debug mode always logs at debug level.
func New(cfg *config.Config) *logrus.Logger {
	return NewWithOutput(cfg, os.Stdout)
}

func NewWithOutput(cfg *config.Config, out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)

	switch strings.ToLower(cfg.LogFormat) {
	case "text":
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		l.SetFormatter(&logrus.JSONFormatter{})
	}

	lvl, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	if cfg.Debug {
		lvl = logrus.DebugLevel
	}
	l.SetLevel(lvl)
	return l
}
