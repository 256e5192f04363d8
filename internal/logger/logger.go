// Package logger configures the global structured logger.
package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the application-wide logger instance. Call Init once at startup;
// packages that log before Init see a default-configured logger.
var Log = logrus.New()

// Init configures the global logger from environment variables.
//   - LOG_LEVEL: trace|debug|info|warn|error (default "info")
//   - LOG_FORMAT: "json" for machine-readable output, anything else for text
func Init() {
	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	Log.SetOutput(os.Stdout)
}
