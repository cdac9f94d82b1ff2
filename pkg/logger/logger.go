// Package logger provides the shared logrus logger for the ship CLI.
package logger

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		ForceColors:      isatty.IsTerminal(os.Stderr.Fd()),
	})
	if DebugEnabled() {
		l.SetLevel(logrus.DebugLevel)
	}
	if SilentEnabled() {
		l.SetOutput(io.Discard)
	}
	return l
}

// Get returns the process-wide logger.
func Get() *logrus.Logger {
	return log
}

// DebugEnabled reports whether debug logging was requested via the
// environment (SHIP_DEBUG or DEBUG).
func DebugEnabled() bool {
	return os.Getenv("SHIP_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}

// SilentEnabled reports whether silent mode was forced via the environment.
func SilentEnabled() bool {
	return os.Getenv("SHIP_SILENT") == "true"
}
