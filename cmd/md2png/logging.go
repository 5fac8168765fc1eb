package main

import (
	"io"

	"github.com/sirupsen/logrus"
)

// newLogger returns the diagnostic logger written to stderr.
// Levels: warn by default, error with --quiet, debug with --verbose.
// --verbose wins when both are given.
func newLogger(w io.Writer, quiet, verbose bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		DisableColors:    true,
	})

	switch {
	case verbose:
		l.SetLevel(logrus.DebugLevel)
	case quiet:
		l.SetLevel(logrus.ErrorLevel)
	default:
		l.SetLevel(logrus.WarnLevel)
	}
	return l
}
