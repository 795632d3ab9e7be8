// Package log wraps logrus with the small interface the core actually
// uses, so that components never import logrus directly.
package log

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the logging surface the core components are given. It is
// deliberately narrow: components log facts, they never configure
// sinks or levels themselves.
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// New returns a Logger backed by logrus, writing text-formatted lines
// to stderr. Debug-level records are only emitted when debug is true.
func New(debug bool) Logger {
	l := logrus.New()
	l.Out = os.Stderr
	l.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	if debug {
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetLevel(logrus.InfoLevel)
	}
	return l
}
