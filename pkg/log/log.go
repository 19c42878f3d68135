package log

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the logging surface used by the emulator core. The
// core never writes to stdout itself; hosts decide where log
// lines go by supplying an implementation.
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// New returns a logrus backed Logger writing plain text to stderr
// at the info level.
func New() Logger {
	l, _ := NewWithLevel("info")
	return l
}

// NewWithLevel returns a logrus backed Logger at the named level
// (trace, debug, info, warn, error).
func NewWithLevel(level string) (Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(lvl)
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	})
	return l, nil
}
