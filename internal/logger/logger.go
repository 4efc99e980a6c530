// Package logger holds the process-wide logrus logger.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the application logger. It is usable before Init and writes to
// stderr at info level until then.
var Log = logrus.New()

// Options configures Init. An empty Level means info; Format "json" selects
// the JSON formatter, anything else the text formatter.
type Options struct {
	Level  string
	Format string
	Output io.Writer
}

// Init reconfigures Log. It should be called once at startup, before the
// terminal is taken over by the UI.
func Init(opts Options) {
	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if strings.ToLower(opts.Format) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			DisableColors: true,
		})
	}

	if opts.Output != nil {
		Log.SetOutput(opts.Output)
	} else {
		Log.SetOutput(os.Stderr)
	}
}

// OpenFile opens path for appending log lines. "-" or "" selects stderr.
// The returned closer is always safe to call.
func OpenFile(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return os.Stderr, func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, func() error { return nil }, err
	}
	return f, f.Close, nil
}
