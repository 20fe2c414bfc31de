package logging

import (
	"io"

	hclog "github.com/hashicorp/go-hclog"
)

// New returns the application logger. Unknown levels fall back to warn.
func New(level string, w io.Writer) hclog.Logger {
	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		lvl = hclog.Warn
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "studylog",
		Level:  lvl,
		Output: w,
	})
}

// Discard is used by tests and by adapters that were not handed a logger.
func Discard() hclog.Logger {
	return hclog.NewNullLogger()
}
