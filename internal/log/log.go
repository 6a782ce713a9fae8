package log

import (
	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
)

// GetLogger builds a stdr-backed logger named name. The verbosity is global to stdr: 0 shows only info messages,
// 1 adds table resize and compaction events, 2 is reserved for tracing. Out of range values fall back to 0 with a
// warning.
func GetLogger(name string, v int) logr.Logger {
	logger := stdr.New(nil)
	if name != "" {
		logger = logger.WithName(name)
	}
	if v > 2 || v < 0 {
		v = 0
		logger.Info("Invalid verbosity, setting logger to display info level messages only.")
	}
	stdr.SetVerbosity(v)

	return logger
}
