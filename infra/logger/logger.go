package logger

import corelogger "github.com/skyopshq/skyops/core/logger"

// Logger mirrors the core logger interface.
type Logger = corelogger.Logger

// New returns a Logger for the given component. The environment is
// detected via the SKYOPS_ENV variable.
func New(component string) Logger {
	return NewZerologLogger(component)
}
