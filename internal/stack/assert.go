package stack

import (
	"fmt"
	"log/slog"
)

// assertf reports a contract violation. It panics in debug builds and logs
// through logger otherwise. It returns cond so callers can bail out inline:
//
//	if !assertf(logger, n > 0, "empty stack") {
//		return Plan{}
//	}
func assertf(logger *slog.Logger, cond bool, format string, args ...any) bool {
	if cond {
		return true
	}
	msg := fmt.Sprintf(format, args...)
	if debugAssertions {
		panic("tabstack: " + msg)
	}
	if logger != nil {
		logger.Warn("contract violation", "detail", msg)
	}
	return false
}
