package game

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// contractViolation reports a call made without its precondition. Builds
// tagged debug panic; release builds log and let the caller turn the call
// into a no-op.
func contractViolation(logger *log.Logger, msg string, keyvals ...interface{}) {
	if strictContracts {
		panic(fmt.Sprintf("game: contract violation: %s %v", msg, keyvals))
	}
	logger.Warn("contract violation: "+msg, keyvals...)
}
