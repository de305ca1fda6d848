// Package goroutine launches background work that must not crash the process.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"github.com/nitrodesk/nitrodesk/internal/shared/logger"
)

// SafeGo runs fn in a new goroutine and logs, instead of propagating, any panic.
func SafeGo(log logger.Interface, name string, fn func()) {
	go func() {
		defer Recover(log, name)
		fn()
	}()
}

// Recover is meant to be deferred; it logs a recovered panic with its stack.
func Recover(log logger.Interface, name string) {
	if r := recover(); r != nil {
		log.Errorw("goroutine panicked",
			"goroutine", name,
			"panic", fmt.Sprintf("%v", r),
			"stack", string(debug.Stack()),
		)
	}
}
