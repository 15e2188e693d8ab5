// Package debug provides the toggleable stderr logging used by fixture
// generation and the command line tool. Logging is off unless switched on,
// and the check is a single atomic load so call sites can stay on hot paths.
package debug

import (
	"log"
	"sync/atomic"
)

var enabled int32 = 0

// Toggle turns debug logging on or off.
func Toggle(on bool) {
	val := int32(0)
	if on {
		val = 1
	}
	atomic.StoreInt32(&enabled, val)
}

// Enabled reports whether debug logging is on.
func Enabled() bool {
	return atomic.LoadInt32(&enabled) == 1
}

// Do executes f if debug logging is on, for log output that needs side
// effects or values too costly to compute otherwise.
func Do(f func()) {
	if Enabled() {
		f()
	}
}

// Format writes a formatted log line to stderr if debug logging is on.
func Format(format string, args ...interface{}) {
	if Enabled() {
		log.Printf(format, args...)
	}
}
