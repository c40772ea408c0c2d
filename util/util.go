// Package util holds small helpers shared across the tuplespace
// packages.
package util

import "log"

// Logging is a package-wide switch: when true, every Logger's Logf
// calls through to log.Printf; when false, Logf is silent. store,
// space, and timer share this one switch rather than each rolling
// their own, so flipping it on during a debugging session lights up
// bucket churn, waiter wakeups, and expiry firings together.
var Logging = false

// Logger tags its output with the component that produced it (store,
// space, timer, ...), so a debugging session can grep the combined
// log for just one component's traffic instead of untangling
// interleaved unlabeled lines from a matcher, a scheduler, and a
// transaction commit all firing at once.
type Logger struct {
	name string
}

// New returns a Logger tagged with name.
func New(name string) *Logger {
	return &Logger{name: name}
}

// Logf calls log.Printf with the receiver's name prefixed, if Logging
// is true.
func (l *Logger) Logf(format string, args ...interface{}) {
	if !Logging {
		return
	}
	log.Printf(l.name+": "+format, args...)
}
