// Package timer provides the expiry scheduler: a single background
// goroutine per Space that manages a set of pending TTL expiries with
// only one live *time.Timer at a time.
//
// The design is adapted from a hand-rolled multi-timer manager: when a
// deadline is added, it goes into a backlog list ordered by ascending
// trigger time; whenever the earliest deadline changes, the internal
// timer is replaced with one that fires at the new earliest time. Work
// runs in its own goroutine so it is fine for a callback to block; it
// must still tolerate the tuple it's removing already being absent.
package timer
