// Package space implements the coordination engine: the Space that
// owns a primary TupleStore plus per-transaction overlays, and
// exposes Put, Take, Get, Commit, Rollback and Close.
//
// Put never blocks. Take and Get block on a per-template condition
// (a channel closed exactly once by whichever caller satisfies or
// abandons the template) until a match appears, the Space closes, the
// caller's context is cancelled, or the timeout budget is exhausted.
package space
