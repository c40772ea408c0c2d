// Package registry is a process-wide name-to-Space directory, the
// way callers in a single process usually want to reach a tuplespace
// without having to thread a *space.Space handle through every layer
// of their program. A name that has never been seen gets a fresh
// Space; DefaultName names the Space most callers mean when they
// don't care which one.
package registry
