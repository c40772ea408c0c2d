// Package diag renders a Space's tuple-count snapshot (space.Space.Stats)
// as Markdown or HTML, for operators who want a quick look at what's
// sitting in a running tuplespace.
package diag
