// Package store implements the TupleStore: an in-memory associative
// index of tuples and waiting templates, bucketed by shape hash.
//
// Store is a capability set, not a concrete representation; the only
// variant provided here holds each bucket's tuples in randomised
// insertion order and its templates in FIFO order, guarded by one
// mutex per shape so that a scan-and-remove in GetMatch is atomic with
// respect to concurrent StoreTuple/RemoveTuple on the same bucket.
package store
