package store

import "github.com/corespace/tuplespace/tuple"

// Store is the TupleStore contract: insert/remove tuples and
// templates, and the two matching operations a Space needs.
//
// TryMatchTuple exists alongside GetMatch because a transactional
// Space searches several candidate Stores (its own rollback store,
// the primary store, and, for get, other transactions' working
// stores) for one waiting template; only the store that actually owns
// the template as a registered waiter should have that template
// removed as a side effect of a match found elsewhere. GetMatch keeps
// the combined single-store behaviour spec.md describes for the
// common non-transactional path.
type Store interface {
	// StoreTuple places t into the bucket keyed by t.Shape(), at a
	// uniformly random index within the bucket.
	StoreTuple(t *tuple.Tuple)

	// StoreTemplate places p into the bucket keyed by p.Shape(),
	// appended at the tail (FIFO).
	StoreTemplate(p *tuple.Template)

	// RemoveTuple removes t by identity from its bucket. A miss is
	// tolerated silently.
	RemoveTuple(t *tuple.Tuple)

	// RemoveTemplate removes p by identity from its bucket. A miss is
	// tolerated silently.
	RemoveTemplate(p *tuple.Template)

	// GetMatch finds the first tuple in the bucket keyed by
	// p.Shape() for which tuple.Match(t, p) holds. If destroy, the
	// tuple is removed from the bucket. In either case, when a match
	// is produced, p is also removed from the template bucket of the
	// same shape (self-unregistration). Returns (nil, nil) on a
	// clean miss.
	GetMatch(p *tuple.Template, destroy bool) (*tuple.Tuple, error)

	// TryMatchTuple is GetMatch without the template side effect: it
	// only scans and optionally removes a matching tuple, leaving
	// every template bucket untouched.
	TryMatchTuple(p *tuple.Template, destroy bool) (*tuple.Tuple, error)

	// GetWaitingTemplates scans the template bucket keyed by
	// t.Shape() in insertion order, returning every template that
	// matches t, stopping after (and including) the first
	// destructive template encountered.
	GetWaitingTemplates(t *tuple.Tuple) ([]*tuple.Template, error)

	// GetAllTuples returns a snapshot of every tuple currently held,
	// across all buckets. Used for commit/rollback republishing.
	GetAllTuples() []*tuple.Tuple

	// DeleteStorage drops every tuple and template. Used on Space
	// close.
	DeleteStorage()
}
