package space

import "github.com/corespace/tuplespace/store"

// overlay is the per-(Space, Transaction) staging area. rollback holds
// tuples put under the transaction, invisible outside it until
// commit, and discarded on rollback. working holds tuples taken under
// the transaction: removed from the primary store but still readable
// by outside get calls until commit finalises the removal, or
// rollback restores them to the primary store.
type overlay struct {
	rollback store.Store
	working  store.Store
}

func newOverlay() *overlay {
	return &overlay{
		rollback: store.NewMemory(),
		working:  store.NewMemory(),
	}
}
