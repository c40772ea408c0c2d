package space

import "sync"

// Transaction is a shared handle that remembers which Spaces it has
// touched and broadcasts Commit/Rollback to each. Per the cyclic-
// reference note in spec.md §9, a Transaction owns only its own
// bookkeeping (a completion flag and the set of enrolled Spaces); it
// looks Spaces up, it does not own them. It carries no separate
// identifier: each Space keys its overlay by the *Transaction pointer.
type Transaction struct {
	mu     sync.Mutex
	done   bool
	spaces map[*Space]struct{}
}

// NewTransaction returns a fresh, unenrolled Transaction.
func NewTransaction() *Transaction {
	return &Transaction{spaces: make(map[*Space]struct{})}
}

// enroll idempotently records that s has staged work for tx.
func (tx *Transaction) enroll(s *Space) {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	tx.spaces[s] = struct{}{}
}

// Commit commits tx's overlay on every Space it enrolled. A
// Transaction must not be used after Commit or Rollback; a second
// call returns *TransactionMisuseError without touching any Space.
func (tx *Transaction) Commit() error {
	spaces, err := tx.finish()
	if err != nil {
		return err
	}
	var firstErr error
	for _, s := range spaces {
		if err := s.Commit(tx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Rollback rolls tx's overlay back on every Space it enrolled.
func (tx *Transaction) Rollback() error {
	spaces, err := tx.finish()
	if err != nil {
		return err
	}
	var firstErr error
	for _, s := range spaces {
		if err := s.Rollback(tx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (tx *Transaction) finish() ([]*Space, error) {
	tx.mu.Lock()
	defer tx.mu.Unlock()
	if tx.done {
		return nil, &TransactionMisuseError{Op: "commit/rollback"}
	}
	tx.done = true
	spaces := make([]*Space, 0, len(tx.spaces))
	for s := range tx.spaces {
		spaces = append(spaces, s)
	}
	return spaces, nil
}
