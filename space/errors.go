package space

import "errors"

// TransactionMisuseError occurs when Commit or Rollback is called on a
// transaction that this Space never enrolled, or has already
// committed or rolled back.
type TransactionMisuseError struct {
	Op string
}

func (e *TransactionMisuseError) Error() string {
	return "space: " + e.Op + " on an unknown or already-finished transaction"
}

// Cancelled is returned when a caller's context is done while Take or
// Get is blocked. The template is unregistered before this error is
// returned.
var Cancelled = errors.New("space: operation cancelled")
