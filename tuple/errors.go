package tuple

import "errors"

// InvalidTupleError occurs when a proposed tuple is null, empty, has a
// non-string key, or has a value that is a formal, a predicate, or
// transitively mutable.
type InvalidTupleError struct {
	Reason string
}

func (e *InvalidTupleError) Error() string {
	return "invalid tuple: " + e.Reason
}

// InvalidTemplateError occurs when a proposed template is null, empty,
// or has a non-string key.
type InvalidTemplateError struct {
	Reason string
}

func (e *InvalidTemplateError) Error() string {
	return "invalid template: " + e.Reason
}

// IllegalTemplateUse occurs when Match is called with a "tuple" role
// argument that actually carries formal fields. A well-typed *Tuple
// can never trigger this; it exists for the lower-level record
// comparison shared by the store's bucket scan.
var IllegalTemplateUse = errors.New("tuple: illegal template use in tuple role")
