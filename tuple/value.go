package tuple

import (
	"math/big"
	"net/url"
	"time"
)

// EnumValue is an enumeration constant: a nominally distinct string,
// immutable like any other constant in the value universe.
type EnumValue string

// PredicateFunc is a unary predicate over a fact value, legal only in
// template fields. Errors surface to the caller of the match attempt
// (e.g. a compiled predicate.Compile expression that fails at
// evaluation time).
type PredicateFunc func(interface{}) (bool, error)

// wildcard is the sentinel formal value meaning "matches anything". Any
// is its single exported instance; a nil field value in a template's
// input Fields map is normalised to Any as well.
type wildcard struct{}

// Any is the wildcard formal: it matches any value, including nil.
var Any = wildcard{}

// isImmutableValue reports whether v belongs to the tuple value
// universe: integers of any width, floats, arbitrary-precision numbers,
// bool, string, URI, timestamp, enumeration constant, or a finite
// container (slice or string-keyed map) recursively composed of these.
// Arrays of references (pointers, funcs, chans, maps with non-string
// keys, anything not on this list) are rejected.
func isImmutableValue(v interface{}) bool {
	switch vv := v.(type) {
	case bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, string, EnumValue, time.Time, url.URL:
		return true
	case *big.Int:
		return vv != nil
	case *big.Float:
		return vv != nil
	case []interface{}:
		for _, e := range vv {
			if !isImmutableValue(e) {
				return false
			}
		}
		return true
	case map[string]interface{}:
		for _, e := range vv {
			if !isImmutableValue(e) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
