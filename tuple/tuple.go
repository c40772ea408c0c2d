package tuple

import "sync/atomic"

// Fields is the input shape callers use to describe a tuple or
// template: a mapping from field name to value. A nil value denotes a
// formal (wildcard) when building a Template, and is never legal when
// building a Tuple.
type Fields map[string]interface{}

var tupleIDs uint64

// Tuple is a finite, non-empty, immutable record. Two tuples are equal
// iff their field mappings are equal; identity for store removal is by
// pointer, since every accepted tuple is a distinct instance.
type Tuple struct {
	id     uint64
	fields map[string]interface{}
	shape  Shape
}

// New validates and freezes fields into a Tuple.
//
// Construction fails with *InvalidTupleError if fields is empty, any
// key is not a non-empty string, or any value is a formal, a
// predicate, or transitively mutable.
func New(fields Fields) (*Tuple, error) {
	if len(fields) == 0 {
		return nil, &InvalidTupleError{Reason: "empty or nil fields"}
	}
	frozen := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		if k == "" {
			return nil, &InvalidTupleError{Reason: "empty field name"}
		}
		if v == nil {
			return nil, &InvalidTupleError{Reason: "field \"" + k + "\" is a formal (nil), not legal in a tuple"}
		}
		if _, isPred := v.(PredicateFunc); isPred {
			return nil, &InvalidTupleError{Reason: "field \"" + k + "\" is a predicate, only legal in a template"}
		}
		if _, isWild := v.(wildcard); isWild {
			return nil, &InvalidTupleError{Reason: "field \"" + k + "\" is a wildcard, only legal in a template"}
		}
		if !isImmutableValue(v) {
			return nil, &InvalidTupleError{Reason: "field \"" + k + "\" is not an immutable value"}
		}
		frozen[k] = v
	}
	return &Tuple{
		id:     atomic.AddUint64(&tupleIDs, 1),
		fields: frozen,
		shape:  shapeOf(fieldKeys(frozen)),
	}, nil
}

// ID is a per-instance identity, stable for the lifetime of the
// process, used by the store for identity removal bookkeeping and by
// the expiry scheduler as a timer key. It plays no role in equality.
func (t *Tuple) ID() uint64 { return t.id }

// Shape is the bucketing key: a pure function of the field name set.
func (t *Tuple) Shape() Shape { return t.shape }

// Fields returns the tuple's fields. Callers must not mutate the
// returned map; it is shared with the Tuple's internal state.
func (t *Tuple) Fields() map[string]interface{} { return t.fields }

// Copy returns the field mapping as a fresh map, safe to hand back to
// a caller across a public Space method boundary.
func (t *Tuple) Copy() Fields {
	acc := make(Fields, len(t.fields))
	for k, v := range t.fields {
		acc[k] = v
	}
	return acc
}

// Equal reports whether two tuples have identical field mappings.
func (t *Tuple) Equal(o *Tuple) bool {
	if o == nil || len(t.fields) != len(o.fields) {
		return false
	}
	for k, v := range t.fields {
		ov, ok := o.fields[k]
		if !ok || !valuesEqual(v, ov) {
			return false
		}
	}
	return true
}

func valuesEqual(a, b interface{}) bool {
	if aa, ok := a.([]interface{}); ok {
		bb, ok := b.([]interface{})
		if !ok || len(aa) != len(bb) {
			return false
		}
		for i := range aa {
			if !valuesEqual(aa[i], bb[i]) {
				return false
			}
		}
		return true
	}
	if am, ok := a.(map[string]interface{}); ok {
		bm, ok := b.(map[string]interface{})
		if !ok || len(am) != len(bm) {
			return false
		}
		for k, v := range am {
			bv, ok := bm[k]
			if !ok || !valuesEqual(v, bv) {
				return false
			}
		}
		return true
	}
	return a == b
}
