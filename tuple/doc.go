// Package tuple provides the tuple/template value model for the
// tuplespace: finite, non-empty records of immutable values, and the
// template shape used to query them.
//
// A Tuple never has formal (wildcard or predicate) fields; a Template
// has the same shape but some fields may be formal. Both compute a
// shape hash, a pure function of the set of field names, used as the
// bucketing key in package store.
package tuple
