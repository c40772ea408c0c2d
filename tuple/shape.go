package tuple

import "hash/fnv"

// Shape is the bucketing key for a tuple or template: a commutative,
// order-independent function of the set of field names only. Two
// records with the same key set, regardless of values or insertion
// order, share a Shape.
type Shape uint64

// shapeOf combines the per-key hashes with XOR, which is commutative
// and associative, so key order never affects the result.
func shapeOf(keys []string) Shape {
	var acc uint64
	for _, k := range keys {
		h := fnv.New64a()
		_, _ = h.Write([]byte(k))
		acc ^= h.Sum64()
	}
	return Shape(acc)
}

func fieldKeys(fields map[string]interface{}) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	return keys
}
