package space

import "time"

// NoWait means "don't block": Take/Get make at most one match attempt
// and return immediately.
//
// Forever (also spelled WaitForever, matching spec.md's two names for
// the same sentinel) means "block indefinitely". spec.md §9 flags that
// the system this was distilled from used two different encodings for
// this sentinel (Long.MAX_VALUE in one variant, -1 in another) across
// two Space implementations; we carry exactly one encoding, -1, rather
// than mirror both. See DESIGN.md.
const (
	NoWait      = time.Duration(0)
	Forever     = time.Duration(-1)
	WaitForever = Forever
)
