// Package hashkey derives short, deterministic text keys from strings.
//
// The hash is 32-bit FNV-1a rendered in base 36. It is fast and stable across
// processes, but it is not collision resistant: two different inputs can map
// to the same key. Callers that persist data under these keys accept that risk.
package hashkey

import (
	"hash/fnv"
	"strconv"
)

// Hash returns the base-36 FNV-1a hash of s.
func Hash(s string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return strconv.FormatUint(uint64(h.Sum32()), 36)
}

// Prefixed returns prefix + Hash(s).
func Prefixed(prefix, s string) string {
	return prefix + Hash(s)
}
