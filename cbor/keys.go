package cbor

import (
	"bytes"
	"slices"
)

// compareKeys implements the canonical DAG-CBOR map-key order: shorter keys
// sort first; keys of equal length compare byte-lexicographically over their
// UTF-8 encoding. It returns a negative number, zero, or a positive number as
// a < b, a == b, or a > b.
func compareKeys(a, b string) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return bytes.Compare([]byte(a), []byte(b))
}

// sortedKeys returns the keys of m in canonical map-key order. The
// comparator is total over strings, so this never needs the non-string
// "smallest bucket" fallback described for duck-typed sources — Go map keys
// are already statically strings by the time this is called.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeys)
	return keys
}
