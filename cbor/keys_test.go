package cbor

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestCompareKeysShorterFirst(t *testing.T) {
	assert.Negative(t, compareKeys("a", "bb"))
	assert.Positive(t, compareKeys("bb", "a"))
}

func TestCompareKeysLexicographicWithinEqualLength(t *testing.T) {
	assert.Negative(t, compareKeys("aa", "ab"))
	assert.Positive(t, compareKeys("ab", "aa"))
	assert.Zero(t, compareKeys("aa", "aa"))
}

func TestSortedKeysCanonicalOrder(t *testing.T) {
	m := map[string]any{
		"ccc": 1,
		"b":   2,
		"aa":  3,
	}
	got := sortedKeys(m)
	want := []string{"b", "aa", "ccc"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("sortedKeys mismatch (-want +got):\n%s", diff)
	}
}
