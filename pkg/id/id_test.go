package id

import (
	"crypto/rand"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextSortsInCallOrder(t *testing.T) {
	t.Parallel()

	g := NewGenerator(rand.Reader)
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	keys := make([]string, 500)
	for i := range keys {
		keys[i] = g.Next(at)
	}

	assert.True(t, sort.StringsAreSorted(keys))
	seen := map[string]bool{}
	for _, k := range keys {
		require.Len(t, k, 26)
		assert.False(t, seen[k], "duplicate key %s", k)
		seen[k] = true
	}
}

func TestNextIgnoresClockGoingBack(t *testing.T) {
	t.Parallel()

	g := NewGenerator(rand.Reader)
	later := g.Next(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	earlier := g.Next(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Less(t, later, earlier)
}

func TestNew(t *testing.T) {
	t.Parallel()

	a, b := New(), New()
	assert.Less(t, a, b)
}
