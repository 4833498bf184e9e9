// Package id issues the row keys of the SQLite ledger. Keys are ULIDs and
// sort in the order they were issued, so ORDER BY id is entry order.
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Generator hands out increasing ULID strings.
type Generator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	last    uint64 // millisecond stamp of the previous key
}

// NewGenerator reads randomness from r.
func NewGenerator(r io.Reader) *Generator {
	return &Generator{entropy: ulid.Monotonic(r, 0)}
}

var std = NewGenerator(rand.Reader)

// New returns a key stamped with the current time.
func New() string {
	return std.Next(time.Now())
}

// Next returns a key stamped with t. A t before the previous key's stamp
// is raised to it, so a clock stepping back cannot reorder rows.
func (g *Generator) Next(t time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := ulid.Timestamp(t)
	if ms < g.last {
		ms = g.last
	}
	g.last = ms

	key, err := ulid.New(ms, g.entropy)
	if err != nil {
		// entropy exhausted within one millisecond
		panic(fmt.Sprintf("id: %v", err))
	}
	return key.String()
}
