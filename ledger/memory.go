package ledger

import (
	"context"
	"maps"
	"slices"
	"sync"
)

// MemoryBackend holds the ledger in process memory. It is used for tests
// and throwaway sessions.
type MemoryBackend struct {
	mu     sync.Mutex
	header []string
	rows   []Row
	err    error
}

// NewMemory returns an empty in-memory backend.
func NewMemory() *MemoryBackend {
	return &MemoryBackend{}
}

// Fail makes every following call return err until Fail(nil) is called.
func (b *MemoryBackend) Fail(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.err = err
}

func (b *MemoryBackend) ReadAllRows(ctx context.Context) ([]string, []Row, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return nil, nil, b.err
	}
	return slices.Clone(b.header), cloneRows(b.rows), nil
}

func (b *MemoryBackend) WriteHeaderAndRows(ctx context.Context, header []string, rows []Row) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return b.err
	}
	b.header = slices.Clone(header)
	b.rows = cloneRows(rows)
	return nil
}

func (b *MemoryBackend) AppendRow(ctx context.Context, header []string, row Row) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return b.err
	}
	if len(b.header) == 0 {
		b.header = slices.Clone(header)
	}
	b.rows = append(b.rows, maps.Clone(row))
	return nil
}

func (b *MemoryBackend) Close() error { return nil }

func cloneRows(rows []Row) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		out[i] = maps.Clone(r)
	}
	return out
}
