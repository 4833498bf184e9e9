package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Store loads and persists a Ledger through a Backend.
type Store struct {
	backend Backend
	schema  Schema
	cache   *Cache
	log     *zap.Logger

	checkConflicts bool

	mu     sync.Mutex
	seen   int // row count observed by the last Load or write
	loaded bool
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithCache puts c in front of Load.
func WithCache(c *Cache) StoreOption {
	return func(s *Store) { s.cache = c }
}

// WithLogger sets the logger used for store events.
func WithLogger(l *zap.Logger) StoreOption {
	return func(s *Store) { s.log = l }
}

// WithConflictCheck makes Append, ReplaceAll and Clear fail with
// ErrConflict when the stored row count differs from the one seen at the
// last Load. Without it the last writer wins.
func WithConflictCheck() StoreOption {
	return func(s *Store) { s.checkConflicts = true }
}

// NewStore returns a Store over b.
func NewStore(b Backend, schema Schema, opts ...StoreOption) *Store {
	s := &Store{
		backend: b,
		schema:  schema,
		cache:   NewCache(0),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Schema returns the layout used for full rewrites.
func (s *Store) Schema() Schema { return s.schema }

// Load returns every persisted trade in stored order.
func (s *Store) Load(ctx context.Context) (Ledger, error) {
	if l, ok := s.cache.Get(); ok {
		s.log.Debug("ledger cache hit", zap.Int("trades", len(l)))
		return l, nil
	}

	ver := s.cache.Version()
	header, rows, err := s.backend.ReadAllRows(ctx)
	if err != nil {
		return nil, unavailable("load", err)
	}
	if err := CheckHeader(header); err != nil {
		return nil, err
	}

	l := make(Ledger, 0, len(rows))
	for i, r := range rows {
		t, err := DecodeRow(r)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		l = append(l, t)
	}

	s.mu.Lock()
	s.seen = len(rows)
	s.loaded = true
	s.mu.Unlock()

	s.cache.Put(l, ver)
	s.log.Debug("ledger loaded", zap.Int("trades", len(l)))
	return l, nil
}

// Append adds t after the current last trade.
func (s *Store) Append(ctx context.Context, t Trade) error {
	if err := s.checkConflict(ctx); err != nil {
		return err
	}
	if err := s.backend.AppendRow(ctx, s.schema.Header(), EncodeRow(t)); err != nil {
		return unavailable("append", err)
	}
	s.cache.Invalidate()
	s.mu.Lock()
	s.seen++
	s.mu.Unlock()
	s.log.Info("trade appended",
		zap.String("date", t.DateString()),
		zap.String("position", t.Position),
		zap.String("pl", t.PL.String()),
		zap.String("account_value", t.AccountValue.String()),
	)
	return nil
}

// ReplaceAll overwrites the persisted ledger with l, header included.
func (s *Store) ReplaceAll(ctx context.Context, l Ledger) error {
	if err := s.checkConflict(ctx); err != nil {
		return err
	}
	rows := make([]Row, len(l))
	for i, t := range l {
		rows[i] = EncodeRow(t)
	}
	if err := s.backend.WriteHeaderAndRows(ctx, s.schema.Header(), rows); err != nil {
		return unavailable("replace", err)
	}
	s.wrote(len(l))
	s.log.Info("ledger replaced", zap.Int("trades", len(l)))
	return nil
}

// Clear removes every trade and leaves a header-only store behind.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.ReplaceAll(ctx, nil); err != nil {
		return err
	}
	s.log.Info("ledger cleared")
	return nil
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

func (s *Store) wrote(rows int) {
	s.cache.Invalidate()
	s.mu.Lock()
	s.seen = rows
	s.mu.Unlock()
}

func (s *Store) checkConflict(ctx context.Context) error {
	if !s.checkConflicts {
		return nil
	}
	s.mu.Lock()
	seen, loaded := s.seen, s.loaded
	s.mu.Unlock()
	if !loaded {
		return fmt.Errorf("%w: ledger was not loaded before writing", ErrConflict)
	}
	_, rows, err := s.backend.ReadAllRows(ctx)
	if err != nil {
		return unavailable("conflict check", err)
	}
	if len(rows) != seen {
		return fmt.Errorf("%w: expected %d rows, store has %d", ErrConflict, seen, len(rows))
	}
	return nil
}

func unavailable(op string, err error) error {
	if errors.Is(err, ErrStoreUnavailable) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
