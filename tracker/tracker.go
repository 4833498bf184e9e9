// Package tracker runs the trade tracker's use cases: adding trades,
// bulk edits, and the dashboard and history views. It keeps the stored
// account values consistent with the balance recurrence.
package tracker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradetracker/balance"
	"github.com/rustyeddy/tradetracker/ledger"
)

// Tracker ties a ledger store to the balance engine.
type Tracker struct {
	store   *ledger.Store
	opening decimal.Decimal
	log     *zap.Logger
	now     func() time.Time
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithOpeningValue sets the starting balance used for the first trade
// when it is entered without a Value.
func WithOpeningValue(v decimal.Decimal) Option {
	return func(t *Tracker) { t.opening = v }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(t *Tracker) { t.log = l }
}

// WithClock replaces time.Now, which decides the current month and year.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// New returns a Tracker persisting through store.
func New(store *ledger.Store, opts ...Option) *Tracker {
	t := &Tracker{
		store: store,
		log:   zap.NewNop(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Ledger loads the ledger. Stale account values are recomputed in memory;
// they are persisted with the next write.
func (t *Tracker) Ledger(ctx context.Context) (ledger.Ledger, error) {
	l, _, err := t.load(ctx)
	return l, err
}

func (t *Tracker) load(ctx context.Context) (ledger.Ledger, bool, error) {
	l, err := t.store.Load(ctx)
	if err != nil {
		return nil, false, err
	}
	l = t.withOpening(l)
	if err := balance.Consistent(l); err != nil {
		t.log.Warn("recomputing account values", zap.Error(err))
		return balance.RecomputeAll(l), true, nil
	}
	return l, false, nil
}

// AddTrade validates in, derives the new trade's account value from the
// current ledger tail and appends it.
func (t *Tracker) AddTrade(ctx context.Context, in ledger.Input) (ledger.Trade, error) {
	tr, err := ledger.NewTrade(in)
	if err != nil {
		return ledger.Trade{}, err
	}

	l, stale, err := t.load(ctx)
	if err != nil {
		return ledger.Trade{}, err
	}
	switch {
	case len(l) > 0:
		// only the first trade carries an opening value
		tr.Value = decimal.Zero
	case strings.TrimSpace(in.Value) == "":
		tr.Value = t.opening
	case !t.store.Schema().IncludeValue:
		return ledger.Trade{}, fmt.Errorf("%w: the ledger has no %s column, configure the opening value instead",
			ledger.ErrValidation, ledger.ColValue)
	}
	tr.AccountValue = balance.ComputeNextValue(l, tr.PL, tr.Value)

	if stale {
		err = t.store.ReplaceAll(ctx, append(l, tr))
	} else {
		err = t.store.Append(ctx, tr)
	}
	if err != nil {
		return ledger.Trade{}, err
	}
	return tr, nil
}

// Save persists an edited ledger after recomputing every account value,
// and returns what was written.
func (t *Tracker) Save(ctx context.Context, edited ledger.Ledger) (ledger.Ledger, error) {
	l := balance.RecomputeAll(t.withOpening(edited))
	if err := t.store.ReplaceAll(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// withOpening gives the first trade the configured opening value when the
// ledger is stored without a Value column. With the column, the first row
// carries its own opening and is left alone.
func (t *Tracker) withOpening(l ledger.Ledger) ledger.Ledger {
	if len(l) == 0 || t.store.Schema().IncludeValue || l[0].Value.Equal(t.opening) {
		return l
	}
	l = l.Clone()
	l[0].Value = t.opening
	return l
}

// Edit holds field changes for one trade. Nil fields are left alone.
type Edit struct {
	Date     *string
	Position *string
	Type     *string
	Value    *string
	PL       *string
	Notes    *string
}

// Apply returns tr with the edit applied.
func (e Edit) Apply(tr ledger.Trade) (ledger.Trade, error) {
	if e.Date != nil {
		d, err := ledger.ParseDate(*e.Date)
		if err != nil {
			return tr, fmt.Errorf("%w: %v", ledger.ErrValidation, err)
		}
		tr.Date = d
		tr.RawDate = ledger.FormatDate(d)
	}
	if e.Position != nil {
		tr.Position = strings.TrimSpace(*e.Position)
	}
	if e.Type != nil {
		tt, err := ledger.ParseTradeType(*e.Type)
		if err != nil {
			return tr, err
		}
		tr.Type = tt
	}
	if e.Value != nil {
		v, err := ledger.ParseAmount(*e.Value)
		if err != nil {
			return tr, fmt.Errorf("value: %w", err)
		}
		tr.Value = v
	}
	if e.PL != nil {
		pl, err := ledger.ParseAmount(*e.PL)
		if err != nil {
			return tr, fmt.Errorf("profit/loss: %w", err)
		}
		tr.PL = pl
	}
	if e.Notes != nil {
		tr.Notes = *e.Notes
	}
	return tr, nil
}

// Edit changes the trade at index (0-based, entry order) and persists the
// recomputed ledger.
func (t *Tracker) Edit(ctx context.Context, index int, e Edit) (ledger.Ledger, error) {
	l, err := t.Ledger(ctx)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(l) {
		return nil, fmt.Errorf("%w: no trade at index %d", ledger.ErrValidation, index)
	}
	if e.Value != nil && (index > 0 || !t.store.Schema().IncludeValue) {
		return nil, fmt.Errorf("%w: only the first trade of a ledger with a %s column has an opening value",
			ledger.ErrValidation, ledger.ColValue)
	}
	edited := l.Clone()
	if edited[index], err = e.Apply(edited[index]); err != nil {
		return nil, err
	}
	return t.Save(ctx, edited)
}

// Delete removes the trades at the given indexes and persists the
// recomputed ledger.
func (t *Tracker) Delete(ctx context.Context, indexes ...int) (ledger.Ledger, error) {
	l, err := t.Ledger(ctx)
	if err != nil {
		return nil, err
	}
	remaining, err := l.Without(indexes...)
	if err != nil {
		return nil, err
	}
	// the opening stays with whichever trade is now first
	if len(remaining) > 0 {
		remaining[0].Value = l[0].Value
	}
	return t.Save(ctx, remaining)
}

// Clear removes every trade.
func (t *Tracker) Clear(ctx context.Context) error {
	return t.store.Clear(ctx)
}

// Recompute rewrites the stored ledger with freshly derived account
// values.
func (t *Tracker) Recompute(ctx context.Context) (ledger.Ledger, error) {
	l, err := t.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return t.Save(ctx, l)
}
