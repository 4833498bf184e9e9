package ledger

import (
	"fmt"
	"slices"
)

// Ledger is the list of trades in entry order. Entry order is not
// necessarily date order: trades can be back-dated.
type Ledger []Trade

// Last returns the most recently entered trade.
func (l Ledger) Last() (Trade, bool) {
	if len(l) == 0 {
		return Trade{}, false
	}
	return l[len(l)-1], true
}

// Clone returns a copy that can be modified without touching l.
func (l Ledger) Clone() Ledger {
	if l == nil {
		return Ledger{}
	}
	return slices.Clone(l)
}

// Without returns a copy of l with the trades at the given indexes
// removed. Out of range indexes are an error.
func (l Ledger) Without(indexes ...int) (Ledger, error) {
	drop := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		if i < 0 || i >= len(l) {
			return nil, fmt.Errorf("%w: no trade at index %d", ErrValidation, i)
		}
		drop[i] = true
	}
	out := make(Ledger, 0, len(l)-len(drop))
	for i, t := range l {
		if !drop[i] {
			out = append(out, t)
		}
	}
	return out, nil
}

// DateErrors returns one error per trade whose date could not be parsed.
// Such trades stay in the ledger but are left out of date windows.
func (l Ledger) DateErrors() []error {
	var errs []error
	for i, t := range l {
		if !t.HasDate() {
			errs = append(errs, fmt.Errorf("row %d: %w: %q", i+1, ErrInvalidDate, t.RawDate))
		}
	}
	return errs
}
