// Package balance derives account values from a trade ledger and
// summarizes them over date windows.
//
// Account values follow one recurrence: in entry order, each trade's
// account value is the previous trade's account value plus its own
// profit/loss. The first trade starts from its opening Value, which is
// zero unless the ledger carries a Value column.
package balance

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradetracker/ledger"
)

// ErrStale is returned by Consistent when stored account values do not
// follow the recurrence.
var ErrStale = errors.New("account values are stale")

// Stats summarizes the trades of one window.
type Stats struct {
	Count   int
	TotalPL decimal.Decimal
	// LastValue is the account value of the chronologically last trade
	// in the window, or the ledger's latest value if the window is empty.
	LastValue decimal.Decimal
	// Skipped counts trades left out because their date is invalid.
	Skipped int
}

// MonthStats is one entry of a monthly breakdown.
type MonthStats struct {
	Month time.Month
	Stats
}

// ComputeNextValue returns the account value of a new trade appended to l.
// With an empty ledger the trade starts from fallback.
func ComputeNextValue(l ledger.Ledger, pl, fallback decimal.Decimal) decimal.Decimal {
	last, ok := l.Last()
	if !ok {
		return fallback.Add(pl)
	}
	return last.AccountValue.Add(pl)
}

// RecomputeAll returns a copy of l with every account value derived again
// in entry order. It must be used after any edit or delete: changing one
// trade's P/L moves every later balance.
func RecomputeAll(l ledger.Ledger) ledger.Ledger {
	out := l.Clone()
	var v decimal.Decimal
	for i := range out {
		if i == 0 {
			v = out[i].Value
		}
		v = v.Add(out[i].PL)
		out[i].AccountValue = v
	}
	return out
}

// Consistent returns an ErrStale error naming the first trade whose
// account value breaks the recurrence, or nil.
func Consistent(l ledger.Ledger) error {
	var v decimal.Decimal
	for i, t := range l {
		if i == 0 {
			v = t.Value
		}
		v = v.Add(t.PL)
		if !t.AccountValue.Equal(v) {
			return fmt.Errorf("%w: row %d has %s, expected %s", ErrStale, i+1, t.AccountValue, v)
		}
	}
	return nil
}

// Aggregate summarizes the trades of l that fall in w.
//
// The last value comes from the trade with the latest date; among trades
// sharing that date the later entry wins. Trades with an invalid date are
// dropped from month and year windows and counted in Skipped.
func Aggregate(l ledger.Ledger, w Window) Stats {
	st := Stats{TotalPL: decimal.Zero}

	lastIdx := -1
	for i, t := range l {
		if !t.HasDate() && !w.IsAll() {
			st.Skipped++
			continue
		}
		if !w.Contains(t) {
			continue
		}
		st.Count++
		st.TotalPL = st.TotalPL.Add(t.PL)
		if t.HasDate() && (lastIdx < 0 || !t.Date.Before(l[lastIdx].Date)) {
			lastIdx = i
		}
	}

	switch {
	case lastIdx >= 0:
		st.LastValue = l[lastIdx].AccountValue
	default:
		if last, ok := l.Last(); ok {
			st.LastValue = last.AccountValue
		}
	}
	return st
}

// MonthlyBreakdown returns the stats of every calendar month of year, in
// order. It always has twelve entries.
func MonthlyBreakdown(l ledger.Ledger, year int) []MonthStats {
	out := make([]MonthStats, 0, 12)
	for m := time.January; m <= time.December; m++ {
		out = append(out, MonthStats{Month: m, Stats: Aggregate(l, Month(year, m))})
	}
	return out
}
