package balance

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradetracker/ledger"
)

// Point is the account value at the end of one day.
type Point struct {
	Date  time.Time
	Value decimal.Decimal
}

// DailySeries returns one point per trading day, sorted by date. The value
// of a day is the account value of the last trade entered for that day.
// Trades without a valid date are ignored.
func DailySeries(l ledger.Ledger) []Point {
	byDay := map[time.Time]decimal.Decimal{}
	for _, t := range l {
		if t.HasDate() {
			byDay[t.Date] = t.AccountValue
		}
	}

	out := make([]Point, 0, len(byDay))
	for d, v := range byDay {
		out = append(out, Point{Date: d, Value: v})
	}
	slices.SortFunc(out, func(a, b Point) int { return a.Date.Compare(b.Date) })
	return out
}

// Years returns the distinct years that have trades, newest first.
func Years(l ledger.Ledger) []int {
	seen := map[int]bool{}
	var years []int
	for _, t := range l {
		if !t.HasDate() {
			continue
		}
		if y := t.Date.Year(); !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}
	slices.Sort(years)
	slices.Reverse(years)
	return years
}
