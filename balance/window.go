package balance

import (
	"fmt"
	"time"

	"github.com/rustyeddy/tradetracker/ledger"
)

type windowKind int

const (
	allTime windowKind = iota
	yearWindow
	monthWindow
)

// Window is a date range used to filter trades: one calendar month, one
// calendar year, or all time.
type Window struct {
	kind  windowKind
	year  int
	month time.Month
}

// Month is the window covering month m of year y.
func Month(y int, m time.Month) Window {
	return Window{kind: monthWindow, year: y, month: m}
}

// Year is the window covering calendar year y.
func Year(y int) Window {
	return Window{kind: yearWindow, year: y}
}

// All is the window covering every trade.
func All() Window {
	return Window{kind: allTime}
}

// IsAll reports whether w is the all-time window.
func (w Window) IsAll() bool { return w.kind == allTime }

// Contains reports whether t falls in w. Only the all-time window
// contains trades without a valid date.
func (w Window) Contains(t ledger.Trade) bool {
	switch w.kind {
	case allTime:
		return true
	case yearWindow:
		return t.HasDate() && t.Date.Year() == w.year
	case monthWindow:
		return t.HasDate() && t.Date.Year() == w.year && t.Date.Month() == w.month
	}
	return false
}

func (w Window) String() string {
	switch w.kind {
	case yearWindow:
		return fmt.Sprintf("%d", w.year)
	case monthWindow:
		return fmt.Sprintf("%s %d", w.month, w.year)
	}
	return "all time"
}
