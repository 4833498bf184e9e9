package tracker

import (
	"context"

	"github.com/rustyeddy/tradetracker/balance"
	"github.com/rustyeddy/tradetracker/ledger"
)

// Dashboard is the overview of the current month, the current year and
// all time.
type Dashboard struct {
	MonthWindow balance.Window
	YearWindow  balance.Window

	Month balance.Stats
	Year  balance.Stats
	All   balance.Stats

	// Series is the daily account value curve.
	Series []balance.Point
	// DateErrors lists rows left out of the month and year figures.
	DateErrors []error
}

// Dashboard computes the overview as of the tracker's clock.
func (t *Tracker) Dashboard(ctx context.Context) (Dashboard, error) {
	l, err := t.Ledger(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	now := t.now()
	d := Dashboard{
		MonthWindow: balance.Month(now.Year(), now.Month()),
		YearWindow:  balance.Year(now.Year()),
		All:         balance.Aggregate(l, balance.All()),
		Series:      balance.DailySeries(l),
		DateErrors:  l.DateErrors(),
	}
	d.Month = balance.Aggregate(l, d.MonthWindow)
	d.Year = balance.Aggregate(l, d.YearWindow)
	return d, nil
}

// History is the month by month view of one year.
type History struct {
	Year int
	// Years lists every year with trades, newest first.
	Years  []int
	Months []balance.MonthStats
	Total  balance.Stats
}

// History computes the overview of year. A zero year selects the newest
// year with trades, or the current year for an empty ledger.
func (t *Tracker) History(ctx context.Context, year int) (History, error) {
	l, err := t.Ledger(ctx)
	if err != nil {
		return History{}, err
	}
	return history(l, year, t.now().Year()), nil
}

func history(l ledger.Ledger, year, current int) History {
	years := balance.Years(l)
	if year == 0 {
		year = current
		if len(years) > 0 {
			year = years[0]
		}
	}
	return History{
		Year:   year,
		Years:  years,
		Months: balance.MonthlyBreakdown(l, year),
		Total:  balance.Aggregate(l, balance.Year(year)),
	}
}
