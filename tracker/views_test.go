package tracker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tradetracker/ledger"
)

func TestDashboard(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	tk, _ := newTestTracker(t) // clock: 2024-03-20
	seed(t, tk,
		ledger.Input{Date: "2023-12-28", PL: "1000"},
		ledger.Input{Date: "2024-01-10", PL: "500"},
		ledger.Input{Date: "2024-03-02", PL: "-200"},
		ledger.Input{Date: "2024-03-15", PL: "50"},
	)

	d, err := tk.Dashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, "March 2024", d.MonthWindow.String())
	assert.Equal(t, 2, d.Month.Count)
	assertDecimal(t, "-150", d.Month.TotalPL)
	assertDecimal(t, "1350", d.Month.LastValue)

	assert.Equal(t, 3, d.Year.Count)
	assertDecimal(t, "350", d.Year.TotalPL)

	assert.Equal(t, 4, d.All.Count)
	assertDecimal(t, "1350", d.All.TotalPL)
	assertDecimal(t, "1350", d.All.LastValue)

	require.Len(t, d.Series, 4)
	assert.Equal(t, time.Date(2023, 12, 28, 0, 0, 0, 0, time.UTC), d.Series[0].Date)
	assert.Empty(t, d.DateErrors)
}

func TestDashboardReportsBadDates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	tk, mem := newTestTracker(t)
	require.NoError(t, mem.WriteHeaderAndRows(ctx, ledger.Schema{}.Header(), []ledger.Row{
		{ledger.ColDate: "03/01/24", ledger.ColPL: "10", ledger.ColAccountValue: "10"},
		{ledger.ColDate: "sometime", ledger.ColPL: "5", ledger.ColAccountValue: "15"},
	}))

	d, err := tk.Dashboard(ctx)
	require.NoError(t, err)
	assert.Len(t, d.DateErrors, 1)
	assert.Equal(t, 1, d.Month.Count)
	assert.Equal(t, 1, d.Month.Skipped)
	assert.Equal(t, 2, d.All.Count)
}

func TestHistory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	tk, _ := newTestTracker(t)
	seed(t, tk,
		ledger.Input{Date: "2023-05-01", PL: "100"},
		ledger.Input{Date: "2024-01-10", PL: "500"},
		ledger.Input{Date: "2024-03-02", PL: "-200"},
	)

	h, err := tk.History(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 2024, h.Year)
	assert.Equal(t, []int{2024, 2023}, h.Years)
	require.Len(t, h.Months, 12)
	assertDecimal(t, "500", h.Months[0].TotalPL)
	assert.Equal(t, 0, h.Months[1].Count)
	assertDecimal(t, "-200", h.Months[2].TotalPL)
	assertDecimal(t, "300", h.Total.TotalPL)

	h, err = tk.History(ctx, 2023)
	require.NoError(t, err)
	assert.Equal(t, 2023, h.Year)
	assertDecimal(t, "100", h.Months[4].TotalPL)
}

func TestHistoryEmptyLedger(t *testing.T) {
	t.Parallel()

	tk, _ := newTestTracker(t)
	h, err := tk.History(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 2024, h.Year)
	assert.Empty(t, h.Years)
	assert.Len(t, h.Months, 12)
}
