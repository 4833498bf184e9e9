package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tradetracker/balance"
	"github.com/rustyeddy/tradetracker/ledger"
	"github.com/rustyeddy/tradetracker/tracker"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleLedger() ledger.Ledger {
	mk := func(date, pos string, pl, av string) ledger.Trade {
		dt, _ := ledger.ParseDate(date)
		return ledger.Trade{Date: dt, RawDate: date, Position: pos, Type: ledger.Stock, PL: d(pl), AccountValue: d(av)}
	}
	return ledger.Ledger{
		mk("01/10/24", "TQQQ", "500", "500"),
		mk("03/02/24", "SPY", "-200", "300"),
		mk("03/15/24", "BTC", "1234.5", "1534.5"),
	}
}

func TestMoney(t *testing.T) {
	t.Parallel()

	tests := []struct {
		amount   string
		currency string
		want     string
	}{
		{"1234.5", "USD", "$1,234.50"},
		{"-200", "USD", "-$200.00"},
		{"0", "USD", "$0.00"},
		{"10.005", "USD", "$10.01"},
		{"5", "NOPE", "$5.00"},
	}
	for _, tt := range tests {
		t.Run(tt.amount+tt.currency, func(t *testing.T) {
			assert.Equal(t, tt.want, Money(d(tt.amount), tt.currency))
		})
	}
}

func TestRenderDashboard(t *testing.T) {
	t.Parallel()

	l := sampleLedger()
	dash := tracker.Dashboard{
		MonthWindow: balance.Month(2024, time.March),
		YearWindow:  balance.Year(2024),
		Month:       balance.Aggregate(l, balance.Month(2024, time.March)),
		Year:        balance.Aggregate(l, balance.Year(2024)),
		All:         balance.Aggregate(l, balance.All()),
		Series:      balance.DailySeries(l),
	}

	var buf bytes.Buffer
	require.NoError(t, RenderDashboard(&buf, dash, Options{Currency: "USD"}))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "# 📈 Trade Tracker\n"))
	assert.Contains(t, out, "tracker add --date")
	assert.NotContains(t, out, "Trade added successfully")
	assert.Contains(t, out, "This Month (March 2024)")
	assert.Contains(t, out, "| Trades | 2 | 3 | 3 |")
	assert.Contains(t, out, "| Profit/Loss | $1,034.50 | $1,534.50 | $1,534.50 |")
	assert.Contains(t, out, "| Last Value | $1,534.50 | $1,534.50 | $1,534.50 |")
	assert.Contains(t, out, "| Jan 10, 2024 | $500.00 |")
	assert.Contains(t, out, "| Mar 15, 2024 | $1,534.50 |")
}

func TestRenderDashboardAfterSubmission(t *testing.T) {
	t.Parallel()

	l := sampleLedger()
	dash := tracker.Dashboard{
		MonthWindow: balance.Month(2024, time.April),
		YearWindow:  balance.Year(2024),
		Month:       balance.Aggregate(l, balance.Month(2024, time.April)),
		Year:        balance.Aggregate(l, balance.Year(2024)),
		All:         balance.Aggregate(l, balance.All()),
	}

	var buf bytes.Buffer
	require.NoError(t, RenderDashboard(&buf, dash, Options{LastSubmissionSucceeded: true}))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "> ✅ Trade added successfully!"))
	assert.NotContains(t, out, "tracker add --date")
	// no trades this month: the last value is not shown
	assert.Contains(t, out, "| Last Value | - |")
}

func TestRenderDashboardEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, RenderDashboard(&buf, tracker.Dashboard{}, Options{}))
	assert.Contains(t, buf.String(), "No trades yet.")
	assert.NotContains(t, buf.String(), "Account Value Over Time")
}

func TestRenderDashboardDateWarning(t *testing.T) {
	t.Parallel()

	dash := tracker.Dashboard{
		All:        balance.Stats{Count: 1},
		DateErrors: []error{ledger.ErrInvalidDate},
	}
	var buf bytes.Buffer
	require.NoError(t, RenderDashboard(&buf, dash, Options{}))
	assert.Contains(t, buf.String(), "1 trade(s) with an invalid date")
}

func TestRenderHistory(t *testing.T) {
	t.Parallel()

	l := sampleLedger()
	h := tracker.History{
		Year:   2024,
		Years:  balance.Years(l),
		Months: balance.MonthlyBreakdown(l, 2024),
		Total:  balance.Aggregate(l, balance.Year(2024)),
	}

	var buf bytes.Buffer
	require.NoError(t, RenderHistory(&buf, h, Options{}))
	out := buf.String()

	assert.Contains(t, out, "# 📊 Historical Overview: 2024")
	assert.Contains(t, out, "| January | 1 | $500.00 |")
	assert.Contains(t, out, "| February | 0 | $0.00 |")
	assert.Contains(t, out, "| March | 2 | $1,034.50 |")
	assert.Contains(t, out, "| December | 0 | $0.00 |")
	assert.Contains(t, out, "| **Total** | **3** | **$1,534.50** |")
	assert.Contains(t, out, "Years with trades: 2024")
}

func TestRenderHistoryEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, RenderHistory(&buf, tracker.History{Year: 2024}, Options{}))
	assert.Contains(t, buf.String(), "No trades yet.")
}

func TestPaginate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		total, n, size int
		want           Page
	}{
		{"first page", 25, 1, 10, Page{Number: 1, Pages: 3, Start: 0, End: 10, Total: 25}},
		{"last partial page", 25, 3, 10, Page{Number: 3, Pages: 3, Start: 20, End: 25, Total: 25}},
		{"clamped high", 25, 9, 10, Page{Number: 3, Pages: 3, Start: 20, End: 25, Total: 25}},
		{"clamped low", 25, 0, 10, Page{Number: 1, Pages: 3, Start: 0, End: 10, Total: 25}},
		{"empty", 0, 1, 10, Page{Number: 1, Pages: 1, Start: 0, End: 0, Total: 0}},
		{"no size", 7, 1, 0, Page{Number: 1, Pages: 1, Start: 0, End: 7, Total: 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Paginate(tt.total, tt.n, tt.size))
		})
	}
}

func TestRenderTrades(t *testing.T) {
	t.Parallel()

	l := sampleLedger()
	l[1].Notes = "gap | fill\nnext day"

	var buf bytes.Buffer
	require.NoError(t, RenderTrades(&buf, l, Paginate(len(l), 2, 2), Options{}))
	out := buf.String()

	assert.Contains(t, out, "## All Trades")
	assert.NotContains(t, out, "TQQQ")
	assert.Contains(t, out, "| 3 | 03/15/24 | BTC | Stock | $1,234.50 |  | $1,534.50 |")
	assert.Contains(t, out, "Page 2 of 2 (3 trades)")

	buf.Reset()
	require.NoError(t, RenderTrades(&buf, l, Paginate(len(l), 1, 2), Options{}))
	assert.Contains(t, buf.String(), `gap \| fill next day`)
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleLedger()[:1], ledger.Schema{}))
	assert.Equal(t,
		"Date,Position,Type,P/L,Notes,Account Value\n01/10/24,TQQQ,Stock,500,,500\n",
		buf.String())
}
