// Package report renders tracker views as Markdown.
package report

import (
	"strings"
	"text/template"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradetracker/balance"
	"github.com/rustyeddy/tradetracker/ledger"
)

// Options controls rendering.
type Options struct {
	// Currency is the ISO code used to format amounts. Empty means USD.
	Currency string
	// LastSubmissionSucceeded is set right after a trade was added: the
	// dashboard shows a confirmation instead of the add-trade hint.
	LastSubmissionSucceeded bool
}

func (o Options) currency() string {
	if o.Currency == "" {
		return money.USD
	}
	return o.Currency
}

// Money formats d in the given currency, e.g. "$1,234.50".
func Money(d decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		currency = money.USD
		cur = money.GetCurrency(currency)
	}
	minor := d.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, currency).Display()
}

func (o Options) funcs() template.FuncMap {
	return template.FuncMap{
		"money": func(d decimal.Decimal) string { return Money(d, o.currency()) },
		"date":  func(t time.Time) string { return t.Format("Jan 2, 2006") },
		"cell":  cell,
		"lastValue": func(s balance.Stats) string {
			if s.Count == 0 {
				return "-"
			}
			return Money(s.LastValue, o.currency())
		},
		"tradeDate": func(t ledger.Trade) string { return t.DateString() },
	}
}

// cell makes s safe inside a Markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
