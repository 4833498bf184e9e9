package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TradeType is the kind of instrument a trade was made on.
type TradeType string

const (
	Stock  TradeType = "Stock"
	Option TradeType = "Option"
	Crypto TradeType = "Crypto"
	ETF    TradeType = "ETF"
	Other  TradeType = "Other"
)

// TradeTypes lists every accepted TradeType in display order.
var TradeTypes = []TradeType{Stock, Option, Crypto, ETF, Other}

// ParseTradeType matches s case-insensitively against the known types.
// An empty string is Other.
func ParseTradeType(s string) (TradeType, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Other, nil
	}
	for _, tt := range TradeTypes {
		if strings.EqualFold(s, string(tt)) {
			return tt, nil
		}
	}
	return "", fmt.Errorf("%w: unknown trade type %q", ErrValidation, s)
}

// DateLayout is the persisted date format (MM/DD/YY).
const DateLayout = "01/02/06"

// parse layouts, most specific first. ISO dates come from files written
// by older versions of the tracker.
var dateLayouts = []string{"1/2/06", "2006-01-02", "1/2/2006"}

// ParseDate parses a stored or user supplied date. The result is midnight
// UTC of that calendar day.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// FormatDate renders t in DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Trade is one logged profit/loss event.
type Trade struct {
	// Date is zero when the stored date could not be parsed.
	Date time.Time
	// RawDate is the date text as stored, kept so unparseable values
	// survive a rewrite.
	RawDate  string
	Position string
	Type     TradeType
	// Value is an optional opening value used only when the trade is the
	// first in the ledger.
	Value        decimal.Decimal
	PL           decimal.Decimal
	Notes        string
	AccountValue decimal.Decimal
}

// HasDate reports whether the trade carries a valid date.
func (t Trade) HasDate() bool {
	return !t.Date.IsZero()
}

// DateString returns the text persisted in the Date column.
func (t Trade) DateString() string {
	if t.HasDate() {
		return FormatDate(t.Date)
	}
	return t.RawDate
}

// Input holds raw user input for a new trade.
type Input struct {
	Date     string
	Position string
	Type     string
	Value    string
	PL       string
	Notes    string
}

// NewTrade validates in and builds a Trade. The account value is left
// zero; it is derived by the balance engine.
func NewTrade(in Input) (Trade, error) {
	if strings.TrimSpace(in.Date) == "" {
		return Trade{}, fmt.Errorf("%w: date is required", ErrValidation)
	}
	date, err := ParseDate(in.Date)
	if err != nil {
		return Trade{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	tt, err := ParseTradeType(in.Type)
	if err != nil {
		return Trade{}, err
	}
	value, err := ParseAmount(in.Value)
	if err != nil {
		return Trade{}, fmt.Errorf("value: %w", err)
	}
	pl, err := ParseAmount(in.PL)
	if err != nil {
		return Trade{}, fmt.Errorf("profit/loss: %w", err)
	}

	return Trade{
		Date:     date,
		RawDate:  FormatDate(date),
		Position: strings.TrimSpace(in.Position),
		Type:     tt,
		Value:    value,
		PL:       pl,
		Notes:    in.Notes,
	}, nil
}

// ParseAmount parses a signed decimal amount. Currency symbols, thousands
// separators and surrounding blanks are ignored; an empty string is zero.
func ParseAmount(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	clean = strings.ReplaceAll(clean, ",", "")
	clean = strings.Replace(clean, "$", "", 1)
	if clean == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: not a number: %q", ErrValidation, s)
	}
	return d, nil
}
