package ledger

import (
	"fmt"
	"strings"
)

// Persisted column names.
const (
	ColDate         = "Date"
	ColPosition     = "Position"
	ColType         = "Type"
	ColValue        = "Value"
	ColPL           = "P/L"
	ColNotes        = "Notes"
	ColAccountValue = "Account Value"
)

// RequiredColumns must all be present in a non-empty header.
var RequiredColumns = []string{ColDate, ColPosition, ColType, ColPL, ColNotes, ColAccountValue}

// Row is one stored record keyed by column name.
type Row map[string]string

// Schema describes the persisted column layout.
type Schema struct {
	// IncludeValue adds the standalone opening Value column written by the
	// file-backed tracker.
	IncludeValue bool
}

// Header returns the column names in persisted order.
func (s Schema) Header() []string {
	if s.IncludeValue {
		return []string{ColDate, ColPosition, ColType, ColValue, ColPL, ColNotes, ColAccountValue}
	}
	return []string{ColDate, ColPosition, ColType, ColPL, ColNotes, ColAccountValue}
}

// CheckHeader verifies that every required column appears in header.
// An empty header is accepted: the store has never been written.
func CheckHeader(header []string) error {
	if len(header) == 0 {
		return nil
	}
	have := make(map[string]bool, len(header))
	for _, h := range header {
		have[strings.TrimSpace(h)] = true
	}
	var missing []string
	for _, col := range RequiredColumns {
		if !have[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing columns %s", ErrSchema, strings.Join(missing, ", "))
	}
	return nil
}

// EncodeRow converts a trade to its stored form.
func EncodeRow(t Trade) Row {
	return Row{
		ColDate:         t.DateString(),
		ColPosition:     t.Position,
		ColType:         string(t.Type),
		ColValue:        t.Value.String(),
		ColPL:           t.PL.String(),
		ColNotes:        t.Notes,
		ColAccountValue: t.AccountValue.String(),
	}
}

// DecodeRow parses a stored row. An unparseable date is not an error: the
// trade keeps its raw date text and is excluded from date windows.
func DecodeRow(r Row) (Trade, error) {
	tt, err := ParseTradeType(r[ColType])
	if err != nil {
		return Trade{}, err
	}
	value, err := ParseAmount(r[ColValue])
	if err != nil {
		return Trade{}, fmt.Errorf("%s: %w", ColValue, err)
	}
	pl, err := ParseAmount(r[ColPL])
	if err != nil {
		return Trade{}, fmt.Errorf("%s: %w", ColPL, err)
	}
	av, err := ParseAmount(r[ColAccountValue])
	if err != nil {
		return Trade{}, fmt.Errorf("%s: %w", ColAccountValue, err)
	}

	t := Trade{
		RawDate:      r[ColDate],
		Position:     r[ColPosition],
		Type:         tt,
		Value:        value,
		PL:           pl,
		Notes:        r[ColNotes],
		AccountValue: av,
	}
	if d, err := ParseDate(r[ColDate]); err == nil {
		t.Date = d
	}
	return t, nil
}

// Values lays a row out in header order.
func (r Row) Values(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = r[h]
	}
	return out
}

// rowFromValues is the inverse of Values. Missing trailing cells read as
// empty.
func rowFromValues(header, values []string) Row {
	r := make(Row, len(header))
	for i, h := range header {
		if i < len(values) {
			r[strings.TrimSpace(h)] = values[i]
		}
	}
	return r
}
