package report

import (
	"encoding/csv"
	"io"
	"text/template"

	"github.com/rustyeddy/tradetracker/ledger"
)

// Page is one slice of the trade table.
type Page struct {
	Number int // 1-based
	Pages  int
	Start  int // index of the first trade on the page
	End    int // index after the last trade on the page
	Total  int
}

// Paginate splits total rows into pages of size and returns page n.
// Out of range page numbers are clamped.
func Paginate(total, n, size int) Page {
	if size <= 0 {
		size = total
	}
	pages := 1
	if size > 0 && total > 0 {
		pages = (total + size - 1) / size
	}
	n = max(1, min(n, pages))
	start := min((n-1)*size, total)
	end := min(start+size, total)
	return Page{Number: n, Pages: pages, Start: start, End: end, Total: total}
}

type tradeRow struct {
	N int
	ledger.Trade
}

const tradesTemplate = `
{{- if eq .Page.Total 0 -}}
No trades yet. Add a trade to get started.
{{- else -}}
## All Trades

| # | Date | Position | Type | P/L | Notes | Account Value |
|---:|---|---|---|---:|---|---:|
{{- range .Rows }}
| {{ .N }} | {{ tradeDate .Trade }} | {{ cell .Position }} | {{ .Type }} | {{ money .PL }} | {{ cell .Notes }} | {{ money .AccountValue }} |
{{- end }}

Page {{ .Page.Number }} of {{ .Page.Pages }} ({{ .Page.Total }} trades)
{{- end }}
`

var tradesTmpl = template.Must(template.New("trades").Funcs(Options{}.funcs()).Parse(tradesTemplate))

// RenderTrades writes one page of the trade table. Rows are numbered from
// 1 across the whole ledger.
func RenderTrades(w io.Writer, l ledger.Ledger, page Page, opts Options) error {
	rows := make([]tradeRow, 0, page.End-page.Start)
	for i := page.Start; i < page.End; i++ {
		rows = append(rows, tradeRow{N: i + 1, Trade: l[i]})
	}
	t, err := tradesTmpl.Clone()
	if err != nil {
		return err
	}
	return t.Funcs(opts.funcs()).Execute(w, struct {
		Rows []tradeRow
		Page Page
	}{rows, page})
}

// WriteCSV exports the ledger with the given schema's header.
func WriteCSV(w io.Writer, l ledger.Ledger, schema ledger.Schema) error {
	header := schema.Header()
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, t := range l {
		if err := cw.Write(ledger.EncodeRow(t).Values(header)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
