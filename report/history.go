package report

import (
	"io"
	"text/template"

	"github.com/rustyeddy/tradetracker/tracker"
)

const historyTemplate = `
{{- if not .H.Years -}}
No trades yet. Add some trades to see historical overview.
{{- else -}}
# 📊 Historical Overview: {{ .H.Year }}

| Month | Trades | Profit/Loss |
|---|---:|---:|
{{- range .H.Months }}
| {{ .Month }} | {{ .Count }} | {{ money .TotalPL }} |
{{- end }}
| **Total** | **{{ .H.Total.Count }}** | **{{ money .H.Total.TotalPL }}** |

Years with trades:{{ range .H.Years }} {{ . }}{{ end }}
{{- end }}
`

var historyTmpl = template.Must(template.New("history").Funcs(Options{}.funcs()).Parse(historyTemplate))

// RenderHistory writes the month by month overview of one year.
func RenderHistory(w io.Writer, h tracker.History, opts Options) error {
	t, err := historyTmpl.Clone()
	if err != nil {
		return err
	}
	return t.Funcs(opts.funcs()).Execute(w, struct {
		H    tracker.History
		Opts Options
	}{h, opts})
}
