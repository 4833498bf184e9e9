package report

import (
	"io"
	"text/template"

	"github.com/rustyeddy/tradetracker/tracker"
)

const dashboardTemplate = `
{{- if .Opts.LastSubmissionSucceeded -}}
> ✅ Trade added successfully!

{{ end -}}
# 📈 Trade Tracker

{{ if not .Opts.LastSubmissionSucceeded -}}
Add a trade with ` + "`tracker add --date MM/DD/YY --position TICKER --type Stock --pl AMOUNT`" + `

{{ end -}}
{{ if eq .D.All.Count 0 -}}
No trades yet. Add a trade to get started.
{{- else -}}
|  | 📅 This Month ({{ .D.MonthWindow }}) | 📆 This Year ({{ .D.YearWindow }}) | Overall |
|---|---:|---:|---:|
| Trades | {{ .D.Month.Count }} | {{ .D.Year.Count }} | {{ .D.All.Count }} |
| Profit/Loss | {{ money .D.Month.TotalPL }} | {{ money .D.Year.TotalPL }} | {{ money .D.All.TotalPL }} |
| Last Value | {{ lastValue .D.Month }} | {{ lastValue .D.Year }} | {{ lastValue .D.All }} |
{{- if .D.DateErrors }}

> ⚠️ {{ len .D.DateErrors }} trade(s) with an invalid date are left out of the month and year figures.
{{- end }}

## Account Value Over Time (Daily)

| Date | Account Value |
|---|---:|
{{- range .D.Series }}
| {{ date .Date }} | {{ money .Value }} |
{{- end }}
{{- end }}
`

var dashboardTmpl = template.Must(template.New("dashboard").Funcs(Options{}.funcs()).Parse(dashboardTemplate))

// RenderDashboard writes the dashboard as Markdown.
func RenderDashboard(w io.Writer, d tracker.Dashboard, opts Options) error {
	t, err := dashboardTmpl.Clone()
	if err != nil {
		return err
	}
	return t.Funcs(opts.funcs()).Execute(w, struct {
		D    tracker.Dashboard
		Opts Options
	}{d, opts})
}
