package ledger

import (
	"fmt"
	"strings"
)

// FormatTradeOrg renders a trade as an Org-mode heading. The structured
// fields go in a PROPERTIES drawer and the notes become the body.
func FormatTradeOrg(n int, t Trade) string {
	position := t.Position
	if position == "" {
		position = "(no position)"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "** Trade %d: %s %s\n", n, position, t.DateString())
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":DATE: %s\n", t.DateString())
	fmt.Fprintf(&b, ":POSITION: %s\n", t.Position)
	fmt.Fprintf(&b, ":TYPE: %s\n", t.Type)
	if !t.Value.IsZero() {
		fmt.Fprintf(&b, ":VALUE: %s\n", t.Value.StringFixed(2))
	}
	fmt.Fprintf(&b, ":PL: %s\n", t.PL.StringFixed(2))
	fmt.Fprintf(&b, ":ACCOUNT_VALUE: %s\n", t.AccountValue.StringFixed(2))
	b.WriteString(":END:\n")

	if notes := strings.TrimSpace(t.Notes); notes != "" {
		b.WriteString("\n")
		for _, line := range strings.Split(notes, "\n") {
			fmt.Fprintf(&b, "- %s\n", strings.TrimSpace(line))
		}
	}
	return b.String()
}

// FormatTradesOrg renders the ledger in entry order, numbering trades
// from 1 and separating them with a blank line.
func FormatTradesOrg(l Ledger) string {
	var b strings.Builder
	for i, t := range l {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(FormatTradeOrg(i+1, t))
	}
	return b.String()
}
