package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradetracker/ledger"
	"github.com/rustyeddy/tradetracker/report"
)

func newSummaryCmd(rc *RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:     "summary",
		Aliases: []string{"dashboard"},
		Short:   "Show this month, this year and all-time figures",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := rc.open()
			if err != nil {
				return err
			}
			defer s.Close()

			d, err := s.tracker.Dashboard(cmd.Context())
			if err != nil {
				return fmt.Errorf("dashboard: %w", err)
			}
			var buf bytes.Buffer
			if err := report.RenderDashboard(&buf, d, s.reportOptions()); err != nil {
				return err
			}
			return rc.render(cmd, buf.String())
		},
	}
}

func newHistoryCmd(rc *RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "history [year]",
		Short: "Show month by month results for a year",
		Long: `Show the trade count and profit/loss of every month of a year.
Without a year, the newest year with trades is shown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var year int
			if len(args) == 1 {
				y, err := strconv.Atoi(args[0])
				if err != nil || y < 1 {
					return fmt.Errorf("bad year %q", args[0])
				}
				year = y
			}

			s, err := rc.open()
			if err != nil {
				return err
			}
			defer s.Close()

			h, err := s.tracker.History(cmd.Context(), year)
			if err != nil {
				return fmt.Errorf("history: %w", err)
			}
			var buf bytes.Buffer
			if err := report.RenderHistory(&buf, h, s.reportOptions()); err != nil {
				return err
			}
			return rc.render(cmd, buf.String())
		},
	}
}

func newExportCmd(rc *RootConfig) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the ledger as Org-mode or CSV",
		Long: `Write every trade in entry order.

Formats:
  org - one Org-mode heading per trade with a properties drawer
  csv - the ledger columns, ready to import elsewhere

Examples:
  tracker export --format org > trades.org
  tracker export --format csv --output backup.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "org" && format != "csv" {
				return fmt.Errorf("--format must be org or csv (got %q)", format)
			}

			s, err := rc.open()
			if err != nil {
				return err
			}
			defer s.Close()

			l, err := s.tracker.Ledger(cmd.Context())
			if err != nil {
				return fmt.Errorf("load trades: %w", err)
			}

			w := cmd.OutOrStdout()
			toFile := output != "" && output != "-"
			if toFile {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}

			switch format {
			case "org":
				_, err = io.WriteString(w, ledger.FormatTradesOrg(l))
			case "csv":
				err = report.WriteCSV(w, l, s.store.Schema())
			}
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}
			if toFile {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d trade(s) to %s\n", len(l), output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "org", "Export format: org|csv")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")

	return cmd
}
