package cli

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradetracker/ledger"
	"github.com/rustyeddy/tradetracker/report"
	"github.com/rustyeddy/tradetracker/tracker"
)

func newAddCmd(rc *RootConfig) *cobra.Command {
	var in ledger.Input

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a trade to the end of the ledger",
		Long: `Add a closed trade. Its account value is the previous trade's account
value plus its profit/loss.

Example:
  tracker add --date 03/15/24 --position TQQQ --type Stock --pl 250.50 --notes "gap fill"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := rc.open()
			if err != nil {
				return err
			}
			defer s.Close()

			if _, err := s.tracker.AddTrade(cmd.Context(), in); err != nil {
				return fmt.Errorf("add trade: %w", err)
			}

			d, err := s.tracker.Dashboard(cmd.Context())
			if err != nil {
				return fmt.Errorf("dashboard: %w", err)
			}
			opts := s.reportOptions()
			opts.LastSubmissionSucceeded = true
			var buf bytes.Buffer
			if err := report.RenderDashboard(&buf, d, opts); err != nil {
				return err
			}
			return rc.render(cmd, buf.String())
		},
	}

	cmd.Flags().StringVar(&in.Date, "date", ledger.FormatDate(time.Now()), "Trade date (MM/DD/YY)")
	cmd.Flags().StringVar(&in.Position, "position", "", "Ticker or position name")
	cmd.Flags().StringVar(&in.Type, "type", string(ledger.Stock), "Stock|Option|Crypto|ETF|Other")
	cmd.Flags().StringVar(&in.Value, "value", "", "Opening value (first trade only)")
	cmd.Flags().StringVar(&in.PL, "pl", "", "Profit (positive) or loss (negative)")
	cmd.Flags().StringVar(&in.Notes, "notes", "", "Free-form notes")

	return cmd
}

func newListCmd(rc *RootConfig) *cobra.Command {
	var page, size int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List trades in entry order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := rc.open()
			if err != nil {
				return err
			}
			defer s.Close()

			l, err := s.tracker.Ledger(cmd.Context())
			if err != nil {
				return fmt.Errorf("load trades: %w", err)
			}

			var buf bytes.Buffer
			if err := report.RenderTrades(&buf, l, report.Paginate(len(l), page, size), s.reportOptions()); err != nil {
				return err
			}
			return rc.render(cmd, buf.String())
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&size, "size", 20, "Trades per page (0 for all)")

	return cmd
}

func newEditCmd(rc *RootConfig) *cobra.Command {
	var date, position, typ, value, pl, notes string

	cmd := &cobra.Command{
		Use:   "edit <row>",
		Short: "Change fields of one trade",
		Long: `Change fields of the trade at the given row (1-based, as shown by
"tracker list"). Every account value is recomputed afterwards.

Example:
  tracker edit 3 --pl=-120 --notes "stopped out"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, err := parseRow(args[0])
			if err != nil {
				return err
			}

			var e tracker.Edit
			set := func(name string, v *string, dst **string) {
				if cmd.Flags().Changed(name) {
					*dst = v
				}
			}
			set("date", &date, &e.Date)
			set("position", &position, &e.Position)
			set("type", &typ, &e.Type)
			set("value", &value, &e.Value)
			set("pl", &pl, &e.PL)
			set("notes", &notes, &e.Notes)
			if e == (tracker.Edit{}) {
				return fmt.Errorf("nothing to change: pass at least one field flag")
			}

			s, err := rc.open()
			if err != nil {
				return err
			}
			defer s.Close()

			if _, err := s.tracker.Edit(cmd.Context(), row-1, e); err != nil {
				return fmt.Errorf("edit row %d: %w", row, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Updated trade %d\n", row)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Trade date (MM/DD/YY)")
	cmd.Flags().StringVar(&position, "position", "", "Ticker or position name")
	cmd.Flags().StringVar(&typ, "type", "", "Stock|Option|Crypto|ETF|Other")
	cmd.Flags().StringVar(&value, "value", "", "Opening value (first trade, Value column only)")
	cmd.Flags().StringVar(&pl, "pl", "", "Profit/loss")
	cmd.Flags().StringVar(&notes, "notes", "", "Notes")

	return cmd
}

func newDeleteCmd(rc *RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <row>...",
		Short: "Delete trades by row number",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx := make([]int, 0, len(args))
			for _, a := range args {
				row, err := parseRow(a)
				if err != nil {
					return err
				}
				idx = append(idx, row-1)
			}

			s, err := rc.open()
			if err != nil {
				return err
			}
			defer s.Close()

			l, err := s.tracker.Delete(cmd.Context(), idx...)
			if err != nil {
				return fmt.Errorf("delete: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted %d trade(s), %d left\n", len(args), len(l))
			return nil
		},
	}
}

func newClearCmd(rc *RootConfig) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every trade",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear the ledger without --yes")
			}

			s, err := rc.open()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.tracker.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clear: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ All trades cleared")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm removing every trade")

	return cmd
}

func newRecomputeCmd(rc *RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "recompute",
		Short: "Rewrite every account value from the profit/loss column",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := rc.open()
			if err != nil {
				return err
			}
			defer s.Close()

			l, err := s.tracker.Recompute(cmd.Context())
			if err != nil {
				return fmt.Errorf("recompute: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Recomputed %d trade(s)\n", len(l))
			return nil
		},
	}
}

func parseRow(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("bad row %q: rows are numbered from 1", s)
	}
	return n, nil
}
