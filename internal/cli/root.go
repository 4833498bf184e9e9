package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

// RootConfig holds the global flags shared by every subcommand.
type RootConfig struct {
	ConfigPath string
	StoreType  string
	StorePath  string
	LogLevel   string
	Plain      bool
}

func NewRootCmd() *cobra.Command {
	rc := &RootConfig{}

	cmd := &cobra.Command{
		Use:   "tracker",
		Short: "Trade tracker: log trades and follow your account value",
		Long: `Tracker records closed trades in a ledger and keeps a running account
value: each trade's account value is the previous one plus its profit/loss.

The ledger lives in a CSV file (default ./trades_data.csv) or a SQLite
database. Settings come from an optional config file, a .env file and
TRACKER_* environment variables; flags win over all of them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global / persistent flags
	cmd.PersistentFlags().StringVar(&rc.ConfigPath, "config", "", "Path to config file (optional)")
	cmd.PersistentFlags().StringVar(&rc.StoreType, "store", "", "Ledger store: csv|sqlite|memory")
	cmd.PersistentFlags().StringVar(&rc.StorePath, "path", "", "Ledger file or database path")
	cmd.PersistentFlags().StringVar(&rc.LogLevel, "log-level", "", "Log level: debug|info|warn|error")
	cmd.PersistentFlags().BoolVar(&rc.Plain, "plain", false, "Print raw Markdown instead of styled output")

	cmd.AddCommand(
		newAddCmd(rc),
		newListCmd(rc),
		newEditCmd(rc),
		newDeleteCmd(rc),
		newClearCmd(rc),
		newRecomputeCmd(rc),
		newSummaryCmd(rc),
		newHistoryCmd(rc),
		newExportCmd(rc),
		newConfigCmd(),
	)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "tracker version %s\n", version)
		},
	})

	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
