package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// cfgFile is the path to the configuration file; overridable via --config.
var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "campusfund",
	Short: "Campus fund payment tracker backed by a published spreadsheet",
	Long: `Campus Fund Tracker serves a searchable, sortable, paginated view of
per-student monthly payment records. The published spreadsheet (CSV
export) is the only data source: each load fetches it, normalizes the
rows into student payment records and swaps them in wholesale.

Commands:
  campusfund serve    Run the dashboard API server
  campusfund fetch    Fetch the sheet once and print a roster summary`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command; called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "path to the configuration file")
}
