package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/insightdelivered/campus-fund-tracker/internal/config"
	"github.com/insightdelivered/campus-fund-tracker/internal/export"
	"github.com/insightdelivered/campus-fund-tracker/internal/models"
	"github.com/insightdelivered/campus-fund-tracker/internal/normalize"
	"github.com/insightdelivered/campus-fund-tracker/internal/query"
	"github.com/insightdelivered/campus-fund-tracker/internal/roster"
	"github.com/insightdelivered/campus-fund-tracker/internal/sample"
	"github.com/insightdelivered/campus-fund-tracker/internal/sheet"
)

var fetchOutput string

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch the sheet once and print a roster summary",
	RunE:  runFetch,
}

func init() {
	fetchCmd.Flags().StringVarP(&fetchOutput, "output", "o", "", "write the normalized roster to a CSV file")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	now := time.Now()
	fetcher := sheet.NewHTTPFetcher(cfg.SheetURL, cfg.FetchTimeout())

	ctx, cancel := context.WithTimeout(context.Background(), cfg.FetchTimeout())
	defer cancel()

	var records []models.StudentRecord
	source := roster.SourceSheet

	text, err := fetcher.Fetch(ctx)
	if err == nil {
		var s *sheet.Sheet
		if s, err = sheet.Decode(text); err == nil {
			records = normalize.Roster(s, now)
		}
	}
	if err != nil {
		if !cfg.SampleFallback {
			return err
		}
		fmt.Printf("Fetch failed (%v); using sample data.\n", err)
		records = sample.Roster(now, cfg.SampleSize, now.UnixNano())
		source = roster.SourceSample
	}

	stats := query.Summarize(records)
	fmt.Printf("Source: %s\n", source)
	fmt.Printf("Students: %d\n", stats.TotalStudents)
	fmt.Printf("Paid this month: %d (₹%.2f)\n", stats.CurrentPaid, stats.TotalCurrentMonth)
	fmt.Printf("Unpaid this month: %d\n", stats.CurrentUnpaid)
	fmt.Printf("Unpaid last month: %d\n", stats.PreviousUnpaid)
	fmt.Printf("Balance change: ₹%.2f\n", stats.BalanceChange)

	if fetchOutput != "" {
		w := &export.Writer{}
		if err := w.WriteToFile(fetchOutput, roster.LoadInfo{}, records); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", fetchOutput)
	}

	return nil
}
