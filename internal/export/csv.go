// Package export writes a roster view back out as standard CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/insightdelivered/campus-fund-tracker/internal/models"
	"github.com/insightdelivered/campus-fund-tracker/internal/roster"
)

// Writer writes student records in CSV format.
type Writer struct {
	// IncludeMeta prepends load metadata rows before the column header.
	IncludeMeta bool
}

// WriteToFile writes the records to a CSV file at the given path.
func (w *Writer) WriteToFile(path string, info roster.LoadInfo, records []models.StudentRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, info, records)
}

// Write emits an optional metadata preamble followed by one row per record.
func (w *Writer) Write(out io.Writer, info roster.LoadInfo, records []models.StudentRecord) error {
	writer := csv.NewWriter(out)
	defer writer.Flush()

	if w.IncludeMeta {
		if info.Source != "" {
			writer.Write([]string{"# Source", info.Source})
		}
		if info.ID != "" {
			writer.Write([]string{"# Load", info.ID})
		}
		if !info.LoadedAt.IsZero() {
			writer.Write([]string{"# Loaded At", info.LoadedAt.Format(time.RFC3339)})
		}
	}

	header := []string{"ID", "Name", "Roll No", "Current Month", "Previous Month", "Total Paid", "Last Payment", "Status"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, rec := range records {
		row := []string{
			rec.ID,
			rec.Name,
			rec.RollNo,
			formatAmount(rec.CurrentMonth),
			formatAmount(rec.PreviousMonth),
			formatAmount(rec.TotalPaid),
			rec.LastPayment,
			string(rec.Status),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return writer.Error()
}

func formatAmount(amount float64) string {
	if amount == 0 {
		return ""
	}
	return strconv.FormatFloat(amount, 'f', 2, 64)
}
