package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/insightdelivered/campus-fund-tracker/internal/models"
	"github.com/insightdelivered/campus-fund-tracker/internal/roster"
)

func testRecords() []models.StudentRecord {
	return []models.StudentRecord{
		{ID: "1", Name: "Asha Verma", RollNo: "2024001", CurrentMonth: 1000, PreviousMonth: 500, TotalPaid: 1500, LastPayment: "July 2024", Status: models.StatusPaid},
		{ID: "2", Name: "Bilal Khan", RollNo: "2024002", LastPayment: "N/A", Status: models.StatusUnpaid},
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	w := &Writer{}
	if err := w.Write(&buf, roster.LoadInfo{}, testRecords()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("re-reading output: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2 records", len(rows))
	}

	if rows[0][0] != "ID" || rows[0][7] != "Status" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][3] != "1000.00" {
		t.Errorf("current month cell = %q, want %q", rows[1][3], "1000.00")
	}
	// Zero amounts export as empty cells.
	if rows[2][3] != "" || rows[2][5] != "" {
		t.Errorf("zero amounts should be empty, got %v", rows[2])
	}
	if rows[2][7] != "unpaid" {
		t.Errorf("status cell = %q, want %q", rows[2][7], "unpaid")
	}
}

func TestWriteIncludeMeta(t *testing.T) {
	info := roster.LoadInfo{
		ID:       "load-1",
		Source:   roster.SourceSheet,
		LoadedAt: time.Date(2024, time.July, 15, 10, 0, 0, 0, time.UTC),
		Count:    2,
	}

	var buf bytes.Buffer
	w := &Writer{IncludeMeta: true}
	if err := w.Write(&buf, info, testRecords()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "# Source,sheet\n") {
		t.Errorf("output should start with the source row, got %q", firstLine(out))
	}
	if !strings.Contains(out, "# Load,load-1") {
		t.Error("output missing the load id row")
	}
	if !strings.Contains(out, "2024-07-15T10:00:00Z") {
		t.Error("output missing the loaded-at row")
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
