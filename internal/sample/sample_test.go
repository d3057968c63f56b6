package sample

import (
	"testing"
	"time"

	"github.com/insightdelivered/campus-fund-tracker/internal/models"
)

var asOf = time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC)

func TestRosterDeterministicForSeed(t *testing.T) {
	a := Roster(asOf, 20, 42)
	b := Roster(asOf, 20, 42)

	if len(a) != 20 || len(b) != 20 {
		t.Fatalf("lengths = %d/%d, want 20", len(a), len(b))
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].CurrentMonth != b[i].CurrentMonth || a[i].Status != b[i].Status {
			t.Fatalf("record %d differs between identical seeds: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestRosterDefaultCount(t *testing.T) {
	records := Roster(asOf, 0, 1)
	if len(records) != DefaultCount {
		t.Errorf("len = %d, want %d", len(records), DefaultCount)
	}
}

func TestRosterRecordsAreNormalized(t *testing.T) {
	for _, rec := range Roster(asOf, 40, 7) {
		want := models.StatusFor(rec.CurrentMonth, rec.PreviousMonth)
		if rec.Status != want {
			t.Errorf("record %s: status %q inconsistent with amounts %v/%v",
				rec.ID, rec.Status, rec.CurrentMonth, rec.PreviousMonth)
		}
		if rec.CurrentMonth > 0 && rec.LastPayment != "July 2024" {
			t.Errorf("record %s: LastPayment = %q, want %q", rec.ID, rec.LastPayment, "July 2024")
		}
		if rec.Name == "" || rec.RollNo == "" || rec.Email == "" {
			t.Errorf("record %s missing identity fields: %+v", rec.ID, rec)
		}
	}
}

func TestRosterSequentialIDs(t *testing.T) {
	records := Roster(asOf, 3, 1)
	for i, want := range []string{"1", "2", "3"} {
		if records[i].ID != want {
			t.Errorf("records[%d].ID = %q, want %q", i, records[i].ID, want)
		}
	}
}
