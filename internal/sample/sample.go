// Package sample generates a synthetic roster for when the sheet cannot
// be fetched or decoded: the listing degrades to demo data instead of
// failing.
package sample

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/insightdelivered/campus-fund-tracker/internal/models"
	"github.com/insightdelivered/campus-fund-tracker/internal/normalize"
	"github.com/insightdelivered/campus-fund-tracker/internal/sheet"
)

// DefaultCount matches the original demo roster size.
const DefaultCount = 70

// Roster builds count synthetic records as of the given date. Rows go
// through the real normalizer so derived fields (total, status, last
// payment) follow the one shared rule set. The rng is seeded so tests get
// a stable roster.
func Roster(asOf time.Time, count int, seed int64) []models.StudentRecord {
	if count <= 0 {
		count = DefaultCount
	}
	rng := rand.New(rand.NewSource(seed))

	curName := normalize.MonthName(asOf)
	prevName := normalize.PreviousMonthName(asOf)

	records := make([]models.StudentRecord, 0, count)
	for i := 1; i <= count; i++ {
		// 70% chance of a current-month payment, 50% for the previous.
		var cur, prev float64
		if rng.Float64() > 0.3 {
			cur = 1000
		}
		if rng.Float64() > 0.5 {
			prev = 1000
		}

		row := sheet.RawRow{
			"ID":     strconv.Itoa(i),
			"Name":   fmt.Sprintf("Student %d", i),
			"RollNo": fmt.Sprintf("2024%03d", i),
			"Phone":  fmt.Sprintf("+91%010d", 1000000000+rng.Int63n(9000000000)),
			"Email":  fmt.Sprintf("student%d@college.edu", i),
			curName:  formatAmount(cur),
			prevName: formatAmount(prev),
		}
		records = append(records, normalize.Record(row, asOf))
	}

	return records
}

func formatAmount(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
