package normalize

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/insightdelivered/campus-fund-tracker/internal/models"
	"github.com/insightdelivered/campus-fund-tracker/internal/sheet"
)

// monthNames in calendar order; these are also the canonical column
// spellings the sheet uses for per-month payment amounts.
var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthName returns the sheet column name for t's calendar month.
func MonthName(t time.Time) string {
	return monthNames[int(t.Month())-1]
}

// PreviousMonthName returns the column name for the month before t's,
// wrapping January back to December.
func PreviousMonthName(t time.Time) string {
	return monthNames[(int(t.Month())+10)%12]
}

// ID resolves the identifier column for a raw row. The login and detail
// flows use this before paying for a full normalization.
func ID(row sheet.RawRow) string {
	return firstNonEmpty(row, "ID", "id", "Student ID")
}

// Record maps one raw sheet row onto the canonical student record.
//
// asOf fixes which calendar months count as "current" and "previous".
// Callers pass the wall clock; tests pass a fixed date. Given the same row
// and asOf, the result is always identical.
func Record(row sheet.RawRow, asOf time.Time) models.StudentRecord {
	rec := models.StudentRecord{
		ID:     ID(row),
		Name:   firstNonEmpty(row, "Name", "name", "Student Name"),
		RollNo: firstNonEmpty(row, "RollNo", "rollno", "Roll No", "Roll Number"),
		Phone:  firstNonEmpty(row, "Phone", "phone"),
		Email:  firstNonEmpty(row, "Email", "email"),
	}

	curName := MonthName(asOf)
	prevName := PreviousMonthName(asOf)

	rec.CurrentMonth = parseAmount(firstNonEmpty(row, curName, "Current Month", "currentMonth"))
	rec.PreviousMonth = parseAmount(firstNonEmpty(row, prevName, "Previous Month", "previousMonth"))

	rec.TotalPaid = parseAmount(firstNonEmpty(row, "Total Paid", "totalPaid"))
	if rec.TotalPaid == 0 {
		rec.TotalPaid = totalFromMonths(row, rec, curName, prevName)
	}

	rec.LastPayment = lastPaymentLabel(row, asOf)
	if rec.LastPayment == "" {
		rec.LastPayment = firstNonEmpty(row, "Last Payment", "lastPayment")
	}
	if rec.LastPayment == "" {
		rec.LastPayment = "N/A"
	}

	rec.Status = models.StatusFor(rec.CurrentMonth, rec.PreviousMonth)

	rec.Fields = make(map[string]string, len(row))
	for k, v := range row {
		rec.Fields[k] = v
	}

	return rec
}

// Roster normalizes every row of a decoded sheet and returns the records
// sorted ascending by numeric id, the initial order the listing shows.
func Roster(s *sheet.Sheet, asOf time.Time) []models.StudentRecord {
	records := make([]models.StudentRecord, 0, len(s.Rows))
	for _, row := range s.Rows {
		records = append(records, Record(row, asOf))
	}
	sort.SliceStable(records, func(i, j int) bool {
		return numericID(records[i].ID) < numericID(records[j].ID)
	})
	return records
}

func numericID(id string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(id), 64)
	if err != nil {
		return 0
	}
	return v
}

// totalFromMonths sums every named month column plus the derived
// current/previous amounts, then backs out the two that were counted twice
// when their named columns were present.
func totalFromMonths(row sheet.RawRow, rec models.StudentRecord, curName, prevName string) float64 {
	var total float64
	for _, m := range monthNames {
		if row[m] != "" {
			total += parseAmount(row[m])
		}
	}

	if rec.CurrentMonth > 0 {
		total += rec.CurrentMonth
	}
	if rec.PreviousMonth > 0 {
		total += rec.PreviousMonth
	}

	if row[curName] != "" && rec.CurrentMonth > 0 {
		total -= rec.CurrentMonth
	}
	if row[prevName] != "" && rec.PreviousMonth > 0 {
		total -= rec.PreviousMonth
	}

	return total
}

// lastPaymentLabel returns "<Month> <year>" for the latest calendar month
// carrying a positive amount, or "" when no month column is positive.
//
// The scan is calendar-ordered: a January payment in a new year still
// ranks below last June's, because the sheet carries no per-month year to
// break the tie.
func lastPaymentLabel(row sheet.RawRow, asOf time.Time) string {
	last := -1
	for i, m := range monthNames {
		if row[m] != "" && parseAmount(row[m]) > 0 {
			last = i
		}
	}
	if last < 0 {
		return ""
	}
	return monthNames[last] + " " + strconv.Itoa(asOf.Year())
}

// parseAmount parses a sheet cell as a non-negative amount. Currency
// symbols and thousands separators are stripped first. Anything that does
// not parse, and any negative value, is 0 — a malformed cell degrades a
// total instead of aborting the load.
func parseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "₹", "")
	s = strings.ReplaceAll(s, "£", "")
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")

	if s == "" {
		return 0
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// firstNonEmpty returns the first non-empty value among the synonym
// columns, in the given order. Later synonyms are never consulted once an
// earlier one has a value.
func firstNonEmpty(row sheet.RawRow, keys ...string) string {
	for _, k := range keys {
		if v := row[k]; v != "" {
			return v
		}
	}
	return ""
}
