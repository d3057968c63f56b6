package query

import "github.com/insightdelivered/campus-fund-tracker/internal/models"

// Stats are the dashboard summary counters.
type Stats struct {
	TotalStudents      int     `json:"totalStudents"`
	CurrentPaid        int     `json:"currentPaid"`
	CurrentUnpaid      int     `json:"currentUnpaid"`
	PreviousUnpaid     int     `json:"previousUnpaid"`
	TotalCurrentMonth  float64 `json:"totalCurrentMonth"`
	TotalPreviousMonth float64 `json:"totalPreviousMonth"`
	BalanceChange      float64 `json:"balanceChange"`
}

// Summarize derives the headline counters over a roster.
func Summarize(records []models.StudentRecord) Stats {
	s := Stats{TotalStudents: len(records)}

	for _, rec := range records {
		if rec.CurrentMonth > 0 {
			s.CurrentPaid++
			s.TotalCurrentMonth += rec.CurrentMonth
		} else {
			s.CurrentUnpaid++
		}

		if rec.PreviousMonth > 0 {
			s.TotalPreviousMonth += rec.PreviousMonth
		} else {
			s.PreviousUnpaid++
		}
	}

	s.BalanceChange = s.TotalCurrentMonth - s.TotalPreviousMonth
	return s
}
