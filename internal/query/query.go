package query

import (
	"sort"
	"strconv"
	"strings"

	"github.com/insightdelivered/campus-fund-tracker/internal/models"
)

// CategoryFilter selects which slice of the roster a view starts from.
type CategoryFilter string

const (
	FilterAll      CategoryFilter = "all"
	FilterCurrent  CategoryFilter = "current"
	FilterPrevious CategoryFilter = "previous"
	FilterPaid     CategoryFilter = "paid"
	FilterUnpaid   CategoryFilter = "unpaid"
)

// SortDirection orders a sorted view.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// PageSizeAll requests a single page holding every matched record.
const PageSizeAll = 0

// State is the UI query state driving one view computation. It is built
// per request and passed by value; nothing here persists between calls.
type State struct {
	Search   string
	Filter   CategoryFilter
	SortKey  string
	SortDir  SortDirection
	Page     int
	PageSize int
}

// Page is one computed view over the roster.
type Page struct {
	Items        []models.StudentRecord `json:"items"`
	TotalMatched int                    `json:"totalMatched"`
	TotalPages   int                    `json:"totalPages"`
	Page         int                    `json:"page"`
}

// View derives the visible page. The pipeline order is fixed: category
// filter, then search, then sort, then pagination. Every call starts from
// the full roster passed in — never from a previous result — so changing
// the filter after a search cannot lose records.
func View(records []models.StudentRecord, st State) Page {
	matched := applyFilter(records, st.Filter)
	matched = applySearch(matched, st.Search)
	sortRecords(matched, st.SortKey, st.SortDir)
	return paginate(matched, st.Page, st.PageSize)
}

func applyFilter(records []models.StudentRecord, filter CategoryFilter) []models.StudentRecord {
	matched := make([]models.StudentRecord, 0, len(records))
	for _, rec := range records {
		if matchesFilter(rec, filter) {
			matched = append(matched, rec)
		}
	}
	return matched
}

func matchesFilter(rec models.StudentRecord, filter CategoryFilter) bool {
	switch filter {
	case FilterCurrent:
		return rec.CurrentMonth > 0
	case FilterPrevious:
		return rec.PreviousMonth > 0
	case FilterPaid:
		return rec.Status == models.StatusPaid
	case FilterUnpaid:
		return rec.Status == models.StatusUnpaid
	default:
		return true
	}
}

// applySearch narrows by case-insensitive substring match against the
// name, id and roll-number fields.
func applySearch(records []models.StudentRecord, search string) []models.StudentRecord {
	term := strings.ToLower(strings.TrimSpace(search))
	if term == "" {
		return records
	}

	matched := make([]models.StudentRecord, 0, len(records))
	for _, rec := range records {
		if strings.Contains(strings.ToLower(rec.Name), term) ||
			strings.Contains(strings.ToLower(rec.ID), term) ||
			strings.Contains(strings.ToLower(rec.RollNo), term) {
			matched = append(matched, rec)
		}
	}
	return matched
}

// numericSortKeys are compared as numbers; every other key compares as
// case-insensitive text. Ties keep insertion order.
var numericSortKeys = map[string]bool{
	"id":            true,
	"currentMonth":  true,
	"previousMonth": true,
	"totalPaid":     true,
}

func sortRecords(records []models.StudentRecord, key string, dir SortDirection) {
	if key == "" {
		return
	}
	asc := dir != SortDesc

	if numericSortKeys[key] {
		sort.SliceStable(records, func(i, j int) bool {
			a, b := numericValue(records[i], key), numericValue(records[j], key)
			if asc {
				return a < b
			}
			return b < a
		})
		return
	}

	sort.SliceStable(records, func(i, j int) bool {
		a := strings.ToLower(textValue(records[i], key))
		b := strings.ToLower(textValue(records[j], key))
		if asc {
			return a < b
		}
		return b < a
	})
}

func numericValue(rec models.StudentRecord, key string) float64 {
	switch key {
	case "id":
		v, err := strconv.ParseFloat(strings.TrimSpace(rec.ID), 64)
		if err != nil {
			return 0
		}
		return v
	case "currentMonth":
		return rec.CurrentMonth
	case "previousMonth":
		return rec.PreviousMonth
	case "totalPaid":
		return rec.TotalPaid
	}
	return 0
}

func textValue(rec models.StudentRecord, key string) string {
	switch key {
	case "name":
		return rec.Name
	case "rollno":
		return rec.RollNo
	case "lastPayment":
		return rec.LastPayment
	case "status":
		return string(rec.Status)
	case "phone":
		return rec.Phone
	case "email":
		return rec.Email
	}
	// Passthrough sheet columns sort by their raw cell text.
	return rec.Fields[key]
}

func paginate(matched []models.StudentRecord, page, size int) Page {
	total := len(matched)

	if size <= PageSizeAll {
		totalPages := 0
		if total > 0 {
			totalPages = 1
		}
		return Page{Items: matched, TotalMatched: total, TotalPages: totalPages, Page: 1}
	}

	totalPages := (total + size - 1) / size
	if page < 1 {
		page = 1
	}
	// A shrinking result set can leave the requested page out of range;
	// pull it back to the last valid page instead of returning nothing.
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := (page - 1) * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page{Items: matched[start:end], TotalMatched: total, TotalPages: totalPages, Page: page}
}
