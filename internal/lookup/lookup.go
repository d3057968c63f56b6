// Package lookup resolves a single student from raw sheet text.
//
// The detail flow fetches the sheet independently of the roster store and
// only ever needs one record, so rows are matched on their raw id column
// and the matched row alone is normalized.
package lookup

import (
	"time"

	"github.com/insightdelivered/campus-fund-tracker/internal/models"
	"github.com/insightdelivered/campus-fund-tracker/internal/normalize"
	"github.com/insightdelivered/campus-fund-tracker/internal/roster"
	"github.com/insightdelivered/campus-fund-tracker/internal/sheet"
)

// FindByID decodes rawText and returns the first row whose id loosely
// matches the requested one, normalized as of asOf. Returns
// roster.ErrNotFound when no row matches and sheet.ErrFormat (wrapped)
// when the text cannot be decoded.
func FindByID(rawText, id string, asOf time.Time) (models.StudentRecord, error) {
	s, err := sheet.Decode(rawText)
	if err != nil {
		return models.StudentRecord{}, err
	}

	for _, row := range s.Rows {
		if roster.LooseMatch(normalize.ID(row), id) {
			return normalize.Record(row, asOf), nil
		}
	}

	return models.StudentRecord{}, roster.ErrNotFound
}
