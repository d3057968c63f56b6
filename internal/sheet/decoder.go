package sheet

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFormat indicates the fetched text is not a usable sheet export.
var ErrFormat = errors.New("invalid sheet format")

// RawRow maps a header label to the raw cell text for one sheet line.
// Every row carries exactly the header key set of its sheet.
type RawRow map[string]string

// Sheet is a decoded CSV export: the header labels in column order and one
// RawRow per kept data line.
type Sheet struct {
	Headers []string
	Rows    []RawRow
}

// Decode parses the published CSV text. The first line is the header row;
// each later line becomes one RawRow. A data line with fewer fields than
// headers is dropped entirely rather than padded; extra trailing fields
// are accepted and ignored.
func Decode(text string) (*Sheet, error) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) < 2 {
		return nil, fmt.Errorf("%w: need a header line and at least one data line", ErrFormat)
	}

	headers := decodeHeader(lines[0])

	rows := make([]RawRow, 0, len(lines)-1)
	for _, line := range lines[1:] {
		values := scanLine(line)
		if len(values) < len(headers) {
			continue
		}
		row := make(RawRow, len(headers))
		for i, h := range headers {
			row[h] = clean(values[i])
		}
		rows = append(rows, row)
	}

	return &Sheet{Headers: headers, Rows: rows}, nil
}

// decodeHeader splits the header line on commas. Deliberately naive: the
// sheet export never quotes a comma inside a header label.
func decodeHeader(line string) []string {
	parts := strings.Split(line, ",")
	headers := make([]string, len(parts))
	for i, p := range parts {
		headers[i] = clean(p)
	}
	return headers
}

// scanLine splits one data line on commas, honoring double-quoted fields.
// A quote character toggles quoted mode; there is no "" escape — the
// source export never produces one.
func scanLine(line string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false

	for _, c := range line {
		switch {
		case c == '"':
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(c)
		}
	}
	fields = append(fields, cur.String())

	return fields
}

// clean trims whitespace (including a stray \r from CRLF exports) and
// removes any remaining double-quote characters.
func clean(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), `"`, "")
}
