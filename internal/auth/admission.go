package auth

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// DefaultAdmissionPrefix is the campus admission-number prefix; a full
// admission number looks like KEG/PM/2324/F/0001.
const DefaultAdmissionPrefix = "KEG/PM/2324/F"

// ErrBadAdmissionFormat is returned when an input is neither a full
// admission number nor a bare student id.
var ErrBadAdmissionFormat = errors.New("invalid admission number format")

var bareIDPattern = regexp.MustCompile(`^\d{1,4}$`)

// ParseAdmissionNumber extracts the numeric student id from an admission
// number. A bare 1-4 digit id is accepted as shorthand for the full
// <prefix>/<id> form. Leading zeros are stripped so the result matches
// the sheet's unpadded ids.
func ParseAdmissionNumber(input, prefix string) (string, error) {
	input = strings.TrimSpace(input)
	if prefix == "" {
		prefix = DefaultAdmissionPrefix
	}

	if bareIDPattern.MatchString(input) {
		return stripLeadingZeros(input), nil
	}

	rest := strings.TrimPrefix(input, prefix+"/")
	if rest == input || !bareIDPattern.MatchString(rest) {
		return "", ErrBadAdmissionFormat
	}
	return stripLeadingZeros(rest), nil
}

func stripLeadingZeros(digits string) string {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return digits
	}
	return strconv.Itoa(n)
}
