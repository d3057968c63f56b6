package roster

import "strings"

// LooseMatch reports whether a stored id refers to the same student as the
// requested one. The sheet and the login flow disagree about zero padding
// ("0007" vs "7"), so equality is checked exact, zero-padded, as a raw
// suffix, and with leading zeros stripped from both sides.
func LooseMatch(stored, requested string) bool {
	stored = strings.TrimSpace(stored)
	requested = strings.TrimSpace(requested)
	if stored == "" || requested == "" {
		return false
	}

	if stored == requested {
		return true
	}
	if stored == padID(requested) {
		return true
	}
	if strings.HasSuffix(stored, requested) {
		return true
	}
	return stripZeros(stored) == stripZeros(requested)
}

func stripZeros(s string) string {
	t := strings.TrimLeft(s, "0")
	if t == "" {
		return "0"
	}
	return t
}

// padID left-pads an id with zeros to the sheet's four-digit convention.
func padID(s string) string {
	for len(s) < 4 {
		s = "0" + s
	}
	return s
}
