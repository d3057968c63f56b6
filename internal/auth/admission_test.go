package auth

import (
	"errors"
	"testing"
)

func TestParseAdmissionNumber(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		prefix  string
		want    string
		wantErr bool
	}{
		{"bare id", "7", "", "7", false},
		{"bare id padded", "0007", "", "7", false},
		{"full admission number", "KEG/PM/2324/F/0012", "", "12", false},
		{"full admission number unpadded", "KEG/PM/2324/F/12", "", "12", false},
		{"surrounding whitespace", "  KEG/PM/2324/F/0003  ", "", "3", false},
		{"custom prefix", "ABC/XY/2425/M/0042", "ABC/XY/2425/M", "42", false},
		{"wrong prefix", "XYZ/PM/2324/F/0012", "", "", true},
		{"letters only", "notanumber", "", "", true},
		{"five digits", "12345", "", "", true},
		{"empty", "", "", "", true},
		{"trailing junk", "KEG/PM/2324/F/12x", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAdmissionNumber(tt.input, tt.prefix)
			if tt.wantErr {
				if !errors.Is(err, ErrBadAdmissionFormat) {
					t.Fatalf("ParseAdmissionNumber(%q) error = %v, want ErrBadAdmissionFormat", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAdmissionNumber(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseAdmissionNumber(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
