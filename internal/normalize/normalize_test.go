package normalize

import (
	"testing"
)

func TestPostalCode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase with space", "k1a 0b1", "K1A0B1"},
		{"hyphenated", "K1A-0B1", "K1A0B1"},
		{"already normalized", "M5V2T6", "M5V2T6"},
		{"empty", "", ""},
		{"punctuation only", ".-  '", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PostalCode(tt.input); got != tt.want {
				t.Errorf("PostalCode(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"collapses whitespace", "  main    st  ", "MAIN ST"},
		{"uppercases", "Main Street", "MAIN STREET"},
		{"empty", "", ""},
		{"tabs and newlines", "main\t\nst", "MAIN ST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Value(tt.input); got != tt.want {
				t.Errorf("Value(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSimplify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"diacritics stripped", "Montréal", "MONTREAL"},
		{"apostrophe removed", "ST. JOHN'S", "ST JOHNS"},
		{"hyphen to space", "TROIS-RIVIERES", "TROIS RIVIERES"},
		{"ordinal word", "first", "1ST"},
		{"hyphenated compound ordinal", "Twenty-First", "21ST"},
		{"spelled twentieth", "TWENTIETH", "20TH"},
		{"numeral form untouched", "21ST", "21ST"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Simplify(tt.input); got != tt.want {
				t.Errorf("Simplify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// Simplify must be idempotent so simplified register values and simplified
// search values can be compared directly.
func TestSimplifyIdempotent(t *testing.T) {
	inputs := []string{
		"Montréal",
		"ST. JOHN'S",
		"first",
		"TWENTY-FIRST",
		"123 Main St.",
		"Côte-des-Neiges",
		"",
		"AVENUE   P",
		"GRANDE - LIGNE",
	}

	for _, input := range inputs {
		once := Simplify(input)
		twice := Simplify(once)
		if once != twice {
			t.Errorf("Simplify not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

func TestNumberToOrdinal(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "1st"},
		{2, "2nd"},
		{3, "3rd"},
		{4, "4th"},
		{11, "11th"},
		{12, "12th"},
		{13, "13th"},
		{20, "20th"},
		{21, "21st"},
		{22, "22nd"},
		{101, "101st"},
		{111, "111th"},
	}

	for _, tt := range tests {
		if got := NumberToOrdinal(tt.n); got != tt.want {
			t.Errorf("NumberToOrdinal(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestAbbreviationTables(t *testing.T) {
	if got := StreetType("STREET"); got != "ST" {
		t.Errorf("StreetType(STREET) = %q, want ST", got)
	}
	if got := StreetType("GREENWAY"); got != "GREENWAY" {
		t.Errorf("StreetType passes unknown values through, got %q", got)
	}
	if got := StreetDir("NORTHEAST"); got != "NE" {
		t.Errorf("StreetDir(NORTHEAST) = %q, want NE", got)
	}
	if got := StreetDir("NORDOUEST"); got != "NO" {
		t.Errorf("StreetDir(NORDOUEST) = %q, want NO", got)
	}
}
