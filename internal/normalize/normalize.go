package normalize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

var (
	reNonPostal  = regexp.MustCompile(`[^0-9A-Z]`)
	reWhitespace = regexp.MustCompile(`\s+`)
)

// PostalCode strips every character outside [0-9A-Z] from the uppercased
// input. A valid Canadian postal code normalizes to exactly 6 characters.
func PostalCode(value string) string {
	return reNonPostal.ReplaceAllString(strings.ToUpper(value), "")
}

// Value uppercases, collapses runs of whitespace to a single space and trims.
func Value(value string) string {
	value = strings.ToUpper(value)
	value = reWhitespace.ReplaceAllString(value, " ")
	return strings.TrimSpace(value)
}

// Simplify canonicalizes a string for fuzzy comparison: transliterate to
// ASCII, normalize, drop apostrophes and periods, turn hyphens into spaces,
// and substitute ordinal street-name words with their numeral forms.
// Simplify is idempotent: Simplify(Simplify(s)) == Simplify(s).
func Simplify(value string) string {
	value = unidecode.Unidecode(value)
	value = Value(value)
	value = strings.ReplaceAll(value, "'", "")
	value = strings.ReplaceAll(value, "-", " ")
	value = strings.ReplaceAll(value, ".", "")
	// The substitutions can leave runs of spaces behind.
	value = Value(value)

	if numeral, ok := ordinalAbbreviations[value]; ok {
		value = numeral
	}

	return value
}

// NumberToOrdinal converts an integer to its English ordinal form ("21st").
func NumberToOrdinal(n int) string {
	suffix := "th"
	if n%100 < 10 || n%100 > 20 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

// StreetType maps a spelled-out street type to its abbreviation, passing
// anything unrecognized through unchanged.
func StreetType(value string) string {
	if abbr, ok := StreetTypeAbbreviations[value]; ok {
		return abbr
	}
	return value
}

// StreetDir maps a spelled-out street direction to its abbreviation, passing
// anything unrecognized through unchanged.
func StreetDir(value string) string {
	if abbr, ok := StreetDirAbbreviations[value]; ok {
		return abbr
	}
	return value
}
