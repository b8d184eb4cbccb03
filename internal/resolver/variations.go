package resolver

import (
	"database/sql"
	"regexp"
	"strconv"
	"strings"

	"github.com/nar-resolver/internal/nar"
	"github.com/nar-resolver/internal/normalize"
)

var reOrdinalName = regexp.MustCompile(`^\d+(ST|ND|RD|TH)$`)

// streetVariations builds the candidate strings for a set of street triples:
// the plausible orderings and omissions of name, type and direction, each
// component independently simplified. Numeric names are additionally tried in
// ordinal form and ordinal names in plain numeral form, since the register and
// the tagged input do not agree on which spelling a numbered street uses.
func streetVariations(rows []nar.StreetTriple) []Option[nar.StreetTriple] {
	var options []Option[nar.StreetTriple]

	for _, row := range rows {
		if !row.Name.Valid && !row.Type.Valid && !row.Dir.Valid {
			continue
		}

		name := row.Name
		typ := row.Type
		dir := row.Dir

		// Saskatoon has a run of "Avenue X" street names with no street
		// type; treat the embedded word as the type.
		if strings.HasPrefix(normalize.Simplify(name.String), "AVENUE") && !typ.Valid {
			typ = sql.NullString{String: "AVE", Valid: true}
			name = sql.NullString{
				String: strings.TrimSpace(strings.ReplaceAll(name.String, "AVENUE", "")),
				Valid:  true,
			}
		}

		// A purely numeric name could be ordinal in some contexts.
		if name.Valid && isDigits(name.String) {
			n, err := strconv.Atoi(name.String)
			if err == nil {
				ordinal := sql.NullString{
					String: strings.ToUpper(normalize.NumberToOrdinal(n)),
					Valid:  true,
				}
				options = appendOrderings(options, row, ordinal, typ, dir)
			}
		}

		// An ordinal name could be plain numeric in some contexts.
		if name.Valid {
			if simple := normalize.Simplify(name.String); reOrdinalName.MatchString(simple) {
				numeral := sql.NullString{String: simple[:len(simple)-2], Valid: true}
				options = appendOrderings(options, row, numeral, typ, dir)
			}
		}

		options = appendOrderings(options, row, name, typ, dir)
	}

	return options
}

// appendOrderings emits the six orderings of a street name, type and
// direction. Absent components are omitted rather than leaving gaps.
func appendOrderings(options []Option[nar.StreetTriple], row nar.StreetTriple, name, typ, dir sql.NullString) []Option[nar.StreetTriple] {
	orderings := [][]sql.NullString{
		{name, dir},
		{name, typ, dir},
		{typ, name, dir},
		{typ, name},
		{name, typ},
		{name},
	}
	for _, parts := range orderings {
		options = append(options, Option[nar.StreetTriple]{
			Candidate: joinSimplified(parts),
			Payload:   row,
		})
	}
	return options
}

// civicNoVariations builds the candidate strings for the civic-number stage:
// apartment label plus civic number plus suffix, with the suffix both glued
// onto the number ("123A") and spaced ("123 A") when present.
func civicNoVariations(rows []nar.DetailRow) []Option[nar.DetailRow] {
	var options []Option[nar.DetailRow]

	for _, row := range rows {
		if row.CivicNo.Valid && row.CivicNo.String != "" &&
			row.CivicNoSuffix.Valid && row.CivicNoSuffix.String != "" {
			glued := sql.NullString{String: row.CivicNo.String + row.CivicNoSuffix.String, Valid: true}
			options = append(options, Option[nar.DetailRow]{
				Candidate: joinSimplified([]sql.NullString{row.AptNoLabel, glued}),
				Payload:   row,
			})
		}
		options = append(options, Option[nar.DetailRow]{
			Candidate: joinSimplified([]sql.NullString{row.AptNoLabel, row.CivicNo, row.CivicNoSuffix}),
			Payload:   row,
		})
	}

	return options
}

// joinSimplified simplifies each present component and joins the non-empty
// results with single spaces.
func joinSimplified(parts []sql.NullString) string {
	var simplified []string
	for _, part := range parts {
		if !part.Valid || part.String == "" {
			continue
		}
		if s := normalize.Simplify(part.String); s != "" {
			simplified = append(simplified, s)
		}
	}
	return strings.Join(simplified, " ")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
