// Package format renders register records as human-readable civic or mailing
// addresses.
package format

import (
	"context"
	"fmt"
	"strings"

	"github.com/nar-resolver/internal/nar"
)

// Store is the lookup surface needed to fetch a record or its location rows.
type Store interface {
	Record(ctx context.Context, guid string) (*nar.AddressRecord, error)
	Location(ctx context.Context, guid string) ([]*nar.AddressRecord, error)
}

// Base fetches the record behind a guid. A record guid returns its row
// directly; a location guid returns the composite of its rows, with fields
// that differ across units blanked so only the civic-level attributes remain.
// Returns nil when the guid is unknown.
func Base(ctx context.Context, st Store, guid string) (*nar.AddressRecord, error) {
	record, err := st.Record(ctx, guid)
	if err != nil {
		return nil, err
	}
	if record != nil {
		return record, nil
	}

	records, err := st.Location(ctx, guid)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return Composite(records), nil
}

// Composite merges the rows of one location into a single record: any field
// whose value differs between units is cleared, so the result describes only
// what the whole location shares.
func Composite(records []*nar.AddressRecord) *nar.AddressRecord {
	merged := *records[0]
	for _, rec := range records[1:] {
		mergeField(&merged.AddrGUID, rec.AddrGUID)
		mergeField(&merged.AptNoLabel, rec.AptNoLabel)
		mergeField(&merged.CivicNo, rec.CivicNo)
		mergeField(&merged.CivicNoSuffix, rec.CivicNoSuffix)
		mergeField(&merged.BuildingCivicAddr, rec.BuildingCivicAddr)
		mergeField(&merged.OfficialStreetName, rec.OfficialStreetName)
		mergeField(&merged.OfficialStreetType, rec.OfficialStreetType)
		mergeField(&merged.OfficialStreetDir, rec.OfficialStreetDir)
		mergeField(&merged.MailStreetName, rec.MailStreetName)
		mergeField(&merged.MailStreetType, rec.MailStreetType)
		mergeField(&merged.MailStreetDir, rec.MailStreetDir)
		mergeField(&merged.MailMunName, rec.MailMunName)
		mergeField(&merged.MailProvAbvn, rec.MailProvAbvn)
		mergeField(&merged.MailPostalCode, rec.MailPostalCode)
		mergeField(&merged.ProvCode, rec.ProvCode)
		mergeField(&merged.BgX, rec.BgX)
		mergeField(&merged.BgY, rec.BgY)
	}
	return &merged
}

func mergeField[T comparable](dst **T, other *T) {
	if *dst == nil {
		return
	}
	if other == nil || **dst != *other {
		*dst = nil
	}
}

// Civic renders the official civic address of a record. oneLine joins the
// address lines with commas instead of newlines.
func Civic(address *nar.AddressRecord, oneLine bool) string {
	civicNo := civicNumber(address)

	provAbbr := ""
	if address.ProvCode != nil {
		provAbbr = nar.ProvinceAbbreviation(*address.ProvCode)
	}

	typeBefore := streetTypeBefore(address.OfficialStreetType, provAbbr)

	line1Parts := []string{civicNo}
	if typeBefore {
		line1Parts = append(line1Parts, deref(address.OfficialStreetType), deref(address.OfficialStreetName))
	} else {
		line1Parts = append(line1Parts, deref(address.OfficialStreetName), deref(address.OfficialStreetType))
	}
	line1Parts = append(line1Parts, deref(address.OfficialStreetDir))

	lines := []string{
		joinNonEmpty(line1Parts, " "),
		joinNonEmpty([]string{deref(address.MailMunName), provAbbr}, " "),
		postalLine(address.MailPostalCode),
	}

	return joinLines(lines, oneLine)
}

// Mailing renders the mailing address of a record, including the building
// line when the register carries one.
func Mailing(address *nar.AddressRecord, oneLine bool) string {
	civicNo := civicNumber(address)
	provAbbr := deref(address.MailProvAbvn)

	typeBefore := streetTypeBefore(address.MailStreetType, provAbbr)

	var streetParts []string
	if typeBefore {
		streetParts = []string{deref(address.MailStreetType), deref(address.MailStreetName)}
	} else {
		streetParts = []string{deref(address.MailStreetName), deref(address.MailStreetType)}
	}
	streetParts = append(streetParts, deref(address.MailStreetDir))

	line1 := joinNonEmpty(streetParts, " ")
	if line1 != "" {
		line1 = strings.TrimSpace(civicNo + " " + line1)
	}

	lines := []string{
		deref(address.BuildingCivicAddr),
		line1,
		joinNonEmpty([]string{deref(address.MailMunName), provAbbr}, " "),
		postalLine(address.MailPostalCode),
	}

	return joinLines(lines, oneLine)
}

// civicNumber renders "apt-civic suffix" with the apartment label hyphenated
// onto the civic number when both exist.
func civicNumber(address *nar.AddressRecord) string {
	aptNo := deref(address.AptNoLabel)
	civicNo := joinNonEmpty([]string{deref(address.CivicNo), deref(address.CivicNoSuffix)}, " ")

	switch {
	case aptNo != "" && civicNo != "":
		return fmt.Sprintf("%s-%s", aptNo, civicNo)
	case aptNo != "":
		return aptNo
	default:
		return civicNo
	}
}

// streetTypeBefore reports whether the street type precedes the name, as it
// does for French types and anywhere in Quebec.
func streetTypeBefore(streetType *string, provAbbr string) bool {
	st := deref(streetType)
	return st == "RUE" || st == "AV" || provAbbr == "QC"
}

// postalLine splits a stored postal code into its two halves ("K1A 0B1").
func postalLine(postalCode *string) string {
	pc := deref(postalCode)
	if pc == "" {
		return ""
	}
	if len(pc) <= 3 {
		return pc
	}
	return pc[:3] + " " + pc[3:]
}

func joinLines(lines []string, oneLine bool) string {
	separator := "\n"
	if oneLine {
		separator = ", "
	}
	return strings.ToUpper(joinNonEmpty(lines, separator))
}

func joinNonEmpty(parts []string, separator string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			nonEmpty = append(nonEmpty, part)
		}
	}
	return strings.Join(nonEmpty, separator)
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
