package format

import (
	"context"
	"testing"

	"github.com/nar-resolver/internal/nar"
)

func sp(s string) *string   { return &s }
func ip(n int) *int         { return &n }
func fp(f float64) *float64 { return &f }

func torontoRecord() *nar.AddressRecord {
	return &nar.AddressRecord{
		AddrGUID:           sp("A1"),
		LocGUID:            "L1",
		CivicNo:            sp("123"),
		OfficialStreetName: sp("MAIN"),
		OfficialStreetType: sp("ST"),
		MailStreetName:     sp("MAIN"),
		MailStreetType:     sp("ST"),
		MailMunName:        sp("TORONTO"),
		MailProvAbvn:       sp("ON"),
		MailPostalCode:     sp("M5V2T6"),
		ProvCode:           ip(35),
	}
}

func TestCivic(t *testing.T) {
	got := Civic(torontoRecord(), false)
	want := "123 MAIN ST\nTORONTO ON\nM5V 2T6"
	if got != want {
		t.Errorf("Civic = %q, want %q", got, want)
	}
}

func TestCivicOneLine(t *testing.T) {
	got := Civic(torontoRecord(), true)
	want := "123 MAIN ST, TORONTO ON, M5V 2T6"
	if got != want {
		t.Errorf("Civic = %q, want %q", got, want)
	}
}

// French street types and Quebec records put the type before the name.
func TestCivicTypeBeforeName(t *testing.T) {
	rec := &nar.AddressRecord{
		CivicNo:            sp("400"),
		OfficialStreetName: sp("SAINT-DENIS"),
		OfficialStreetType: sp("RUE"),
		MailMunName:        sp("MONTREAL"),
		MailPostalCode:     sp("H2J2L7"),
		ProvCode:           ip(24),
	}

	got := Civic(rec, false)
	want := "400 RUE SAINT-DENIS\nMONTREAL QC\nH2J 2L7"
	if got != want {
		t.Errorf("Civic = %q, want %q", got, want)
	}
}

func TestCivicApartmentHyphenation(t *testing.T) {
	rec := torontoRecord()
	rec.AptNoLabel = sp("4")
	rec.CivicNoSuffix = sp("A")

	got := Civic(rec, true)
	want := "4-123 A MAIN ST, TORONTO ON, M5V 2T6"
	if got != want {
		t.Errorf("Civic = %q, want %q", got, want)
	}
}

func TestMailingWithBuildingLine(t *testing.T) {
	rec := torontoRecord()
	rec.BuildingCivicAddr = sp("Commerce Court")

	got := Mailing(rec, false)
	want := "COMMERCE COURT\n123 MAIN ST\nTORONTO ON\nM5V 2T6"
	if got != want {
		t.Errorf("Mailing = %q, want %q", got, want)
	}
}

func TestMailingNoStreetKeepsBuildingOnly(t *testing.T) {
	rec := &nar.AddressRecord{
		BuildingCivicAddr: sp("PO BOX 45 STN A"),
		MailMunName:       sp("TORONTO"),
		MailProvAbvn:      sp("ON"),
		MailPostalCode:    sp("M5W1A1"),
	}

	got := Mailing(rec, false)
	want := "PO BOX 45 STN A\nTORONTO ON\nM5W 1A1"
	if got != want {
		t.Errorf("Mailing = %q, want %q", got, want)
	}
}

func TestCompositeClearsDifferingFields(t *testing.T) {
	a := torontoRecord()
	a.AptNoLabel = sp("1")
	b := torontoRecord()
	b.AddrGUID = sp("A2")
	b.AptNoLabel = sp("2")
	b.BgX = fp(7.5)

	merged := Composite([]*nar.AddressRecord{a, b})

	if merged.AddrGUID != nil {
		t.Errorf("AddrGUID should be cleared, got %q", *merged.AddrGUID)
	}
	if merged.AptNoLabel != nil {
		t.Errorf("AptNoLabel should be cleared, got %q", *merged.AptNoLabel)
	}
	if merged.CivicNo == nil || *merged.CivicNo != "123" {
		t.Error("shared civic number must survive the merge")
	}
	if merged.MailMunName == nil || *merged.MailMunName != "TORONTO" {
		t.Error("shared municipality must survive the merge")
	}
	if merged.BgX != nil {
		t.Error("coordinate present on only one unit should be cleared")
	}
}

type fakeFormatStore struct {
	records   map[string]*nar.AddressRecord
	locations map[string][]*nar.AddressRecord
}

func (s *fakeFormatStore) Record(ctx context.Context, guid string) (*nar.AddressRecord, error) {
	return s.records[guid], nil
}

func (s *fakeFormatStore) Location(ctx context.Context, guid string) ([]*nar.AddressRecord, error) {
	return s.locations[guid], nil
}

func TestBase(t *testing.T) {
	unit1 := torontoRecord()
	unit1.AptNoLabel = sp("1")
	unit2 := torontoRecord()
	unit2.AddrGUID = sp("A2")
	unit2.AptNoLabel = sp("2")

	st := &fakeFormatStore{
		records:   map[string]*nar.AddressRecord{"A1": torontoRecord()},
		locations: map[string][]*nar.AddressRecord{"L1": {unit1, unit2}},
	}
	ctx := context.Background()

	record, err := Base(ctx, st, "A1")
	if err != nil {
		t.Fatalf("Base(A1): %v", err)
	}
	if record == nil || record.AddrGUID == nil || *record.AddrGUID != "A1" {
		t.Errorf("Base(A1) = %+v, want record A1", record)
	}

	composite, err := Base(ctx, st, "L1")
	if err != nil {
		t.Fatalf("Base(L1): %v", err)
	}
	if composite == nil {
		t.Fatal("Base(L1) returned nil for known location")
	}
	if composite.AptNoLabel != nil {
		t.Error("composite should clear the differing apartment label")
	}
	if got := Civic(composite, true); got != "123 MAIN ST, TORONTO ON, M5V 2T6" {
		t.Errorf("composite civic = %q", got)
	}

	missing, err := Base(ctx, st, "NOPE")
	if err != nil {
		t.Fatalf("Base(NOPE): %v", err)
	}
	if missing != nil {
		t.Errorf("Base(NOPE) = %+v, want nil", missing)
	}
}
