package nar

import "database/sql"

// AddressRecord is one row of the National Address Register table.
// Nullable columns are pointers; a nil pointer is a NULL, not an empty string.
type AddressRecord struct {
	AddrGUID           *string
	LocGUID            string
	AptNoLabel         *string
	CivicNo            *string
	CivicNoSuffix      *string
	BuildingCivicAddr  *string
	OfficialStreetName *string
	OfficialStreetType *string
	OfficialStreetDir  *string
	MailStreetName     *string
	MailStreetType     *string
	MailStreetDir      *string
	MailMunName        *string
	MailProvAbvn       *string
	MailPostalCode     *string
	ProvCode           *int
	BgX                *float64
	BgY                *float64
}

// StreetTriple is a distinct (name, type, direction) projection of either the
// mailing or the official street representation of a record. The struct is
// comparable so tied matches can be deduplicated by value.
type StreetTriple struct {
	Name sql.NullString
	Type sql.NullString
	Dir  sql.NullString
}

// DetailRow is the civic-level projection used for the final matching stage.
type DetailRow struct {
	AddrGUID      sql.NullString
	LocGUID       sql.NullString
	AptNoLabel    sql.NullString
	CivicNo       sql.NullString
	CivicNoSuffix sql.NullString
}
