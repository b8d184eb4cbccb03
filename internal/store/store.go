package store

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/nar-resolver/internal/nar"
)

// identifier guards the configurable table name, which is interpolated into
// query text. Allows an optional schema qualifier.
var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// Postgres executes narrowing predicates against the register table.
type Postgres struct {
	db    *sql.DB
	table string
}

// NewPostgres creates a store over an open connection. The table name may be
// schema-qualified ("nar.addresses").
func NewPostgres(db *sql.DB, table string) (*Postgres, error) {
	if !identifier.MatchString(table) {
		return nil, fmt.Errorf("invalid register table name %q", table)
	}
	return &Postgres{db: db, table: table}, nil
}

// DistinctPlaces returns every distinct municipality name in the register.
// Used once per process to populate the place cache.
func (s *Postgres) DistinctPlaces(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf(
		"SELECT DISTINCT %s FROM %s WHERE %s IS NOT NULL",
		ColMailMunName, s.table, ColMailMunName)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("distinct places: %w", err)
	}
	defer rows.Close()

	var places []string
	for rows.Next() {
		var place string
		if err := rows.Scan(&place); err != nil {
			return nil, err
		}
		places = append(places, place)
	}
	return places, rows.Err()
}

// DistinctStreets returns the distinct street triples under a narrowing
// predicate, mailing representation first, then official, concatenated.
func (s *Postgres) DistinctStreets(ctx context.Context, where Predicate) ([]nar.StreetTriple, error) {
	mailing, err := s.distinctStreets(ctx, where, ColMailStreetName, ColMailStreetType, ColMailStreetDir)
	if err != nil {
		return nil, err
	}
	official, err := s.distinctStreets(ctx, where, ColOfficialStreetName, ColOfficialStreetType, ColOfficialStreetDir)
	if err != nil {
		return nil, err
	}
	return append(mailing, official...), nil
}

func (s *Postgres) distinctStreets(ctx context.Context, where Predicate, nameCol, typeCol, dirCol string) ([]nar.StreetTriple, error) {
	clause, args := SQL(where)
	query := fmt.Sprintf("SELECT DISTINCT %s,%s,%s FROM %s WHERE %s",
		nameCol, typeCol, dirCol, s.table, clause)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("distinct streets: %w", err)
	}
	defer rows.Close()

	var triples []nar.StreetTriple
	for rows.Next() {
		var t nar.StreetTriple
		if err := rows.Scan(&t.Name, &t.Type, &t.Dir); err != nil {
			return nil, err
		}
		triples = append(triples, t)
	}
	return triples, rows.Err()
}

// MatchPOBox returns the record identifiers matching a predicate. Used by the
// PO-box shortcut, which only accepts a single-row result.
func (s *Postgres) MatchPOBox(ctx context.Context, where Predicate) ([]string, error) {
	clause, args := SQL(where)
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s", ColAddrGUID, s.table, clause)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("po box lookup: %w", err)
	}
	defer rows.Close()

	var guids []string
	for rows.Next() {
		var guid sql.NullString
		if err := rows.Scan(&guid); err != nil {
			return nil, err
		}
		guids = append(guids, guid.String)
	}
	return guids, rows.Err()
}

// Details returns the civic-level rows under a combined street and narrowing
// predicate, in the column order the civic matching stage expects.
func (s *Postgres) Details(ctx context.Context, where Predicate) ([]nar.DetailRow, error) {
	clause, args := SQL(where)
	query := fmt.Sprintf("SELECT %s,%s,%s,%s,%s FROM %s WHERE %s",
		ColAddrGUID, ColLocGUID, ColAptNoLabel, ColCivicNo, ColCivicNoSuffix,
		s.table, clause)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("detail query: %w", err)
	}
	defer rows.Close()

	var details []nar.DetailRow
	for rows.Next() {
		var d nar.DetailRow
		if err := rows.Scan(&d.AddrGUID, &d.LocGUID, &d.AptNoLabel, &d.CivicNo, &d.CivicNoSuffix); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

const recordColumns = `addr_guid, loc_guid, apt_no_label, civic_no, civic_no_suffix,
	bu_n_civic_add, official_street_name, official_street_type, official_street_dir,
	mail_street_name, mail_street_type, mail_street_dir,
	mail_mun_name, mail_prov_abvn, mail_postal_code, prov_code, bg_x, bg_y`

// Record fetches a single register row by addr_guid, or nil if none exists.
func (s *Postgres) Record(ctx context.Context, guid string) (*nar.AddressRecord, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s=$1 LIMIT 1",
		recordColumns, s.table, ColAddrGUID)

	rec, err := scanRecord(s.db.QueryRowContext(ctx, query, guid))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("record lookup: %w", err)
	}
	return rec, nil
}

// Location fetches every register row sharing a loc_guid.
func (s *Postgres) Location(ctx context.Context, guid string) ([]*nar.AddressRecord, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s=$1",
		recordColumns, s.table, ColLocGUID)

	rows, err := s.db.QueryContext(ctx, query, guid)
	if err != nil {
		return nil, fmt.Errorf("location lookup: %w", err)
	}
	defer rows.Close()

	var records []*nar.AddressRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ReverseGeocode finds the register entry nearest to a WGS84 coordinate. When
// the few nearest records all belong to one location its loc_guid is
// returned, otherwise the nearest record's addr_guid. An empty guid means the
// register is empty.
func (s *Postgres) ReverseGeocode(ctx context.Context, latitude, longitude float64) (string, float64, error) {
	query := fmt.Sprintf(`SELECT addr_guid, loc_guid,
		ST_Distance(ST_Point(bg_x, bg_y, 3347), ST_Transform(ST_Point($1, $2, 4326), 3347)) AS distance
		FROM %s ORDER BY distance LIMIT 4`, s.table)

	rows, err := s.db.QueryContext(ctx, query, longitude, latitude)
	if err != nil {
		return "", 0, fmt.Errorf("reverse geocode: %w", err)
	}
	defer rows.Close()

	type nearest struct {
		addrGUID sql.NullString
		locGUID  sql.NullString
		distance float64
	}

	var results []nearest
	for rows.Next() {
		var n nearest
		if err := rows.Scan(&n.addrGUID, &n.locGUID, &n.distance); err != nil {
			return "", 0, err
		}
		results = append(results, n)
	}
	if err := rows.Err(); err != nil {
		return "", 0, err
	}
	if len(results) == 0 {
		return "", 0, nil
	}

	first := results[0]
	locations := make(map[string]bool)
	for _, n := range results {
		locations[n.locGUID.String] = true
	}

	if len(locations) == 1 {
		return first.locGUID.String, first.distance, nil
	}
	return first.addrGUID.String, first.distance, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (*nar.AddressRecord, error) {
	var (
		rec      nar.AddressRecord
		addrGUID sql.NullString
		strs     [13]sql.NullString
		provCode sql.NullInt64
		bgX, bgY sql.NullFloat64
	)

	err := row.Scan(&addrGUID, &rec.LocGUID,
		&strs[0], &strs[1], &strs[2], &strs[3], &strs[4], &strs[5], &strs[6],
		&strs[7], &strs[8], &strs[9], &strs[10], &strs[11], &strs[12],
		&provCode, &bgX, &bgY)
	if err != nil {
		return nil, err
	}

	rec.AddrGUID = optional(addrGUID)
	dests := []**string{
		&rec.AptNoLabel, &rec.CivicNo, &rec.CivicNoSuffix,
		&rec.BuildingCivicAddr, &rec.OfficialStreetName, &rec.OfficialStreetType,
		&rec.OfficialStreetDir, &rec.MailStreetName, &rec.MailStreetType,
		&rec.MailStreetDir, &rec.MailMunName, &rec.MailProvAbvn, &rec.MailPostalCode,
	}
	for i, dest := range dests {
		*dest = optional(strs[i])
	}
	if provCode.Valid {
		code := int(provCode.Int64)
		rec.ProvCode = &code
	}
	if bgX.Valid {
		rec.BgX = &bgX.Float64
	}
	if bgY.Valid {
		rec.BgY = &bgY.Float64
	}
	return &rec, nil
}

func optional(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
