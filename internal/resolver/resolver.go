package resolver

import (
	"context"
	"database/sql"
	"strings"

	"github.com/nar-resolver/internal/debug"
	"github.com/nar-resolver/internal/nar"
	"github.com/nar-resolver/internal/normalize"
	"github.com/nar-resolver/internal/store"
	"github.com/nar-resolver/internal/tagger"
)

// Policy constants. Both thresholds are tunable, not proven-optimal: they were
// picked empirically against register data.
const (
	// streetErrorLimit is the maximum acceptable error ratio for a street
	// match; anything worse is a no-match.
	streetErrorLimit = 0.3
	// placeDistanceLimit is the maximum edit distance between a tagged
	// place name and a known municipality.
	placeDistanceLimit = 3
	// minStreetSearch is the shortest street search string worth fuzzy
	// matching; shorter inputs go straight to civic-number matching.
	minStreetSearch = 3
)

// Store is the register query surface the resolver needs.
type Store interface {
	DistinctPlaces(ctx context.Context) ([]string, error)
	DistinctStreets(ctx context.Context, where store.Predicate) ([]nar.StreetTriple, error)
	MatchPOBox(ctx context.Context, where store.Predicate) ([]string, error)
	Details(ctx context.Context, where store.Predicate) ([]nar.DetailRow, error)
}

// Tagger splits a raw address string into labeled components.
type Tagger interface {
	Tag(raw string) (tagger.Tagging, error)
}

// Resolver narrows a free-text address down to a register identifier. It owns
// the process-wide place and narrow caches; construct one per process and
// share it across requests.
type Resolver struct {
	store  Store
	tagger Tagger
	places placeCache
	narrow narrowCache

	// Debug enables stage-by-stage trace output.
	Debug bool
}

// New creates a resolver over a register store and an address tagger.
func New(st Store, tg Tagger) *Resolver {
	return &Resolver{store: st, tagger: tg}
}

// FindAddress resolves a raw address string to a register identifier. The
// outcome is three-way: a record, a location, or no match. Only store
// failures surface as errors; every expected dead end is a no-match.
func (r *Resolver) FindAddress(ctx context.Context, address string) (nar.Resolution, error) {
	none := nar.Resolution{Kind: nar.NoMatch}
	defer debug.Timing(r.Debug, "find address")()

	if err := r.places.load(ctx, r.store); err != nil {
		return none, err
	}

	tagging, err := r.tagger.Tag(address)
	if err != nil {
		return none, err
	}
	if tagging.Ambiguous {
		debug.Logf(r.Debug, "ambiguous tagging for %q", address)
		return none, nil
	}
	tags := tagging.Tags
	debug.Logf(r.Debug, "tags: %+v (specificity %s)", tags, tagging.Specificity)

	searchStreetName := buildSearchStreetName(tags)
	searchNumbers := buildSearchNumbers(tags)

	conditions := r.narrowConditions(tags)
	if len(conditions) == 0 {
		debug.Logf(r.Debug, "could not narrow")
		return none, nil
	}

	// A PO box bypasses street and civic matching entirely.
	if tags.POBoxNumber != "" {
		res, done, err := r.matchPOBox(ctx, conditions, tags.POBoxNumber)
		if err != nil || done {
			return res, err
		}
	}

	narrowed, err := r.narrowStreets(ctx, conditions)
	if err != nil {
		return none, err
	}
	if len(narrowed) == 0 {
		debug.Logf(r.Debug, "could not narrow")
		return none, nil
	}
	debug.Logf(r.Debug, "narrows to %d streets", len(narrowed))

	detailConditions := make([]store.Predicate, len(conditions), len(conditions)+2)
	copy(detailConditions, conditions)

	if len(searchStreetName) >= minStreetSearch {
		match := FindClosest(searchStreetName, streetVariations(narrowed))
		debug.Logf(r.Debug, "best street match for %q is %v (distance %d, error %.3f)",
			searchStreetName, match.Payloads, match.Distance, match.Error)

		if match.Error > streetErrorLimit {
			debug.Logf(r.Debug, "not close enough")
			return none, nil
		}

		detailConditions = append(detailConditions, streetAlternatives(match.Payloads))
	}

	if tags.AddressNumber != "" {
		detailConditions = append(detailConditions, store.Any(
			store.Eq(store.ColCivicNo, tags.AddressNumber),
			store.ILikeConcat(store.ColCivicNo, store.ColCivicNoSuffix, tags.AddressNumber),
		))
	}

	details, err := r.store.Details(ctx, store.All(detailConditions...))
	if err != nil {
		return none, err
	}
	debug.Logf(r.Debug, "narrows to %d possible addresses", len(details))

	match := FindClosest(searchNumbers, civicNoVariations(details))
	debug.Logf(r.Debug, "best address match for %q: %d tied (distance %d, error %.3f)",
		searchNumbers, len(match.Payloads), match.Distance, match.Error)

	switch len(match.Payloads) {
	case 0:
		return none, nil
	case 1:
		return nar.Resolution{Kind: nar.ResolvedRecord, GUID: match.Payloads[0].AddrGUID.String}, nil
	default:
		// Multiple units tied: certain about the location when they all
		// share one, genuinely ambiguous otherwise.
		locations := make(map[string]bool)
		for _, row := range match.Payloads {
			locations[row.LocGUID.String] = true
		}
		if len(locations) == 1 {
			return nar.Resolution{Kind: nar.ResolvedLocation, GUID: match.Payloads[0].LocGUID.String}, nil
		}
		return none, nil
	}
}

// narrowConditions builds the narrowing predicate in strict priority order:
// a valid postal code wins, then place plus province, else nothing.
func (r *Resolver) narrowConditions(tags nar.Tags) []store.Predicate {
	var conditions []store.Predicate

	if tags.PostalCode != "" {
		if postalCode := normalize.PostalCode(tags.PostalCode); len(postalCode) == 6 {
			conditions = append(conditions, store.Eq(store.ColMailPostalCode, postalCode))
		}
	}

	if len(conditions) == 0 && tags.PlaceName != "" && tags.ProvinceAbbreviation != "" {
		placeSimple := normalize.Simplify(tags.PlaceName)

		options := make([]Option[string], len(r.places.simple))
		for i, simple := range r.places.simple {
			options[i] = Option[string]{Candidate: simple, Payload: simple}
		}
		match := FindClosest(placeSimple, options)

		province := strings.ToUpper(tags.ProvinceAbbreviation)

		if match.Distance < placeDistanceLimit && len(province) == 2 {
			placeConditions := make([]store.Predicate, 0, len(match.Payloads))
			for _, simple := range match.Payloads {
				placeConditions = append(placeConditions,
					store.Eq(store.ColMailMunName, r.places.original(simple)))
			}
			conditions = append(conditions,
				store.Any(placeConditions...),
				store.Eq(store.ColMailProvAbvn, province))
		}
	}

	return conditions
}

// matchPOBox tries the PO-box shortcut. done reports whether exactly one
// record matched and the resolution is final.
func (r *Resolver) matchPOBox(ctx context.Context, conditions []store.Predicate, number string) (nar.Resolution, bool, error) {
	none := nar.Resolution{Kind: nar.NoMatch}

	where := make([]store.Predicate, len(conditions), len(conditions)+1)
	copy(where, conditions)
	where = append(where, store.ILike(store.ColBuildingCivicAddr, "PO BOX "+number))

	guids, err := r.store.MatchPOBox(ctx, store.All(where...))
	if err != nil {
		return none, false, err
	}
	if len(guids) == 1 {
		debug.Logf(r.Debug, "po box %s matched %s", number, guids[0])
		return nar.Resolution{Kind: nar.ResolvedRecord, GUID: guids[0]}, true, nil
	}
	return none, false, nil
}

// narrowStreets returns the distinct street triples under the narrowing
// predicate, memoized by the predicate's serialization.
func (r *Resolver) narrowStreets(ctx context.Context, conditions []store.Predicate) ([]nar.StreetTriple, error) {
	key := store.Key(store.All(conditions...))

	if rows, ok := r.narrow.get(key); ok {
		debug.Logf(r.Debug, "narrow cache hit")
		return rows, nil
	}

	rows, err := r.store.DistinctStreets(ctx, store.All(conditions...))
	if err != nil {
		return nil, err
	}
	r.narrow.put(key, rows)
	return rows, nil
}

// streetAlternatives builds the disjunction of street predicates for the tied
// best matches: each match must equal either the mailing or the official
// street triple, with absent components required to be NULL rather than
// skipped.
func streetAlternatives(matches []nar.StreetTriple) store.Predicate {
	best := make([]nar.StreetTriple, 0, len(matches))
	seen := make(map[nar.StreetTriple]bool, len(matches))
	for _, triple := range matches {
		upper := upperTriple(triple)
		if !seen[upper] {
			seen[upper] = true
			best = append(best, upper)
		}
	}

	alternatives := make([]store.Predicate, 0, 2*len(best))
	for _, m := range best {
		alternatives = append(alternatives,
			store.All(
				streetComponent(store.ColMailStreetName, m.Name),
				streetComponent(store.ColMailStreetType, m.Type),
				streetComponent(store.ColMailStreetDir, m.Dir),
			),
			store.All(
				streetComponent(store.ColOfficialStreetName, m.Name),
				streetComponent(store.ColOfficialStreetType, m.Type),
				streetComponent(store.ColOfficialStreetDir, m.Dir),
			),
		)
	}
	return store.Any(alternatives...)
}

func streetComponent(col string, v sql.NullString) store.Predicate {
	if !v.Valid {
		return store.IsNull(col)
	}
	return store.EqUpper(col, v.String)
}

func upperTriple(t nar.StreetTriple) nar.StreetTriple {
	return nar.StreetTriple{
		Name: upperNull(t.Name),
		Type: upperNull(t.Type),
		Dir:  upperNull(t.Dir),
	}
}

func upperNull(v sql.NullString) sql.NullString {
	if v.Valid {
		v.String = strings.ToUpper(v.String)
	}
	return v
}

// buildSearchStreetName assembles the street search key from the tagged
// components in register order. The type slots go through the street-type
// table and the post-directional through the direction table; the free-form
// name is left alone.
func buildSearchStreetName(tags nar.Tags) string {
	parts := []string{
		normalize.Simplify(tags.StreetNamePreType),
		normalize.Simplify(tags.StreetNamePreDirectional),
		normalize.Simplify(tags.StreetName),
		normalize.Simplify(tags.StreetNamePostType),
		normalize.Simplify(tags.StreetNamePostDirectional),
	}
	parts[0] = normalize.StreetType(parts[0])
	parts[3] = normalize.StreetType(parts[3])
	parts[4] = normalize.StreetDir(parts[4])

	return joinNonEmpty(parts)
}

// buildSearchNumbers assembles the civic-number search key from the
// subaddress and number components.
func buildSearchNumbers(tags nar.Tags) string {
	raw := []string{
		tags.SubaddressIdentifier,
		tags.AddressNumberPrefix,
		tags.AddressNumber,
		tags.AddressNumberSuffix,
	}
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		if part != "" {
			parts = append(parts, normalize.Simplify(part))
		}
	}
	return joinNonEmpty(parts)
}

func joinNonEmpty(parts []string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			nonEmpty = append(nonEmpty, part)
		}
	}
	return strings.Join(nonEmpty, " ")
}
