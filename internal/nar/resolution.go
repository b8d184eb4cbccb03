package nar

// ResolutionKind distinguishes the three possible outcomes of a resolution.
type ResolutionKind int

const (
	// NoMatch means no record could be resolved with enough confidence.
	NoMatch ResolutionKind = iota
	// ResolvedRecord means a single addressable unit was identified.
	ResolvedRecord
	// ResolvedLocation means the physical location is certain but the
	// specific unit within it is not.
	ResolvedLocation
)

// Resolution is the outcome of resolving one free-text address. GUID holds an
// addr_guid for ResolvedRecord, a loc_guid for ResolvedLocation, and is empty
// for NoMatch.
type Resolution struct {
	Kind ResolutionKind
	GUID string
}

func (k ResolutionKind) String() string {
	switch k {
	case ResolvedRecord:
		return "record"
	case ResolvedLocation:
		return "location"
	default:
		return "no_match"
	}
}
