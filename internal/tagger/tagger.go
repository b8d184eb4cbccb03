package tagger

import (
	"fmt"
	"regexp"

	postal "github.com/openvenues/gopostal/parser"

	"github.com/nar-resolver/internal/nar"
)

// libpostal labels the whole "po box 123" phrase; only the number is a tag.
var rePOBoxNumber = regexp.MustCompile(`\d+`)

// Tagging is the outcome of tagging one raw address string. Ambiguous is an
// expected outcome, not an error: it means the input could not be segmented
// into components unambiguously and the resolution should give up.
type Tagging struct {
	Tags        nar.Tags
	Specificity string
	Ambiguous   bool
}

// Postal tags addresses with libpostal via gopostal.
type Postal struct{}

// NewPostal creates a libpostal-backed tagger.
func NewPostal() *Postal {
	return &Postal{}
}

// Tag parses a raw address into the register tag vocabulary. A label that
// appears more than once with conflicting values marks the tagging ambiguous.
func (p *Postal) Tag(raw string) (Tagging, error) {
	components := postal.ParseAddress(raw)

	var tagging Tagging
	seen := make(map[string]string, len(components))

	for _, component := range components {
		if prev, ok := seen[component.Label]; ok && prev != component.Value {
			tagging.Ambiguous = true
			return tagging, nil
		}
		seen[component.Label] = component.Value

		switch component.Label {
		case "house_number":
			tagging.Tags.AddressNumber = component.Value
		case "road":
			tagging.Tags.StreetName = component.Value
		case "unit", "level":
			if tagging.Tags.SubaddressIdentifier == "" {
				tagging.Tags.SubaddressIdentifier = component.Value
			}
		case "po_box":
			tagging.Tags.POBoxNumber = rePOBoxNumber.FindString(component.Value)
		case "postcode":
			tagging.Tags.PostalCode = component.Value
		case "city", "city_district", "suburb":
			if tagging.Tags.PlaceName == "" {
				tagging.Tags.PlaceName = component.Value
			}
		case "state":
			tagging.Tags.ProvinceAbbreviation = component.Value
		}
	}

	tagging.Specificity = fmt.Sprintf("%d", len(seen))
	return tagging, nil
}
