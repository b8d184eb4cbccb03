package nar

// Tags is the structured output of address tagging. The field set is the fixed
// tag vocabulary; an empty string means the tagger did not produce that
// component. Built once per resolution request and not modified afterwards.
type Tags struct {
	StreetNamePreType         string
	StreetNamePreDirectional  string
	StreetName                string
	StreetNamePostType        string
	StreetNamePostDirectional string

	SubaddressIdentifier string
	AddressNumberPrefix  string
	AddressNumber        string
	AddressNumberSuffix  string

	PostalCode           string
	PlaceName            string
	ProvinceAbbreviation string
	POBoxNumber          string
}
