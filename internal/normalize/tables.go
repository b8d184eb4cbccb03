package normalize

// StreetTypeAbbreviations maps spelled-out street types to the abbreviated
// forms stored in the register.
var StreetTypeAbbreviations = map[string]string{
	"STREET":    "ST",
	"ROAD":      "RD",
	"AVENUE":    "AVE",
	"BOULEVARD": "BLVD",
	"COURT":     "CRT",
	"CRESENT":   "CRES",
	"CRESCENT":  "CRES",
}

// StreetDirAbbreviations maps spelled-out street directions, English and
// French, to their abbreviated forms.
var StreetDirAbbreviations = map[string]string{
	"NORTH":      "N",
	"SOUTH":      "S",
	"EAST":       "E",
	"WEST":       "W",
	"NORTHEAST":  "NE",
	"NORTHWEST":  "NW",
	"SOUTHEAST":  "SE",
	"SOUTHWEST":  "SW",
	"NORTH EAST": "NE",
	"NORTH WEST": "NW",
	"SOUTH EAST": "SE",

	"NORD":       "N",
	"SUD":        "S",
	"EST":        "E",
	"OUEST":      "O",
	"NORDEST":    "NE",
	"NORDOUEST":  "NO",
	"SUDEST":     "SE",
	"SUDOUEST":   "SO",
	"NORD EST":   "NE",
	"NORD OUEST": "NO",
	"SUD EST":    "SE",
	"SUD OUEST":  "SO",
}

// ordinalAbbreviations maps ordinal street-name words to the abbreviated
// numeral forms used by the register ("FIRST" names a 1ST street). Both glued
// and spaced spellings of the compound ordinals appear because simplification
// turns hyphens into spaces.
var ordinalAbbreviations = map[string]string{
	"FIRST":        "1ST",
	"SECOND":       "2ND",
	"THIRD":        "3RD",
	"FOURTH":       "4TH",
	"FIFTH":        "5TH",
	"SIXTH":        "6TH",
	"SEVENTH":      "7TH",
	"EIGHTH":       "8TH",
	"NINTH":        "9TH",
	"TENTH":        "10TH",
	"ELEVENTH":     "11TH",
	"TWELFTH":      "12TH",
	"THIRTEENTH":   "13TH",
	"FOURTEENTH":   "14TH",
	"FIFTEENTH":    "15TH",
	"SIXTEENTH":    "16TH",
	"SEVENTEENTH":  "17TH",
	"EIGHTEENTH":   "18TH",
	"NINETEENTH":   "19TH",
	"TWENTIETH":    "20TH",
	"TWENTYFIRST":  "21ST",
	"TWENTY FIRST": "21ST",
}
