package nar

// provinceAbbreviations maps Statistics Canada province codes to the two-letter
// postal abbreviations used when rendering addresses.
var provinceAbbreviations = map[int]string{
	10: "NL",
	11: "PE",
	12: "NS",
	13: "NB",
	24: "QC",
	35: "ON",
	46: "MB",
	47: "SK",
	48: "AB",
	59: "BC",
	60: "YT",
	61: "NT",
	62: "NU",
}

// ProvinceAbbreviation returns the postal abbreviation for a province code, or
// an empty string for an unknown code.
func ProvinceAbbreviation(code int) string {
	return provinceAbbreviations[code]
}
