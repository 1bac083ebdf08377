// Package countries converts ISO 3166-1 codes.
package countries

import "strings"

// alpha3 covers Europe and its neighbours. World Bank aggregates such as
// EUU or ECS have no alpha-2 code and are absent on purpose.
var alpha3 = map[string]string{
	"ALB": "AL", "AND": "AD", "ARM": "AM", "AUT": "AT", "AZE": "AZ",
	"BEL": "BE", "BGR": "BG", "BIH": "BA", "BLR": "BY", "CHE": "CH",
	"CYP": "CY", "CZE": "CZ", "DEU": "DE", "DNK": "DK", "DZA": "DZ",
	"EGY": "EG", "ESP": "ES", "EST": "EE", "FIN": "FI", "FRA": "FR",
	"FRO": "FO", "GBR": "GB", "GEO": "GE", "GIB": "GI", "GRC": "GR",
	"GRL": "GL", "HRV": "HR", "HUN": "HU", "IMN": "IM", "IRL": "IE",
	"IRN": "IR", "IRQ": "IQ", "ISL": "IS", "ISR": "IL", "ITA": "IT",
	"JOR": "JO", "KAZ": "KZ", "LBN": "LB", "LBY": "LY", "LIE": "LI",
	"LTU": "LT", "LUX": "LU", "LVA": "LV", "MAR": "MA", "MCO": "MC",
	"MDA": "MD", "MKD": "MK", "MLT": "MT", "MNE": "ME", "NLD": "NL",
	"NOR": "NO", "POL": "PL", "PRT": "PT", "ROU": "RO", "RUS": "RU",
	"SMR": "SM", "SRB": "RS", "SVK": "SK", "SVN": "SI", "SWE": "SE",
	"SYR": "SY", "TUN": "TN", "TUR": "TR", "UKR": "UA", "VAT": "VA",
	"USA": "US", "CAN": "CA", "CHN": "CN", "IND": "IN", "JPN": "JP",
	"AFG": "AF", "SOM": "SO", "ERI": "ER", "ETH": "ET", "AUS": "AU",
}

var european = map[string]bool{
	"AL": true, "AD": true, "AT": true, "BE": true, "BA": true, "BG": true,
	"HR": true, "CY": true, "CZ": true, "DK": true, "EE": true, "FI": true,
	"FR": true, "DE": true, "GR": true, "HU": true, "IS": true, "IE": true,
	"IT": true, "LV": true, "LI": true, "LT": true, "LU": true, "MT": true,
	"MC": true, "ME": true, "NL": true, "MK": true, "NO": true, "PL": true,
	"PT": true, "RO": true, "SM": true, "RS": true, "SK": true, "SI": true,
	"ES": true, "SE": true, "CH": true, "GB": true, "VA": true, "UA": true,
	"MD": true, "BY": true,
}

// Alpha2 converts an alpha-3 code, reporting false for unknown codes.
func Alpha2(code3 string) (string, bool) {
	code, ok := alpha3[strings.ToUpper(strings.TrimSpace(code3))]
	return code, ok
}

// IsEuropean reports whether an alpha-2 code is drawn on the Europe map.
func IsEuropean(code2 string) bool {
	return european[strings.ToUpper(code2)]
}

// European returns the number of countries on the Europe map.
func European() int {
	return len(european)
}
