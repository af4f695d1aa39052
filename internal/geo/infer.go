package geo

import "strings"

// provinceHint infers a province when the regency or extracted address
// city contains the substring.
type provinceHint struct {
	substr   string
	province string
}

// regencyHints backfill a missing province from the regency column.
var regencyHints = []provinceHint{
	{"jakarta", "DKI Jakarta"},
	{"yogyakarta", "Daerah Istimewa Yogyakarta"},
	{"jogja", "Daerah Istimewa Yogyakarta"},
	{"bandung", "Jawa Barat"},
	{"surabaya", "Jawa Timur"},
	{"malang", "Jawa Timur"},
	{"batu", "Jawa Timur"},
	{"semarang", "Jawa Tengah"},
	{"surakarta", "Jawa Tengah"},
	{"magelang", "Jawa Tengah"},
	{"denpasar", "Bali"},
	{"badung", "Bali"},
	{"gianyar", "Bali"},
	{"mataram", "Nusa Tenggara Barat"},
	{"lombok", "Nusa Tenggara Barat"},
	{"makassar", "Sulawesi Selatan"},
	{"kendari", "Sulawesi Selatan"},
	{"samarinda", "Kalimantan Timur"},
	{"balikpapan", "Kalimantan Timur"},
	{"palembang", "Sumatera Selatan"},
	{"medan", "Sumatera Utara"},
}

// addressCityHints backfill a missing province from the city extracted out
// of the address. Province-name substrings are included because address
// tails often carry the province rather than the city.
var addressCityHints = []provinceHint{
	{"jakarta", "DKI Jakarta"},
	{"yogyakarta", "Daerah Istimewa Yogyakarta"},
	{"jogja", "Daerah Istimewa Yogyakarta"},
	{"jawa barat", "Jawa Barat"},
	{"bandung", "Jawa Barat"},
	{"jawa timur", "Jawa Timur"},
	{"surabaya", "Jawa Timur"},
	{"jawa tengah", "Jawa Tengah"},
	{"semarang", "Jawa Tengah"},
	{"bali", "Bali"},
}

// InferProvince guesses a province for a record that has none, first from
// the regency, then from the address city. Returns "" when neither hints
// at a known province.
func InferProvince(regency, addressCity string) string {
	if p := matchHints(regency, regencyHints); p != "" {
		return p
	}
	return matchHints(addressCity, addressCityHints)
}

func matchHints(value string, hints []provinceHint) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return ""
	}
	for _, h := range hints {
		if strings.Contains(value, h.substr) {
			return h.province
		}
	}
	return ""
}
