// Package geo normalizes free-text Indonesian geography fields (province,
// regency/city, composite addresses) against a fixed canonical taxonomy,
// and validates coordinates against the country bounding box.
//
// The alias and inference tables are hand-built from the raw datasets; they
// are deliberately declarative data, not logic, so they can be extended and
// tested entry by entry.
package geo

import "strings"

// provinceAliases maps lowercased aliases, city names and province
// spellings to canonical province names.
var provinceAliases = map[string]string{
	"jakarta":                   "DKI Jakarta",
	"bandung":                   "Jawa Barat",
	"yogyakarta":                "Daerah Istimewa Yogyakarta",
	"semarang":                  "Jawa Tengah",
	"surabaya":                  "Jawa Timur",
	"bali":                      "Bali",
	"jawa barat":                "Jawa Barat",
	"jawa tengah":               "Jawa Tengah",
	"jawa timur":                "Jawa Timur",
	"sumatera utara":            "Sumatera Utara",
	"sumatera selatan":          "Sumatera Selatan",
	"sumatera barat":            "Sumatera Barat",
	"sulawesi selatan":          "Sulawesi Selatan",
	"sulawesi utara":            "Sulawesi Utara",
	"sulawesi tenggara":         "Sulawesi Tenggara",
	"sulawesi tengah":           "Sulawesi Tengah",
	"sulawesi barat":            "Sulawesi Barat",
	"kalimantan barat":          "Kalimantan Barat",
	"kalimantan timur":          "Kalimantan Timur",
	"kalimantan selatan":        "Kalimantan Selatan",
	"kalimantan tengah":         "Kalimantan Tengah",
	"kalimantan utara":          "Kalimantan Utara",
	"nusa tenggara barat":       "Nusa Tenggara Barat",
	"nusa tenggara timur":       "Nusa Tenggara Timur",
	"kepulauan bangka belitung": "Kepulauan Bangka Belitung",
	"papua barat daya":          "Papua Barat Daya",
	"maluku":                    "Maluku",
	"maluku utara":              "Maluku Utara",
	"aceh":                      "Aceh",
	"riau":                      "Riau",
	"jambi":                     "Jambi",
	"lampung":                   "Lampung",
	"banten":                    "Banten",
	"daerah istimewa yogyakarta": "Daerah Istimewa Yogyakarta",
	"dki jakarta":                "DKI Jakarta",
}

// NormalizeProvince maps a raw province string to its canonical name.
// Unknown values pass through trimmed: the taxonomy is an open vocabulary,
// and dropping unmapped provinces would lose data.
func NormalizeProvince(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if canonical, ok := provinceAliases[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return trimmed
}
