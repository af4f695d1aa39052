package geo

import "strings"

// cityCandidates are the city and province names SplitAddress recognizes
// inside a composite address, in match-priority order. This is a short
// hand-built list, not a gazetteer, so extraction is best-effort.
var cityCandidates = []string{
	"Jakarta", "Bandung", "Surabaya", "Yogyakarta", "Semarang",
	"Medan", "Makassar", "Palembang", "Denpasar", "Bali",
	"Jawa Barat", "Jawa Tengah", "Jawa Timur",
	"Sumatera Utara", "Sumatera Selatan", "Sumatera Barat",
}

// SplitAddress splits a composite address into a detail part and a city.
//
// A bare city or province name returns an empty detail with the address as
// the city. Otherwise the address is split on commas and scanned from the
// end, skipping an "Indonesia"/"ID" country token; the first part
// containing a known city name decides the city, and the preceding parts
// become the detail. When nothing matches, the regency and then the
// province fill in the city.
//
// Addresses that mention several cities, or contain a city name inside an
// unrelated word, will be misread. That imprecision is inherent to
// substring matching against a short list.
func SplitAddress(address, province, regency string) (detail, city string) {
	address = strings.TrimSpace(address)
	if address == "" {
		return "", ""
	}

	lowerAddr := strings.ToLower(address)
	for _, candidate := range cityCandidates {
		if lowerAddr == strings.ToLower(candidate) {
			return "", address
		}
	}

	detail = address
	parts := strings.Split(address, ",")
	if len(parts) > 1 {
	scan:
		for i := len(parts) - 1; i >= 0; i-- {
			part := strings.ToLower(strings.TrimSpace(parts[i]))
			if part == "indonesia" || part == "id" {
				continue
			}
			for _, candidate := range cityCandidates {
				if strings.Contains(part, strings.ToLower(candidate)) {
					city = candidate
					detail = strings.Join(parts[:i], ",")
					break scan
				}
			}
		}
	}

	if city == "" {
		if r := strings.TrimSpace(regency); r != "" {
			city = r
		} else if p := strings.TrimSpace(province); p != "" {
			city = p
		}
	}

	detail = trimTrailingSeparators(detail)
	return detail, city
}

// trimTrailingSeparators drops trailing commas/semicolons and surrounding
// whitespace left over after cutting the city off a detail string.
func trimTrailingSeparators(s string) string {
	s = strings.TrimSpace(s)
	for len(s) > 0 {
		last := s[len(s)-1]
		if last != ',' && last != ';' {
			break
		}
		s = strings.TrimSpace(s[:len(s)-1])
	}
	return s
}
