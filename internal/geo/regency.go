package geo

import (
	"regexp"
	"strings"
)

// adminPrefixRe strips leading administrative honorifics ("Kota Bandung"
// and "Kabupaten Badung" both refer to the regency itself).
var adminPrefixRe = regexp.MustCompile(`(?i)^(kota\.?|kabupaten|kab\.)\s*`)

// regencyFix rewrites a regency whose lowercased text contains the
// substring. Order matters: the first match wins.
type regencyFix struct {
	substr string
	name   string
}

var regencyFixes = []regencyFix{
	{"daerah khusus ibukota jakarta", "Jakarta"},
	{"dki jakarta", "Jakarta"},
	{"yogyakarta", "Yogyakarta"},
	{"jogjakarta", "Yogyakarta"},
	{"jogja", "Yogyakarta"},
}

// islandPlaceholders are bare island names that occasionally appear in the
// regency column. They carry no regency-level information, so the value is
// cleared and left for province-level inference.
var islandPlaceholders = map[string]bool{
	"sulawesi": true,
	"sumatera": true,
}

// NormalizeRegency cleans a raw regency/city string: strips non-ASCII
// characters, collapses whitespace, drops a leading administrative prefix
// and rewrites known misspellings.
func NormalizeRegency(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	s = stripNonASCII(s)
	s = collapseSpaces(s)
	s = adminPrefixRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)

	lower := strings.ToLower(s)
	for _, fix := range regencyFixes {
		if strings.Contains(lower, fix.substr) {
			s = fix.name
			lower = strings.ToLower(s)
			break
		}
	}

	if islandPlaceholders[lower] {
		return ""
	}
	return s
}

// stripNonASCII removes characters outside the ASCII range. Raw regency
// columns contain stray combining marks and full-width punctuation from
// scraped sources.
func stripNonASCII(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

var multiSpaceRe = regexp.MustCompile(`\s+`)

func collapseSpaces(s string) string {
	return strings.TrimSpace(multiSpaceRe.ReplaceAllString(s, " "))
}
