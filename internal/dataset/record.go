// Package dataset merges heterogeneous destination CSV sources into one
// cleaned, deduplicated table in the canonical schema.
package dataset

import (
	"fmt"
	"math"
	"strings"
)

// Price range vocabulary. Numeric ticket prices from the raw data are kept
// as integer strings; everything else maps into this small set.
const (
	PriceFree    = "Gratis"
	PriceCheap   = "murah"
	PriceMedium  = "sedang"
	PriceHigh    = "mahal"
	PriceUnknown = "Tidak diketahui"
)

// Destination is the canonical tourism-location record produced by the
// merge stage and consumed by the import stage.
type Destination struct {
	Name             string
	Category         string
	Latitude         float64
	Longitude        float64
	Address          string // detail only, city stripped out
	AddressCity      string
	Province         string
	Regency          string
	Description      string
	DescriptionClean string
	PriceRange       string
	Rating           *float64
	TimeMinutes      *int
	IsCultural       bool
	Embedding        []float32
}

// culturalCategories marks a destination as cultural for index metadata.
var culturalCategories = map[string]bool{
	"budaya":          true,
	"wisata religi":   true,
	"candi":           true,
	"wisata kerajaan": true,
}

// IsCulturalCategory reports whether a (lowercased, trimmed) category
// counts as cultural.
func IsCulturalCategory(category string) bool {
	return culturalCategories[strings.ToLower(strings.TrimSpace(category))]
}

// categoryFixes repairs misspelled categories observed in the raw
// datasets. Matched after trim+lowercase, exact string only.
var categoryFixes = map[string]string{
	"wisate alam":    "wisata alam",
	"wisawi alam":    "wisata alam",
	"wisath alam":    "wisata alam",
	"wisatr alam":    "wisata alam",
	"wisaub alam":    "wisata alam",
	"wisawa alam":    "wisata alam",
	"wisata  religi": "wisata religi",
	"cafe view":      "wisata kuliner",
	"wisata lampion": "taman hiburan",
}

// NormalizeCategory lowercases, trims and repairs a raw category value.
func NormalizeCategory(raw string) string {
	c := strings.ToLower(strings.TrimSpace(raw))
	if fixed, ok := categoryFixes[c]; ok {
		return fixed
	}
	return c
}

// DedupKey is the composite duplicate-collapse key: lowercased trimmed
// name plus coordinates rounded to three decimals (~110 m). Two scraped
// copies of the same place rarely agree beyond that precision.
func (d *Destination) DedupKey() string {
	return fmt.Sprintf("%s|%.3f|%.3f",
		strings.ToLower(strings.TrimSpace(d.Name)),
		d.Latitude, d.Longitude)
}

// HasCoordinates reports whether both coordinates parsed to real numbers.
func (d *Destination) HasCoordinates() bool {
	return !math.IsNaN(d.Latitude) && !math.IsNaN(d.Longitude)
}

// EmbeddingText is the text embedded for similarity search: the cleaned
// description, falling back to the name.
func (d *Destination) EmbeddingText() string {
	if strings.TrimSpace(d.DescriptionClean) != "" {
		return d.DescriptionClean
	}
	return d.Name
}

// roundTo rounds v to the given number of decimal places.
func roundTo(v float64, places int) float64 {
	if math.IsNaN(v) {
		return v
	}
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}
