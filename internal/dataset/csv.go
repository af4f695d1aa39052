package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// cleanedHeader is the fixed column order of the cleaned table. Readers
// downstream depend on these exact names.
var cleanedHeader = []string{
	"name", "category", "latitude", "longitude",
	"address", "addressCity", "description", "descriptionClean",
	"priceRange", "rating", "timeMinutes",
	"provinsi", "kotaKabupaten",
}

// WriteCleaned writes the cleaned table to path, creating parent
// directories as needed. Missing optional numbers are written as empty
// cells.
func WriteCleaned(path string, rows []Destination) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create cleaned csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(cleanedHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := range rows {
		d := &rows[i]
		rec := []string{
			d.Name,
			d.Category,
			formatCoord(d.Latitude),
			formatCoord(d.Longitude),
			d.Address,
			d.AddressCity,
			d.Description,
			d.DescriptionClean,
			d.PriceRange,
			formatOptionalFloat(d.Rating),
			formatOptionalInt(d.TimeMinutes),
			d.Province,
			d.Regency,
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush cleaned csv: %w", err)
	}
	return nil
}

// ReadCleaned reads a cleaned table previously produced by WriteCleaned.
// Cultural flags are recomputed from the category on the way in.
func ReadCleaned(path string) ([]Destination, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}
	cols := make(map[string]int, len(cleanedHeader))
	for _, name := range cleanedHeader {
		idx, ok := t.columns[name]
		if !ok {
			return nil, fmt.Errorf("cleaned csv %s: missing column %q", path, name)
		}
		cols[name] = idx
	}

	out := make([]Destination, 0, len(t.rows))
	for _, rec := range t.rows {
		d := Destination{
			Name:             cell(rec, cols["name"]),
			Category:         cell(rec, cols["category"]),
			Latitude:         parseCoord(cell(rec, cols["latitude"])),
			Longitude:        parseCoord(cell(rec, cols["longitude"])),
			Address:          cell(rec, cols["address"]),
			AddressCity:      cell(rec, cols["addressCity"]),
			Description:      cell(rec, cols["description"]),
			DescriptionClean: cell(rec, cols["descriptionClean"]),
			PriceRange:       cell(rec, cols["priceRange"]),
			Rating:           parseOptionalFloat(cell(rec, cols["rating"])),
			TimeMinutes:      parseOptionalMinutes(cell(rec, cols["timeMinutes"])),
			Province:         cell(rec, cols["provinsi"]),
			Regency:          cell(rec, cols["kotaKabupaten"]),
		}
		d.IsCultural = IsCulturalCategory(d.Category)
		out = append(out, d)
	}
	return out, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatOptionalFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatOptionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
