package dataset

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// Mapping names for the known historical source layouts. Generic resolves
// columns through the alias lists instead of a fixed layout.
const (
	MappingTourismWithID = "tourism_with_id"
	MappingWisataFinal   = "wisata_final"
	MappingWisataNew     = "wisata_new"
	MappingGeneric       = "generic"
)

// Source describes one raw CSV input file.
type Source struct {
	Name    string
	Path    string
	Mapping string
}

// columnAliases lists candidate column names per canonical field, in
// resolution priority order. The raw datasets never agreed on a header
// vocabulary, so resolution tries each candidate and takes the first one
// present.
var columnAliases = map[string][]string{
	"name":        {"name", "Place_Name", "place_name", "nama", "Name", "nama_tempat", "nama_wisata"},
	"latitude":    {"latitude", "Latitude", "Lat", "lat", "koordinat_lat"},
	"longitude":   {"longitude", "Longitude", "Long", "lng", "lon", "koordinat_lng"},
	"description": {"description", "Description", "deskripsi", "deskripsi_bersih", "detail"},
	"category":    {"category", "Category", "kategori", "jenis"},
	"price":       {"priceRange", "Price", "price", "harga", "biaya"},
	"rating":      {"rating", "Rating", "nilai"},
	"timeMinutes": {"timeMinutes", "Time_Minutes", "time_minutes", "durasi", "waktu"},
	"address":     {"address", "Address", "alamat", "lokasi"},
	"regency":     {"kotaKabupaten", "City", "city", "kota", "kabupaten", "kota_kabupaten"},
	"province":    {"provinsi", "Provinsi", "province"},
	"addressCity": {"addressCity"},
	"descriptionClean": {"descriptionClean"},
}

// requiredFields must resolve for every source; a miss is a setup error
// that aborts the run.
var requiredFields = []string{"name", "latitude", "longitude", "description"}

// table is a CSV file loaded into memory with a header index.
type table struct {
	columns map[string]int
	rows    [][]string
}

// readTable loads a CSV file. The header row is indexed by trimmed column
// name; a UTF-8 BOM on the first cell is stripped.
func readTable(path string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv %s: %w", path, err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("csv %s has no header row", path)
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	columns := make(map[string]int, len(header))
	for i, h := range header {
		columns[strings.TrimSpace(h)] = i
	}

	return &table{columns: columns, rows: records[1:]}, nil
}

// resolve returns the column index for a canonical field via its alias
// list, or -1 when no candidate is present.
func (t *table) resolve(field string) int {
	for _, candidate := range columnAliases[field] {
		if idx, ok := t.columns[candidate]; ok {
			return idx
		}
	}
	return -1
}

// requireColumns resolves a set of canonical fields, failing with a
// descriptive error naming the field and the candidates that were tried.
func (t *table) requireColumns(fields ...string) (map[string]int, error) {
	resolved := make(map[string]int, len(fields))
	for _, field := range fields {
		idx := t.resolve(field)
		if idx < 0 {
			return nil, fmt.Errorf("missing required column for %q (tried: %s)",
				field, strings.Join(columnAliases[field], ", "))
		}
		resolved[field] = idx
	}
	return resolved, nil
}

func cell(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}

// parseCoord parses a coordinate cell, returning NaN for missing or
// malformed values. NaN rows are dropped (and counted) during merge.
func parseCoord(s string) float64 {
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func parseOptionalFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseOptionalMinutes(s string) *int {
	v := parseOptionalFloat(s)
	if v == nil {
		return nil
	}
	m := int(*v)
	return &m
}

// Load reads the source file and maps every row into the canonical
// schema. Rows are returned in file order; fields the layout does not
// carry stay at their zero/sentinel values.
func (s Source) Load() ([]Destination, error) {
	t, err := readTable(s.Path)
	if err != nil {
		return nil, fmt.Errorf("source %s: %w", s.Name, err)
	}

	switch s.Mapping {
	case MappingTourismWithID:
		return mapTourismWithID(t)
	case MappingWisataFinal:
		return mapWisataTable(t, "deskripsi")
	case MappingWisataNew:
		return mapWisataTable(t, "deskripsi_bersih")
	case MappingGeneric, "":
		return mapGeneric(t)
	default:
		return nil, fmt.Errorf("source %s: unknown mapping %q", s.Name, s.Mapping)
	}
}

// mapTourismWithID handles the tourism_with_id layout: city doubles as
// address, province and regency; Price is a numeric ticket price where
// zero means free admission.
func mapTourismWithID(t *table) ([]Destination, error) {
	cols, err := t.requireColumns(requiredFields...)
	if err != nil {
		return nil, err
	}
	catIdx := t.resolve("category")
	priceIdx := t.resolve("price")
	ratingIdx := t.resolve("rating")
	timeIdx := t.resolve("timeMinutes")
	cityIdx := t.resolve("regency")

	out := make([]Destination, 0, len(t.rows))
	for _, rec := range t.rows {
		city := cell(rec, cityIdx)
		desc := cell(rec, cols["description"])
		out = append(out, Destination{
			Name:             cell(rec, cols["name"]),
			Category:         cell(rec, catIdx),
			Latitude:         parseCoord(cell(rec, cols["latitude"])),
			Longitude:        parseCoord(cell(rec, cols["longitude"])),
			Address:          city,
			Province:         city,
			Regency:          city,
			Description:      desc,
			DescriptionClean: desc,
			PriceRange:       ticketPriceRange(cell(rec, priceIdx)),
			Rating:           parseOptionalFloat(cell(rec, ratingIdx)),
			TimeMinutes:      parseOptionalMinutes(cell(rec, timeIdx)),
		})
	}
	return out, nil
}

// mapWisataTable handles the two wisata_indonesia layouts, which differ
// only in the description column name.
func mapWisataTable(t *table, descColumn string) ([]Destination, error) {
	cols, err := t.requireColumns("name", "latitude", "longitude")
	if err != nil {
		return nil, err
	}
	descIdx, ok := t.columns[descColumn]
	if !ok {
		return nil, fmt.Errorf("missing required column %q", descColumn)
	}
	catIdx := t.resolve("category")
	addrIdx := t.resolve("address")
	provIdx := t.resolve("province")
	regIdx := t.resolve("regency")

	out := make([]Destination, 0, len(t.rows))
	for _, rec := range t.rows {
		desc := cell(rec, descIdx)
		out = append(out, Destination{
			Name:             cell(rec, cols["name"]),
			Category:         cell(rec, catIdx),
			Latitude:         parseCoord(cell(rec, cols["latitude"])),
			Longitude:        parseCoord(cell(rec, cols["longitude"])),
			Address:          cell(rec, addrIdx),
			Province:         cell(rec, provIdx),
			Regency:          cell(rec, regIdx),
			Description:      desc,
			DescriptionClean: desc,
			PriceRange:       PriceUnknown,
		})
	}
	return out, nil
}

// mapGeneric maps an arbitrary layout via alias resolution.
func mapGeneric(t *table) ([]Destination, error) {
	cols, err := t.requireColumns(requiredFields...)
	if err != nil {
		return nil, err
	}
	catIdx := t.resolve("category")
	priceIdx := t.resolve("price")
	ratingIdx := t.resolve("rating")
	timeIdx := t.resolve("timeMinutes")
	addrIdx := t.resolve("address")
	provIdx := t.resolve("province")
	regIdx := t.resolve("regency")
	cityIdx := t.resolve("addressCity")
	cleanIdx := t.resolve("descriptionClean")

	out := make([]Destination, 0, len(t.rows))
	for _, rec := range t.rows {
		desc := cell(rec, cols["description"])
		clean := cell(rec, cleanIdx)
		if clean == "" {
			clean = desc
		}
		price := cell(rec, priceIdx)
		if price == "" {
			price = PriceUnknown
		}
		out = append(out, Destination{
			Name:             cell(rec, cols["name"]),
			Category:         cell(rec, catIdx),
			Latitude:         parseCoord(cell(rec, cols["latitude"])),
			Longitude:        parseCoord(cell(rec, cols["longitude"])),
			Address:          cell(rec, addrIdx),
			AddressCity:      cell(rec, cityIdx),
			Province:         cell(rec, provIdx),
			Regency:          cell(rec, regIdx),
			Description:      desc,
			DescriptionClean: clean,
			PriceRange:       price,
			Rating:           parseOptionalFloat(cell(rec, ratingIdx)),
			TimeMinutes:      parseOptionalMinutes(cell(rec, timeIdx)),
		})
	}
	return out, nil
}

// ticketPriceRange converts a numeric ticket price into the price
// vocabulary: positive prices keep their integer value as a string, zero
// or unparseable means free admission.
func ticketPriceRange(raw string) string {
	if raw == "" {
		return PriceFree
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		return PriceFree
	}
	return strconv.Itoa(int(v))
}
