package dataset

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/palapa-cloud/palapa-etl/internal/geo"
	"github.com/palapa-cloud/palapa-etl/internal/metrics"
	"github.com/palapa-cloud/palapa-etl/internal/textnorm"
)

// MergeStats summarises one merge run for logging and operator review.
type MergeStats struct {
	SourceRows         map[string]int
	TotalRows          int
	DroppedNoCoords    int
	DroppedOutOfBounds int
	DroppedDuplicates  int
	Kept               int
}

// Merger concatenates raw sources and produces the cleaned canonical
// table. Source order is significant: on duplicate keys the earliest
// source wins, so sources should be listed most-trusted first.
type Merger struct {
	log *zap.Logger
}

func NewMerger(log *zap.Logger) *Merger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Merger{log: log}
}

// Merge loads every source, filters rows without usable coordinates,
// collapses duplicates first-wins, then runs the cleaning passes over the
// survivors. The output order is the concatenation order of the inputs.
func (m *Merger) Merge(sources []Source) ([]Destination, MergeStats, error) {
	stats := MergeStats{SourceRows: make(map[string]int, len(sources))}

	var merged []Destination
	for _, src := range sources {
		rows, err := src.Load()
		if err != nil {
			return nil, stats, fmt.Errorf("load source %s: %w", src.Name, err)
		}
		stats.SourceRows[src.Name] = len(rows)
		stats.TotalRows += len(rows)
		merged = append(merged, rows...)
		m.log.Info("loaded source",
			zap.String("source", src.Name),
			zap.String("mapping", src.Mapping),
			zap.Int("rows", len(rows)))
	}

	seen := make(map[string]bool, len(merged))
	kept := merged[:0]
	for i := range merged {
		d := &merged[i]
		if !d.HasCoordinates() {
			stats.DroppedNoCoords++
			metrics.MergeRowsTotal.WithLabelValues("no_coords").Inc()
			continue
		}
		if !geo.Indonesia.Contains(d.Latitude, d.Longitude) {
			stats.DroppedOutOfBounds++
			metrics.MergeRowsTotal.WithLabelValues("out_of_bounds").Inc()
			continue
		}
		key := d.DedupKey()
		if seen[key] {
			stats.DroppedDuplicates++
			metrics.MergeRowsTotal.WithLabelValues("duplicate").Inc()
			continue
		}
		seen[key] = true
		metrics.MergeRowsTotal.WithLabelValues("kept").Inc()
		kept = append(kept, *d)
	}

	for i := range kept {
		m.clean(&kept[i])
	}
	stats.Kept = len(kept)

	m.log.Info("merge complete",
		zap.Int("total_rows", stats.TotalRows),
		zap.Int("dropped_no_coords", stats.DroppedNoCoords),
		zap.Int("dropped_out_of_bounds", stats.DroppedOutOfBounds),
		zap.Int("dropped_duplicates", stats.DroppedDuplicates),
		zap.Int("kept", stats.Kept))

	return kept, stats, nil
}

// clean normalizes a single surviving record in place. The pass order
// matters: regency normalization feeds address splitting, which feeds
// province inference.
func (m *Merger) clean(d *Destination) {
	d.Name = textnorm.Clean(d.Name)
	d.Description = textnorm.Clean(d.Description)
	d.DescriptionClean = textnorm.Clean(d.DescriptionClean)
	d.Category = NormalizeCategory(d.Category)
	d.IsCultural = IsCulturalCategory(d.Category)

	d.Regency = geo.NormalizeRegency(d.Regency)

	detail, city := geo.SplitAddress(d.Address, d.Province, d.Regency)
	d.Address = detail
	d.AddressCity = city

	d.Province = geo.NormalizeProvince(d.Province)
	if d.Province == "" {
		d.Province = geo.InferProvince(d.Regency, d.AddressCity)
	}

	d.Latitude = roundTo(d.Latitude, 6)
	d.Longitude = roundTo(d.Longitude, 6)

	if d.Address == "" {
		d.Address = synthesizeAddress(d)
	}

	if d.PriceRange == "" {
		d.PriceRange = PriceUnknown
	}
}

// synthesizeAddress builds a minimal address for records whose source
// carried none, preferring the regency over the province as the locality.
func synthesizeAddress(d *Destination) string {
	locality := d.Regency
	if locality == "" {
		locality = d.Province
	}
	if locality == "" {
		return d.Name
	}
	return d.Name + ", " + locality
}
