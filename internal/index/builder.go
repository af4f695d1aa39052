package index

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/palapa-cloud/palapa-etl/internal/metrics"
)

// File names inside the index directory.
const (
	IndexFile   = "flat_index.bin"
	MappingFile = "index_mapping.json"
)

// Entry is the metadata stored per vector position. ID mirrors the
// position; DocumentID links back to the document store.
type Entry struct {
	ID         int     `json:"id"`
	DocumentID string  `json:"documentId,omitempty"`
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Provinsi   string  `json:"provinsi"`
	IsCultural bool    `json:"isCultural"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

// Builder assembles a flat index together with its metadata sidecar,
// keeping both aligned by construction.
type Builder struct {
	flat    *Flat
	entries []Entry
}

// NewBuilder creates a builder for vectors of the given dimensionality.
func NewBuilder(dim int) (*Builder, error) {
	flat, err := NewFlat(dim)
	if err != nil {
		return nil, err
	}
	return &Builder{flat: flat}, nil
}

// Add normalizes the vector and appends it with its metadata. The entry
// id is assigned from the vector's position.
func (b *Builder) Add(vec []float32, e Entry) error {
	if err := b.flat.Add(Normalize(vec)); err != nil {
		return err
	}
	e.ID = len(b.entries)
	b.entries = append(b.entries, e)
	return nil
}

// Len returns the number of indexed vectors.
func (b *Builder) Len() int { return len(b.entries) }

// Build returns the searchable index.
func (b *Builder) Build() *Index {
	metrics.IndexVectors.Set(float64(b.Len()))
	return &Index{flat: b.flat, entries: b.entries}
}

// Index is a searchable flat index with per-position metadata.
type Index struct {
	flat    *Flat
	entries []Entry
}

// Result is one search hit with its metadata.
type Result struct {
	Entry Entry
	Score float32
}

// Len returns the number of indexed vectors.
func (i *Index) Len() int { return len(i.entries) }

// Dim returns the vector dimensionality.
func (i *Index) Dim() int { return i.flat.Dim() }

// Entries returns the metadata in position order.
func (i *Index) Entries() []Entry { return i.entries }

// Vector returns a copy of the stored (normalized) vector at a position.
func (i *Index) Vector(pos int) ([]float32, error) { return i.flat.Vector(pos) }

// Search normalizes the query and returns the top-k entries by cosine
// similarity.
func (i *Index) Search(query []float32, k int) ([]Result, error) {
	q := make([]float32, len(query))
	copy(q, query)
	hits, err := i.flat.Search(Normalize(q), k)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(hits))
	for _, h := range hits {
		if h.Position >= len(i.entries) {
			continue
		}
		results = append(results, Result{Entry: i.entries[h.Position], Score: h.Score})
	}
	return results, nil
}

// Save writes the index and its mapping into dir, creating it as needed.
func (i *Index) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create index dir: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, IndexFile))
	if err != nil {
		return fmt.Errorf("create index file: %w", err)
	}
	defer f.Close()
	if err := i.flat.WriteTo(f); err != nil {
		return fmt.Errorf("write index: %w", err)
	}

	data, err := json.MarshalIndent(i.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal mapping: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, MappingFile), data, 0o644); err != nil {
		return fmt.Errorf("write mapping: %w", err)
	}
	return nil
}

// Load reads an index directory written by Save. The vector count and
// mapping length must agree.
func Load(dir string) (*Index, error) {
	f, err := os.Open(filepath.Join(dir, IndexFile))
	if err != nil {
		return nil, fmt.Errorf("open index file: %w", err)
	}
	defer f.Close()

	flat, err := ReadFlat(f)
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, MappingFile))
	if err != nil {
		return nil, fmt.Errorf("read mapping: %w", err)
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse mapping: %w", err)
	}

	if flat.Len() != len(entries) {
		return nil, fmt.Errorf("index has %d vectors but mapping has %d entries",
			flat.Len(), len(entries))
	}
	return &Index{flat: flat, entries: entries}, nil
}
