// Package index implements a flat inner-product vector index with a
// JSON metadata sidecar, persisted to disk for the serving tier.
package index

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
)

// flatMagic identifies the binary index format.
var flatMagic = [4]byte{'P', 'F', 'I', '1'}

// ErrDimMismatch is returned when a vector does not match the index
// dimensionality.
var ErrDimMismatch = errors.New("vector dimension mismatch")

// Flat is a brute-force inner-product index. With normalized vectors the
// inner product equals cosine similarity.
type Flat struct {
	dim     int
	vectors []float32 // row-major, len = count*dim
}

// NewFlat creates an empty index for vectors of the given dimensionality.
func NewFlat(dim int) (*Flat, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("dimension must be positive, got %d", dim)
	}
	return &Flat{dim: dim}, nil
}

func (f *Flat) Dim() int { return f.dim }

// Len returns the number of stored vectors.
func (f *Flat) Len() int { return len(f.vectors) / f.dim }

// Add appends a vector. Position equals the current Len before the call.
func (f *Flat) Add(vec []float32) error {
	if len(vec) != f.dim {
		return fmt.Errorf("%w: got %d, want %d", ErrDimMismatch, len(vec), f.dim)
	}
	f.vectors = append(f.vectors, vec...)
	return nil
}

// Vector returns a copy of the vector at the given position.
func (f *Flat) Vector(pos int) ([]float32, error) {
	if pos < 0 || pos >= f.Len() {
		return nil, fmt.Errorf("position %d out of range [0,%d)", pos, f.Len())
	}
	out := make([]float32, f.dim)
	copy(out, f.vectors[pos*f.dim:(pos+1)*f.dim])
	return out, nil
}

// Hit is one search result: the position of a stored vector and its
// inner-product score against the query.
type Hit struct {
	Position int
	Score    float32
}

// Search returns the top-k vectors by inner product, highest score
// first. Ties break toward the lower position. k is clamped to Len.
func (f *Flat) Search(query []float32, k int) ([]Hit, error) {
	if len(query) != f.dim {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDimMismatch, len(query), f.dim)
	}
	n := f.Len()
	if k > n {
		k = n
	}
	if k <= 0 {
		return nil, nil
	}

	hits := make([]Hit, n)
	for i := 0; i < n; i++ {
		row := f.vectors[i*f.dim : (i+1)*f.dim]
		var dot float32
		for j, q := range query {
			dot += q * row[j]
		}
		hits[i] = Hit{Position: i, Score: dot}
	}

	sort.Slice(hits, func(a, b int) bool {
		if hits[a].Score != hits[b].Score {
			return hits[a].Score > hits[b].Score
		}
		return hits[a].Position < hits[b].Position
	})
	return hits[:k], nil
}

// Normalize scales v to unit L2 length in place and returns it. A zero
// vector is returned unchanged so it can never match anything.
func Normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return v
	}
	inv := 1 / math.Sqrt(sum)
	for i := range v {
		v[i] = float32(float64(v[i]) * inv)
	}
	return v
}

// WriteTo serializes the index: magic, uint32 dim, uint32 count, then
// the vectors as little-endian float32 rows.
func (f *Flat) WriteTo(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(flatMagic[:]); err != nil {
		return fmt.Errorf("write magic: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(f.dim)); err != nil {
		return fmt.Errorf("write dim: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(f.Len())); err != nil {
		return fmt.Errorf("write count: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, f.vectors); err != nil {
		return fmt.Errorf("write vectors: %w", err)
	}
	return bw.Flush()
}

// ReadFlat deserializes an index written by WriteTo.
func ReadFlat(r io.Reader) (*Flat, error) {
	br := bufio.NewReader(r)

	var magic [4]byte
	if _, err := io.ReadFull(br, magic[:]); err != nil {
		return nil, fmt.Errorf("read magic: %w", err)
	}
	if magic != flatMagic {
		return nil, fmt.Errorf("bad index magic %q", magic[:])
	}

	var dim, count uint32
	if err := binary.Read(br, binary.LittleEndian, &dim); err != nil {
		return nil, fmt.Errorf("read dim: %w", err)
	}
	if err := binary.Read(br, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("read count: %w", err)
	}
	if dim == 0 {
		return nil, errors.New("index has zero dimension")
	}

	f := &Flat{dim: int(dim), vectors: make([]float32, int(dim)*int(count))}
	if err := binary.Read(br, binary.LittleEndian, f.vectors); err != nil {
		return nil, fmt.Errorf("read vectors: %w", err)
	}
	return f, nil
}
