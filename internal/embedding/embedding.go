// Package embedding turns destination text into vectors through a
// pluggable provider, with batching, retries and zero-vector fallback.
package embedding

import (
	"context"
	"errors"
)

// ErrProvider marks failures coming from the embedding API rather than
// from this process.
var ErrProvider = errors.New("embedding provider error")

// Provider is a single-text embedding backend.
type Provider interface {
	// Embed returns the vector for text. Implementations must return
	// exactly Dimensions() values on success.
	Embed(ctx context.Context, text string) ([]float32, error)
	Name() string
	Model() string
	Dimensions() int
}

// ZeroVector returns an all-zero vector of the given dimensionality.
// Records whose text cannot be embedded carry one so positions in the
// index stay aligned with the cleaned table.
func ZeroVector(dim int) []float32 {
	return make([]float32, dim)
}

// IsZero reports whether every component of v is zero.
func IsZero(v []float32) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}
