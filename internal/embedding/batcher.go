package embedding

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/palapa-cloud/palapa-etl/internal/metrics"
)

// maxConcurrency caps the worker pool regardless of configuration; the
// embedding APIs rate-limit aggressively beyond this.
const maxConcurrency = 10

// Batcher embeds a list of texts through a worker pool, preserving input
// order. A text that cannot be embedded yields a zero vector instead of
// failing the whole run, so downstream positions stay aligned.
type Batcher struct {
	provider    Provider
	concurrency int
	maxChars    int
	attempts    int
	backoff     time.Duration
	logger      *zap.Logger
}

// BatcherConfig holds the batch embedding settings.
type BatcherConfig struct {
	Provider    Provider
	Concurrency int
	MaxChars    int
	Attempts    int
	Backoff     time.Duration
	Logger      *zap.Logger
}

// NewBatcher creates a batch embedder over the given provider.
func NewBatcher(cfg *BatcherConfig) *Batcher {
	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	if concurrency > maxConcurrency {
		concurrency = maxConcurrency
	}
	attempts := cfg.Attempts
	if attempts < 1 {
		attempts = 1
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Batcher{
		provider:    cfg.Provider,
		concurrency: concurrency,
		maxChars:    cfg.MaxChars,
		attempts:    attempts,
		backoff:     cfg.Backoff,
		logger:      logger,
	}
}

// EmbedAll returns one vector per input text, in input order. Blank texts
// and texts that still fail after all retry attempts come back as zero
// vectors. The only error returned is context cancellation.
func (b *Batcher) EmbedAll(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < b.concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				out[i] = b.embedOne(ctx, i, texts[i])
			}
		}()
	}

feed:
	for i := range texts {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// embedOne embeds a single text with truncation and retries, falling back
// to a zero vector on blank input or exhausted attempts.
func (b *Batcher) embedOne(ctx context.Context, idx int, text string) []float32 {
	text = truncate(strings.TrimSpace(text), b.maxChars)
	if text == "" {
		metrics.EmbeddingZeroVectorsTotal.WithLabelValues("empty_text").Inc()
		return ZeroVector(b.provider.Dimensions())
	}

	var lastErr error
	for attempt := 1; attempt <= b.attempts; attempt++ {
		vec, err := b.provider.Embed(ctx, text)
		if err == nil {
			return vec
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		if attempt < b.attempts {
			// Linear backoff: attempt * base.
			select {
			case <-time.After(time.Duration(attempt) * b.backoff):
			case <-ctx.Done():
			}
		}
	}

	b.logger.Warn("embedding failed, using zero vector",
		zap.Int("record", idx),
		zap.Error(lastErr))
	metrics.EmbeddingZeroVectorsTotal.WithLabelValues("provider_error").Inc()
	return ZeroVector(b.provider.Dimensions())
}

// truncate cuts text to at most max runes. Rune-based so a multibyte
// character is never split.
func truncate(text string, max int) string {
	if max <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
