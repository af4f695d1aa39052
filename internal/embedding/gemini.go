package embedding

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/palapa-cloud/palapa-etl/internal/metrics"
)

// taskTypeDocument optimizes vectors for document retrieval rather than
// query matching.
const taskTypeDocument = "RETRIEVAL_DOCUMENT"

// Gemini is an embedding provider backed by the Google Gemini API.
type Gemini struct {
	client     *genai.Client
	model      string
	dimensions int
	logger     *zap.Logger
}

// GeminiConfig holds the Gemini provider settings.
type GeminiConfig struct {
	APIKey     string
	Model      string
	Dimensions int
	Logger     *zap.Logger
}

// NewGemini creates a Gemini embedding provider.
func NewGemini(ctx context.Context, cfg *GeminiConfig) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Gemini{
		client:     client,
		model:      cfg.Model,
		dimensions: cfg.Dimensions,
		logger:     logger,
	}, nil
}

func (g *Gemini) Name() string    { return "gemini" }
func (g *Gemini) Model() string   { return g.model }
func (g *Gemini) Dimensions() int { return g.dimensions }

// Embed implements Provider.
func (g *Gemini) Embed(ctx context.Context, text string) ([]float32, error) {
	cfg := &genai.EmbedContentConfig{TaskType: taskTypeDocument}
	if g.dimensions > 0 {
		cfg.OutputDimensionality = genai.Ptr(int32(g.dimensions))
	}

	start := time.Now()
	resp, err := g.client.Models.EmbedContent(ctx, g.model, genai.Text(text), cfg)
	duration := time.Since(start)

	if err != nil {
		metrics.EmbeddingRequestsTotal.WithLabelValues(g.Name(), g.model, "error").Inc()
		return nil, fmt.Errorf("gemini embed: %v: %w", err, ErrProvider)
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		metrics.EmbeddingRequestsTotal.WithLabelValues(g.Name(), g.model, "error").Inc()
		return nil, fmt.Errorf("empty embedding response: %w", ErrProvider)
	}

	metrics.EmbeddingRequestsTotal.WithLabelValues(g.Name(), g.model, "success").Inc()
	metrics.EmbeddingRequestDuration.WithLabelValues(g.Name(), g.model).Observe(duration.Seconds())

	vec := resp.Embeddings[0].Values
	if g.dimensions > 0 && len(vec) != g.dimensions {
		return nil, fmt.Errorf("embedding dimension %d, want %d: %w", len(vec), g.dimensions, ErrProvider)
	}
	return vec, nil
}
