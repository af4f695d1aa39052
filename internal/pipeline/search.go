package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/palapa-cloud/palapa-etl/internal/embedding"
	"github.com/palapa-cloud/palapa-etl/internal/index"
)

// Search embeds the query text and returns the top-k matches from the
// index stored in dir. Meant for smoke-testing a freshly built index.
func Search(ctx context.Context, dir, query string, k int, provider embedding.Provider, logger *zap.Logger) ([]index.Result, error) {
	if query == "" {
		return nil, fmt.Errorf("query is required")
	}
	if k <= 0 {
		k = 5
	}

	idx, err := index.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("load index: %w", err)
	}
	if idx.Dim() != provider.Dimensions() {
		return nil, fmt.Errorf("index dimension %d does not match provider dimension %d",
			idx.Dim(), provider.Dimensions())
	}

	vec, err := provider.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	results, err := idx.Search(vec, k)
	if err != nil {
		return nil, err
	}
	logger.Info("search complete",
		zap.String("query", query),
		zap.Int("top_k", k),
		zap.Int("results", len(results)))
	return results, nil
}
