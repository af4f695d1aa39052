// Package pipeline wires the stages together: merge raw sources into the
// cleaned table, import it into the document store and vector index, and
// query a built index.
package pipeline

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/palapa-cloud/palapa-etl/internal/config"
	"github.com/palapa-cloud/palapa-etl/internal/dataset"
)

// Merge runs the merge stage: load every configured source, clean and
// deduplicate, and write the canonical CSV.
func Merge(cfg config.Config, logger *zap.Logger) (dataset.MergeStats, error) {
	if len(cfg.Sources) == 0 {
		return dataset.MergeStats{}, fmt.Errorf("no sources configured")
	}

	sources := make([]dataset.Source, len(cfg.Sources))
	for i, s := range cfg.Sources {
		sources[i] = dataset.Source{Name: s.Name, Path: s.Path, Mapping: s.Mapping}
	}

	rows, stats, err := dataset.NewMerger(logger).Merge(sources)
	if err != nil {
		return stats, err
	}

	if err := dataset.WriteCleaned(cfg.Merge.OutputPath, rows); err != nil {
		return stats, fmt.Errorf("write cleaned table: %w", err)
	}

	logger.Info("cleaned table written",
		zap.String("path", cfg.Merge.OutputPath),
		zap.Int("rows", stats.Kept))
	return stats, nil
}
