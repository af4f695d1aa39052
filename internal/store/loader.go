package store

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/palapa-cloud/palapa-etl/internal/metrics"
)

// Loader writes documents into a DocumentStore in fixed-size batches.
type Loader struct {
	store     DocumentStore
	batchSize int
	logger    *zap.Logger
	now       func() time.Time
}

// NewLoader creates a batch loader. batchSize values below 1 fall back
// to 1.
func NewLoader(s DocumentStore, batchSize int, logger *zap.Logger) *Loader {
	if batchSize < 1 {
		batchSize = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{store: s, batchSize: batchSize, logger: logger, now: time.Now}
}

// Load assigns ids and timestamps to the documents and writes everything
// in batches. A failing batch is logged and skipped; later batches are
// still attempted. The returned slice holds the ids of committed
// documents only, in commit order, so len(ids) < len(docs) signals
// partial failure. The returned error is non-nil only for cancellation.
func (l *Loader) Load(ctx context.Context, docs []Document) ([]string, error) {
	stamp := l.now().UTC().Format(time.RFC3339)
	for i := range docs {
		if docs[i].ID == "" {
			docs[i].ID = l.store.GenerateID()
		}
		if docs[i].Fields == nil {
			docs[i].Fields = make(map[string]string, 2)
		}
		docs[i].Fields["createdAt"] = stamp
		docs[i].Fields["updatedAt"] = stamp
	}

	committed := make([]string, 0, len(docs))
	for start := 0; start < len(docs); start += l.batchSize {
		if err := ctx.Err(); err != nil {
			return committed, err
		}

		end := start + l.batchSize
		if end > len(docs) {
			end = len(docs)
		}
		batch := docs[start:end]

		began := l.now()
		err := l.store.BatchWrite(ctx, batch)
		elapsed := l.now().Sub(began)

		if err != nil {
			metrics.StoreBatchesTotal.WithLabelValues("error").Inc()
			metrics.StoreBatchDuration.WithLabelValues("error").Observe(elapsed.Seconds())
			l.logger.Warn("batch commit failed, skipping",
				zap.Int("from", start),
				zap.Int("to", end-1),
				zap.Error(err))
			continue
		}

		metrics.StoreBatchesTotal.WithLabelValues("success").Inc()
		metrics.StoreBatchDuration.WithLabelValues("success").Observe(elapsed.Seconds())
		for i := range batch {
			committed = append(committed, batch[i].ID)
		}

		l.logger.Info("batch committed",
			zap.Int("from", start),
			zap.Int("to", end-1),
			zap.Duration("took", elapsed))
	}

	if len(committed) < len(docs) {
		l.logger.Warn("load incomplete",
			zap.Int("committed", len(committed)),
			zap.Int("total", len(docs)))
	}
	return committed, nil
}
