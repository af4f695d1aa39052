package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/palapa-cloud/palapa-etl/internal/config"
	"github.com/palapa-cloud/palapa-etl/internal/dataset"
	"github.com/palapa-cloud/palapa-etl/internal/embedding"
	"github.com/palapa-cloud/palapa-etl/internal/index"
	"github.com/palapa-cloud/palapa-etl/internal/store"
)

// Importer runs the import stage: embed the cleaned table, bulk-load the
// document store and build the vector index.
type Importer struct {
	cfg      config.Config
	provider embedding.Provider
	docs     store.DocumentStore
	logger   *zap.Logger
}

// ImportResult summarises one import run.
type ImportResult struct {
	Total       int
	ZeroVectors int
	Stored      int
	Indexed     int
	IndexDir    string
}

// NewImporter creates the import stage over an embedding provider and a
// document store.
func NewImporter(cfg config.Config, provider embedding.Provider, docs store.DocumentStore, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{cfg: cfg, provider: provider, docs: docs, logger: logger}
}

// Run imports the cleaned table at csvPath. The index is built only over
// records whose documents were durably stored, so positions in the index
// always line up with store ids even when a batch write fails midway.
func (im *Importer) Run(ctx context.Context, csvPath string) (*ImportResult, error) {
	rows, err := dataset.ReadCleaned(csvPath)
	if err != nil {
		return nil, fmt.Errorf("read cleaned table: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("cleaned table %s is empty", csvPath)
	}
	im.logger.Info("cleaned table loaded",
		zap.String("path", csvPath),
		zap.Int("rows", len(rows)))

	texts := make([]string, len(rows))
	for i := range rows {
		texts[i] = rows[i].EmbeddingText()
	}

	batcher := embedding.NewBatcher(&embedding.BatcherConfig{
		Provider:    im.provider,
		Concurrency: im.cfg.Embedding.Concurrency,
		MaxChars:    im.cfg.Embedding.MaxChars,
		Attempts:    im.cfg.Embedding.Attempts,
		Backoff:     time.Duration(im.cfg.Embedding.BackoffSec) * time.Second,
		Logger:      im.logger,
	})
	vectors, err := batcher.EmbedAll(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed records: %w", err)
	}

	result := &ImportResult{Total: len(rows), IndexDir: im.cfg.Index.Dir}
	for i := range rows {
		rows[i].Embedding = vectors[i]
		if embedding.IsZero(vectors[i]) {
			result.ZeroVectors++
		}
	}
	im.logger.Info("embeddings generated",
		zap.Int("records", len(rows)),
		zap.Int("zero_vectors", result.ZeroVectors))

	docs := make([]store.Document, len(rows))
	for i := range rows {
		docs[i] = store.Document{Fields: documentFields(&rows[i])}
	}

	loader := store.NewLoader(im.docs, im.cfg.Store.BatchSize, im.logger)
	ids, err := loader.Load(ctx, docs)
	if err != nil {
		return result, err
	}
	result.Stored = len(ids)

	// Index only what landed in the store. The loader may have skipped a
	// failed batch in the middle, so membership is checked per document.
	committed := make(map[string]bool, len(ids))
	for _, id := range ids {
		committed[id] = true
	}

	builder, err := index.NewBuilder(im.provider.Dimensions())
	if err != nil {
		return result, err
	}
	for i := range rows {
		if !committed[docs[i].ID] {
			continue
		}
		d := &rows[i]
		if err := builder.Add(d.Embedding, index.Entry{
			DocumentID: docs[i].ID,
			Name:       d.Name,
			Category:   d.Category,
			Provinsi:   d.Province,
			IsCultural: d.IsCultural,
			Latitude:   d.Latitude,
			Longitude:  d.Longitude,
		}); err != nil {
			return result, fmt.Errorf("index record %d: %w", i, err)
		}
	}
	result.Indexed = builder.Len()

	idx := builder.Build()
	if err := idx.Save(im.cfg.Index.Dir); err != nil {
		return result, fmt.Errorf("save index: %w", err)
	}
	im.logger.Info("index saved",
		zap.String("dir", im.cfg.Index.Dir),
		zap.Int("vectors", result.Indexed))

	im.selfTest(idx)

	if result.Stored < result.Total {
		im.logger.Warn("some documents were not stored",
			zap.Int("stored", result.Stored),
			zap.Int("total", result.Total))
	}
	return result, nil
}

// selfTest queries the freshly built index with its own first vector and
// logs the top matches. A healthy index returns the probe itself first.
func (im *Importer) selfTest(idx *index.Index) {
	entries := idx.Entries()
	if len(entries) == 0 {
		return
	}
	probe, err := idx.Vector(0)
	if err != nil {
		return
	}
	results, err := idx.Search(probe, 3)
	if err != nil || len(results) == 0 {
		im.logger.Warn("index self-test failed", zap.Error(err))
		return
	}
	names := make([]string, len(results))
	for i, r := range results {
		names[i] = r.Entry.Name
	}
	im.logger.Info("index self-test",
		zap.String("probe", entries[0].Name),
		zap.Strings("matches", names),
		zap.Float32("top_score", results[0].Score))
}

// documentFields flattens a destination into the stored hash. The vector
// is serialized as a JSON array so the serving tier can parse it without
// a custom codec.
func documentFields(d *dataset.Destination) map[string]string {
	vec, _ := json.Marshal(d.Embedding)
	fields := map[string]string{
		"name":             d.Name,
		"category":         d.Category,
		"latitude":         strconv.FormatFloat(d.Latitude, 'f', -1, 64),
		"longitude":        strconv.FormatFloat(d.Longitude, 'f', -1, 64),
		"address":          d.Address,
		"addressCity":      d.AddressCity,
		"provinsi":         d.Province,
		"kotaKabupaten":    d.Regency,
		"description":      d.Description,
		"descriptionClean": d.DescriptionClean,
		"priceRange":       d.PriceRange,
		"isCultural":       strconv.FormatBool(d.IsCultural),
		"embedding":        string(vec),
	}
	if d.Rating != nil {
		fields["rating"] = strconv.FormatFloat(*d.Rating, 'f', -1, 64)
	}
	if d.TimeMinutes != nil {
		fields["timeMinutes"] = strconv.Itoa(*d.TimeMinutes)
	}
	return fields
}
