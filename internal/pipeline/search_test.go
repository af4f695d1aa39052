package pipeline

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/palapa-cloud/palapa-etl/internal/index"
)

func savedIndexDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	builder, err := index.NewBuilder(3)
	if err != nil {
		t.Fatalf("NewBuilder: %v", err)
	}
	adds := []struct {
		vec []float32
		e   index.Entry
	}{
		{[]float32{1, 0, 0}, index.Entry{DocumentID: "doc-1", Name: "Monas", Provinsi: "DKI Jakarta"}},
		{[]float32{0, 1, 0}, index.Entry{DocumentID: "doc-2", Name: "Pantai Kuta", Provinsi: "Bali"}},
		{[]float32{0, 0, 1}, index.Entry{DocumentID: "doc-3", Name: "Kawah Ijen", Provinsi: "Jawa Timur"}},
	}
	for _, a := range adds {
		if err := builder.Add(a.vec, a.e); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	if err := builder.Build().Save(dir); err != nil {
		t.Fatalf("Save: %v", err)
	}
	return dir
}

func TestSearchPipeline(t *testing.T) {
	dir := savedIndexDir(t)
	provider := &fakeProvider{vectors: map[string][]float32{
		"pantai di bali": {0, 1, 0},
	}}

	results, err := Search(context.Background(), dir, "pantai di bali", 2, provider, zap.NewNop())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Entry.Name != "Pantai Kuta" {
		t.Errorf("best match = %q, want Pantai Kuta", results[0].Entry.Name)
	}
	if results[0].Score < 0.99 {
		t.Errorf("score = %f, want ~1", results[0].Score)
	}
}

func TestSearchPipelineDefaultK(t *testing.T) {
	dir := savedIndexDir(t)
	provider := &fakeProvider{vectors: map[string][]float32{}}

	// k defaults to 5 and is clamped to the index size.
	results, err := Search(context.Background(), dir, "apa saja", 0, provider, zap.NewNop())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("got %d results, want 3", len(results))
	}
}

func TestSearchPipelineEmptyQuery(t *testing.T) {
	dir := savedIndexDir(t)
	if _, err := Search(context.Background(), dir, "", 5, &fakeProvider{}, zap.NewNop()); err == nil {
		t.Fatal("expected error for empty query")
	}
}

func TestSearchPipelineDimensionMismatch(t *testing.T) {
	dir := savedIndexDir(t)
	wide := &wideProvider{}
	if _, err := Search(context.Background(), dir, "pantai", 5, wide, zap.NewNop()); err == nil {
		t.Fatal("expected dimension mismatch error")
	}
}

type wideProvider struct{}

func (w *wideProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	return make([]float32, 8), nil
}
func (w *wideProvider) Name() string    { return "wide" }
func (w *wideProvider) Model() string   { return "wide-model" }
func (w *wideProvider) Dimensions() int { return 8 }
