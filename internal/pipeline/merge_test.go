package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/palapa-cloud/palapa-etl/internal/config"
	"github.com/palapa-cloud/palapa-etl/internal/dataset"
)

func TestMergePipeline(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "raw.csv")
	raw := "" +
		"name,latitude,longitude,description,category,provinsi\n" +
		"Candi Borobudur,-7.6079,110.2038,Candi Buddha terbesar,Budaya,Jawa Tengah\n" +
		"candi borobudur,-7.6081,110.2041,Duplikat,Budaya,Jawa Tengah\n" +
		"Big Ben,51.5007,-0.1246,Bukan di Indonesia,Budaya,\n"
	if err := os.WriteFile(src, []byte(raw), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	cfg := config.Config{}
	cfg.ApplyDefaults()
	cfg.Sources = []config.SourceConfig{{Name: "raw", Path: src, Mapping: "generic"}}
	cfg.Merge.OutputPath = filepath.Join(dir, "out", "cleaned.csv")

	stats, err := Merge(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if stats.Kept != 1 {
		t.Fatalf("Kept = %d, want 1", stats.Kept)
	}
	if stats.DroppedDuplicates != 1 || stats.DroppedOutOfBounds != 1 {
		t.Errorf("stats = %+v", stats)
	}

	rows, err := dataset.ReadCleaned(cfg.Merge.OutputPath)
	if err != nil {
		t.Fatalf("ReadCleaned: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "Candi Borobudur" {
		t.Fatalf("unexpected output rows: %+v", rows)
	}
	if !rows[0].IsCultural {
		t.Errorf("budaya record should be cultural")
	}
}

func TestMergePipelineNoSources(t *testing.T) {
	cfg := config.Config{}
	cfg.ApplyDefaults()
	if _, err := Merge(cfg, zap.NewNop()); err == nil {
		t.Fatal("expected error with no sources")
	}
}
