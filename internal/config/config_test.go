package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidate_InvalidProvider(t *testing.T) {
	cfg := Config{
		Embedding: EmbeddingConfig{Provider: "huggingface", Dimensions: 768},
		Metrics:   MetricsConfig{Port: 9090},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown embedding provider")
	}

	expected := `embedding.provider must be "gemini" or "openai", got "huggingface"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_ValidProviders(t *testing.T) {
	for _, provider := range []string{"gemini", "openai"} {
		t.Run("provider="+provider, func(t *testing.T) {
			cfg := Config{
				Embedding: EmbeddingConfig{Provider: provider, Dimensions: 768},
				Metrics:   MetricsConfig{Port: 9090},
			}
			if err := cfg.Validate(); err != nil {
				t.Fatalf("unexpected error for provider %q: %v", provider, err)
			}
		})
	}
}

func TestValidate_SourceWithoutPath(t *testing.T) {
	cfg := Config{
		Sources:   []SourceConfig{{Name: "tourism"}},
		Embedding: EmbeddingConfig{Provider: "gemini", Dimensions: 768},
		Metrics:   MetricsConfig{Port: 9090},
	}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for source without path")
	}
}

func TestValidate_InvalidMetricsPort(t *testing.T) {
	cfg := Config{
		Embedding: EmbeddingConfig{Provider: "gemini", Dimensions: 768},
		Metrics:   MetricsConfig{Port: 70000},
	}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid metrics port")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.Embedding.Provider != "gemini" {
		t.Errorf("expected Provider=gemini, got %q", cfg.Embedding.Provider)
	}
	if cfg.Embedding.Model != "text-embedding-004" {
		t.Errorf("expected Model=text-embedding-004, got %q", cfg.Embedding.Model)
	}
	if cfg.Embedding.Dimensions != 768 {
		t.Errorf("expected Dimensions=768, got %d", cfg.Embedding.Dimensions)
	}
	if cfg.Embedding.MaxChars != 500 {
		t.Errorf("expected MaxChars=500, got %d", cfg.Embedding.MaxChars)
	}
	if cfg.Embedding.Concurrency != 4 {
		t.Errorf("expected Concurrency=4, got %d", cfg.Embedding.Concurrency)
	}
	if cfg.Embedding.Attempts != 3 {
		t.Errorf("expected Attempts=3, got %d", cfg.Embedding.Attempts)
	}
	if cfg.Store.BatchSize != 500 {
		t.Errorf("expected BatchSize=500, got %d", cfg.Store.BatchSize)
	}
	if cfg.Store.KeyPrefix != "destinations" {
		t.Errorf("expected KeyPrefix=destinations, got %q", cfg.Store.KeyPrefix)
	}
	if cfg.Store.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Store.ReadinessTimeout)
	}
	if cfg.Index.Dir != "index" {
		t.Errorf("expected Index.Dir=index, got %q", cfg.Index.Dir)
	}
	if cfg.Metrics.Port != 9090 {
		t.Errorf("expected Metrics.Port=9090, got %d", cfg.Metrics.Port)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		Embedding: EmbeddingConfig{
			Provider: "openai", Model: "custom-model", Dimensions: 1024,
			MaxChars: 1000, Concurrency: 2, Attempts: 5, BackoffSec: 3,
		},
		Store: StoreConfig{BatchSize: 100, KeyPrefix: "custom", ReadinessTimeout: 15},
		Index: IndexConfig{Dir: "out"},
	}
	cfg.ApplyDefaults()

	if cfg.Embedding.Provider != "openai" {
		t.Errorf("expected Provider=openai, got %q", cfg.Embedding.Provider)
	}
	if cfg.Embedding.Dimensions != 1024 {
		t.Errorf("expected Dimensions=1024, got %d", cfg.Embedding.Dimensions)
	}
	if cfg.Store.BatchSize != 100 {
		t.Errorf("expected BatchSize=100, got %d", cfg.Store.BatchSize)
	}
	if cfg.Index.Dir != "out" {
		t.Errorf("expected Index.Dir=out, got %q", cfg.Index.Dir)
	}
}

func TestApplyDefaults_SourceMapping(t *testing.T) {
	cfg := Config{
		Sources: []SourceConfig{
			{Name: "a", Path: "a.csv"},
			{Name: "b", Path: "b.csv", Mapping: "tourism_with_id"},
		},
	}
	cfg.ApplyDefaults()

	if cfg.Sources[0].Mapping != "generic" {
		t.Errorf("expected default mapping=generic, got %q", cfg.Sources[0].Mapping)
	}
	if cfg.Sources[1].Mapping != "tourism_with_id" {
		t.Errorf("explicit mapping overwritten: %q", cfg.Sources[1].Mapping)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("PALAPA_TEST_KEY", "secret")

	in := []byte("api_key: ${PALAPA_TEST_KEY}\nmodel: ${PALAPA_TEST_MODEL:-text-embedding-004}\n")
	out := string(expandEnvVars(in))

	if out != "api_key: secret\nmodel: text-embedding-004\n" {
		t.Errorf("unexpected expansion:\n%s", out)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	cfgDir := filepath.Join(dir, "config")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	content := `
sources:
  - name: tourism
    path: data/tourism_with_id.csv
    mapping: tourism_with_id
embedding:
  provider: gemini
  api_key: ${PALAPA_TEST_API_KEY:-dummy}
store:
  addrs: ["localhost:6379"]
`
	if err := os.WriteFile(filepath.Join(cfgDir, "test.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Chdir(wd) }()

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Sources) != 1 || cfg.Sources[0].Mapping != "tourism_with_id" {
		t.Errorf("sources not loaded: %+v", cfg.Sources)
	}
	if cfg.Embedding.APIKey != "dummy" {
		t.Errorf("env default not applied: %q", cfg.Embedding.APIKey)
	}
	if cfg.Embedding.Dimensions != 768 {
		t.Errorf("defaults not applied after load: %d", cfg.Embedding.Dimensions)
	}
}
