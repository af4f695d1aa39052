package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the palapa-etl pipeline configuration.
type Config struct {
	Sources   []SourceConfig  `yaml:"sources"`
	Merge     MergeConfig     `yaml:"merge"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Store     StoreConfig     `yaml:"store"`
	Index     IndexConfig     `yaml:"index"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// SourceConfig describes one raw CSV input.
type SourceConfig struct {
	Name    string `yaml:"name"`
	Path    string `yaml:"path"`
	Mapping string `yaml:"mapping"` // tourism_with_id, wisata_final, wisata_new, generic
}

// MergeConfig holds merge stage settings.
type MergeConfig struct {
	OutputPath string `yaml:"output_path"`
}

// EmbeddingConfig holds embedding provider settings.
type EmbeddingConfig struct {
	Provider    string `yaml:"provider"` // gemini, openai
	APIKey      string `yaml:"api_key"`
	BaseURL     string `yaml:"base_url"` // openai-compatible endpoints only
	Model       string `yaml:"model"`
	Dimensions  int    `yaml:"dimensions"`
	MaxChars    int    `yaml:"max_chars"`
	Concurrency int    `yaml:"concurrency"`
	Attempts    int    `yaml:"attempts"`
	BackoffSec  int    `yaml:"backoff_sec"`
}

// StoreConfig holds document store connection settings.
type StoreConfig struct {
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	KeyPrefix        string   `yaml:"key_prefix"`
	BatchSize        int      `yaml:"batch_size"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// IndexConfig holds vector index output settings.
type IndexConfig struct {
	Dir string `yaml:"dir"`
}

// MetricsConfig holds the metrics HTTP endpoint settings.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Merge.OutputPath == "" {
		c.Merge.OutputPath = filepath.Join("data", "wisata_indonesia_merged_clean.csv")
	}
	if c.Embedding.Provider == "" {
		c.Embedding.Provider = "gemini"
	}
	if c.Embedding.Model == "" {
		c.Embedding.Model = "text-embedding-004"
	}
	if c.Embedding.Dimensions <= 0 {
		c.Embedding.Dimensions = 768
	}
	if c.Embedding.MaxChars <= 0 {
		c.Embedding.MaxChars = 500
	}
	if c.Embedding.Concurrency <= 0 {
		c.Embedding.Concurrency = 4
	}
	if c.Embedding.Attempts <= 0 {
		c.Embedding.Attempts = 3
	}
	if c.Embedding.BackoffSec <= 0 {
		c.Embedding.BackoffSec = 1
	}
	if len(c.Store.Addrs) == 0 {
		c.Store.Addrs = []string{"localhost:6379"}
	}
	if c.Store.KeyPrefix == "" {
		c.Store.KeyPrefix = "destinations"
	}
	if c.Store.BatchSize <= 0 {
		c.Store.BatchSize = 500
	}
	if c.Store.ReadinessTimeout <= 0 {
		c.Store.ReadinessTimeout = 10
	}
	if c.Index.Dir == "" {
		c.Index.Dir = "index"
	}
	if c.Metrics.Port <= 0 {
		c.Metrics.Port = 9090
	}
	for i := range c.Sources {
		if c.Sources[i].Mapping == "" {
			c.Sources[i].Mapping = "generic"
		}
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	switch c.Embedding.Provider {
	case "gemini", "openai":
		// ok
	default:
		return fmt.Errorf("embedding.provider must be \"gemini\" or \"openai\", got %q",
			c.Embedding.Provider)
	}
	if c.Embedding.Dimensions <= 0 {
		return fmt.Errorf("embedding.dimensions must be positive, got %d", c.Embedding.Dimensions)
	}
	if c.Metrics.Port <= 0 || c.Metrics.Port > 65535 {
		return fmt.Errorf("metrics.port must be between 1 and 65535, got %d", c.Metrics.Port)
	}
	for i, src := range c.Sources {
		if src.Name == "" {
			return fmt.Errorf("sources[%d].name is required", i)
		}
		if src.Path == "" {
			return fmt.Errorf("sources[%d].path is required", i)
		}
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
