package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/palapa-cloud/palapa-etl/internal/config"
	"github.com/palapa-cloud/palapa-etl/internal/embedding"
	logpkg "github.com/palapa-cloud/palapa-etl/internal/logger"
	"github.com/palapa-cloud/palapa-etl/internal/metrics"
	"github.com/palapa-cloud/palapa-etl/internal/pipeline"
	redisstore "github.com/palapa-cloud/palapa-etl/internal/store/redis"
	"github.com/palapa-cloud/palapa-etl/internal/version"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: palapa-etl <command> [flags]

Commands:
  merge    merge and clean the raw CSV sources into the canonical table
  import   embed the cleaned table, load the document store, build the index
  search   query a built index (smoke test)

Run "palapa-etl <command> -h" for command flags.
`)
}

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	command := os.Args[1]
	args := os.Args[2:]

	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting palapa-etl",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.String("command", command),
	)

	metrics.RegisterPipelineMetrics()
	if cfg.Metrics.Enabled {
		srv := metrics.NewServer(cfg.Metrics.Port, logger)
		srv.Start()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch command {
	case "merge":
		runMerge(cfg, logger)
	case "import":
		runImport(ctx, cfg, logger, args)
	case "search":
		runSearch(ctx, cfg, logger, args)
	default:
		usage()
		os.Exit(2)
	}
}

func runMerge(cfg config.Config, logger *zap.Logger) {
	stats, err := pipeline.Merge(cfg, logger)
	if err != nil {
		logger.Fatal("Merge failed", zap.Error(err))
	}
	logger.Info("Merge complete",
		zap.Int("total_rows", stats.TotalRows),
		zap.Int("kept", stats.Kept),
		zap.Int("dropped_no_coords", stats.DroppedNoCoords),
		zap.Int("dropped_out_of_bounds", stats.DroppedOutOfBounds),
		zap.Int("dropped_duplicates", stats.DroppedDuplicates),
	)
}

func runImport(ctx context.Context, cfg config.Config, logger *zap.Logger, args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	input := fs.String("input", cfg.Merge.OutputPath, "cleaned CSV to import")
	_ = fs.Parse(args)

	provider := buildProvider(ctx, cfg, logger)

	docs, err := redisstore.NewStore(redisstore.Config{
		Addrs:     cfg.Store.Addrs,
		Username:  cfg.Store.Username,
		Password:  cfg.Store.Password,
		DB:        cfg.Store.DB,
		KeyPrefix: cfg.Store.KeyPrefix,
	})
	if err != nil {
		logger.Fatal("Failed to create document store", zap.Error(err))
	}
	defer docs.Close()

	readiness := time.Duration(cfg.Store.ReadinessTimeout) * time.Second
	if err := docs.WaitForReady(ctx, readiness); err != nil {
		logger.Fatal("Document store not ready", zap.Error(err))
	}
	logger.Info("Connected to document store", zap.Strings("addrs", cfg.Store.Addrs))

	importer := pipeline.NewImporter(cfg, provider, docs, logger)
	result, err := importer.Run(ctx, *input)
	if err != nil {
		logger.Fatal("Import failed", zap.Error(err))
	}
	logger.Info("Import complete",
		zap.Int("total", result.Total),
		zap.Int("stored", result.Stored),
		zap.Int("indexed", result.Indexed),
		zap.Int("zero_vectors", result.ZeroVectors),
		zap.String("index_dir", result.IndexDir),
	)
}

func runSearch(ctx context.Context, cfg config.Config, logger *zap.Logger, args []string) {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	query := fs.String("query", "", "query text")
	topK := fs.Int("k", 5, "number of results")
	dir := fs.String("index", cfg.Index.Dir, "index directory")
	_ = fs.Parse(args)

	provider := buildProvider(ctx, cfg, logger)

	results, err := pipeline.Search(ctx, *dir, *query, *topK, provider, logger)
	if err != nil {
		logger.Fatal("Search failed", zap.Error(err))
	}
	for i, r := range results {
		fmt.Printf("%2d. %-40s %-20s score=%.4f\n", i+1, r.Entry.Name, r.Entry.Provinsi, r.Score)
	}
}

// buildProvider picks the embedding provider from config.
func buildProvider(ctx context.Context, cfg config.Config, logger *zap.Logger) embedding.Provider {
	switch cfg.Embedding.Provider {
	case "gemini":
		provider, err := embedding.NewGemini(ctx, &embedding.GeminiConfig{
			APIKey:     cfg.Embedding.APIKey,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
			Logger:     logger,
		})
		if err != nil {
			logger.Fatal("Failed to create embedding provider", zap.Error(err))
		}
		return provider
	case "openai":
		return embedding.NewOpenAI(&embedding.OpenAIConfig{
			APIKey:     cfg.Embedding.APIKey,
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
			Logger:     logger,
		})
	default:
		logger.Fatal("Unknown embedding provider", zap.String("provider", cfg.Embedding.Provider))
		return nil
	}
}
