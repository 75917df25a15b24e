package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"

	"sales-agent/internal/config"
	"sales-agent/internal/llm"
	"sales-agent/internal/logger"
	"sales-agent/internal/store"
)

// Deps bundles common runtime dependencies for handlers.
type Deps struct {
	Config config.Config
	Log    *slog.Logger
	Tables store.TableStore
	LLM    llm.Client
}

// Build loads env, config, and shared components.
func Build() (Deps, error) {
	// .env is optional; real environment variables win either way.
	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	tables := store.NewFileStore(cfg.CSVPath)
	log.Info("using file table store", "path", cfg.CSVPath)

	client, err := llm.NewOllamaClient(cfg.OllamaHost, cfg.OllamaModel, time.Duration(cfg.GenerateTimeout)*time.Second)
	if err != nil {
		return Deps{}, fmt.Errorf("failed to initialize ollama client: %w", err)
	}
	log.Info("using ollama backend", "host", cfg.OllamaHost, "model", cfg.OllamaModel)

	return Deps{
		Config: cfg,
		Log:    log,
		Tables: tables,
		LLM:    client,
	}, nil
}
