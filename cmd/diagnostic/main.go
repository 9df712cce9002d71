// File: cmd/diagnostic/main.go
//
// Connectivity checks for the configured Qdrant instance and embedding
// backend. Useful before a crawl or a dedupe run.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hackmatch/showcase-search/internal/config"
	"github.com/hackmatch/showcase-search/internal/services"
	"github.com/hackmatch/showcase-search/internal/services/embedding"
	"github.com/hackmatch/showcase-search/internal/services/vectordb"
)

func main() {
	cfg := config.Load()
	logger := services.NewLogger("diagnostic")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	failed := false

	// --- Qdrant ---
	storeCfg := vectordb.DefaultConfig()
	storeCfg.URL = cfg.QdrantURL
	storeCfg.APIKey = cfg.QdrantAPIKey

	store, err := vectordb.NewQdrantStore(storeCfg, logger)
	if err != nil {
		fmt.Printf("[FAIL] qdrant client: %v\n", err)
		failed = true
	} else {
		defer store.Close()
		if err := store.HealthCheck(ctx); err != nil {
			fmt.Printf("[FAIL] qdrant health: %v\n", err)
			failed = true
		} else {
			fmt.Println("[ OK ] qdrant reachable")
		}
	}

	// --- Embedding backend ---
	embCfg := embedding.DefaultConfig()
	embCfg.Provider = embedding.ProviderType(cfg.EmbeddingProvider)
	embCfg.NomicAPIKey = cfg.NomicAPIKey
	embCfg.OllamaURL = cfg.OllamaURL
	embCfg.OllamaModel = cfg.OllamaModel

	provider, err := embedding.NewProvider(embCfg, logger)
	if err != nil {
		fmt.Printf("[FAIL] embedding provider: %v\n", err)
		failed = true
	} else {
		vector, err := provider.CreateEmbedding(ctx, "diagnostic probe")
		if err != nil {
			fmt.Printf("[FAIL] embedding probe: %v\n", err)
			failed = true
		} else {
			fmt.Printf("[ OK ] embedding probe (%s, dimension %d)\n", provider.ModelName(), len(vector))
		}
	}

	if failed {
		os.Exit(1)
	}
}
