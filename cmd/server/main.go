// File: cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/hackmatch/showcase-search/internal/config"
	"github.com/hackmatch/showcase-search/internal/handlers"
	"github.com/hackmatch/showcase-search/internal/middleware"
	"github.com/hackmatch/showcase-search/internal/services"
	"github.com/hackmatch/showcase-search/internal/services/embedding"
	"github.com/hackmatch/showcase-search/internal/services/ideas"
	"github.com/hackmatch/showcase-search/internal/services/search"
	"github.com/hackmatch/showcase-search/internal/services/vectordb"
)

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {
	cfg := config.Load()
	logger := services.NewLogger("showcase_search")

	// --- Embedding provider ---
	embCfg := embedding.DefaultConfig()
	embCfg.Provider = embedding.ProviderType(cfg.EmbeddingProvider)
	embCfg.NomicAPIKey = cfg.NomicAPIKey
	embCfg.OllamaURL = cfg.OllamaURL
	embCfg.OllamaModel = cfg.OllamaModel

	provider, err := embedding.NewProvider(embCfg, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize embedding provider: %v", err)
	}

	// --- Vector store ---
	storeCfg := vectordb.DefaultConfig()
	storeCfg.URL = cfg.QdrantURL
	storeCfg.APIKey = cfg.QdrantAPIKey

	store, err := vectordb.NewQdrantStore(storeCfg, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize vector store: %v", err)
	}
	defer store.Close()

	// --- Services ---
	sanitizer := search.NewSanitizer(cfg.IsProduction(), provider.ModelName())
	searchService := search.NewService(provider, store, sanitizer, logger)

	// --- Handlers ---
	matchHandler := handlers.NewMatchHandler(searchService, cfg.RetrievalTopK)

	// --- Router Setup ---
	r := mux.NewRouter()
	r.Use(corsMiddleware)
	r.Use(middleware.RecoverPanic)
	r.Use(middleware.LoggingMiddleware)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/match", matchHandler.MatchProjects).Methods("POST")

	// Idea generation is optional; without a Groq key the match API still works.
	if cfg.GroqAPIKey != "" {
		ideasService, err := ideas.NewService(&ideas.Config{APIKey: cfg.GroqAPIKey}, logger)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize ideas service: %v", err)
		}
		ideasHandler := handlers.NewIdeasHandler(ideasService)
		api.HandleFunc("/ideas/generate", ideasHandler.GenerateIdea).Methods("POST")
		api.HandleFunc("/ideas/improve", ideasHandler.ImproveIdea).Methods("POST")
	} else {
		logger.Warn("GROQ_API_KEY not set; idea generation endpoints disabled")
	}

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	logger.Info("server starting", "port", cfg.ServerPort, "provider", cfg.EmbeddingProvider)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	logger.Info("server stopped")
}
