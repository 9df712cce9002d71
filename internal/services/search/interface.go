// File: internal/services/search/interface.go
package search

import (
	"context"

	"github.com/hackmatch/showcase-search/internal/services/vectordb"
)

// EmbeddingProvider is the slice of the embedding service this package needs.
type EmbeddingProvider interface {
	CreateEmbedding(ctx context.Context, text string) ([]float32, error)
	ModelName() string
}

// VectorSearcher is the slice of the vector store this package needs.
type VectorSearcher interface {
	Search(ctx context.Context, collection string, params vectordb.SearchParams) ([]vectordb.SearchHit, error)
}

// Logger interface for search operations
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}
