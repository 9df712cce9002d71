// File: internal/services/embedding/interface.go
package embedding

import "context"

// Provider handles text embeddings
type Provider interface {
	// CreateEmbedding returns the embedding vector for a single text.
	// The dimensionality is fixed by the provider's model.
	CreateEmbedding(ctx context.Context, text string) ([]float32, error)
	// ModelName returns the embedding model in use.
	ModelName() string
	HealthCheck(ctx context.Context) error
}

// Logger interface for embedding operations
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}
