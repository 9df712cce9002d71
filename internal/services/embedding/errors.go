// File: internal/services/embedding/errors.go
package embedding

import "fmt"

type ErrorType string

const (
	ErrTypeConnectionRefused ErrorType = "CONNECTION_REFUSED"
	ErrTypeModelNotFound     ErrorType = "MODEL_NOT_FOUND"
	ErrTypeMissingAPIKey     ErrorType = "MISSING_API_KEY"
	ErrTypeAuthFailed        ErrorType = "AUTH_FAILED"
	ErrTypeRateLimit         ErrorType = "RATE_LIMIT"
	ErrTypeInvalidRequest    ErrorType = "INVALID_REQUEST"
	ErrTypeServerError       ErrorType = "SERVER_ERROR"
	ErrTypeHTTP              ErrorType = "HTTP_ERROR"
	ErrTypeEmbedding         ErrorType = "EMBEDDING_ERROR"
	ErrTypeOllama            ErrorType = "OLLAMA_ERROR"
)

// EmbeddingError carries the classified kind plus the HTTP status when the
// failure came from a transport response. Code is 0 for non-HTTP failures.
type EmbeddingError struct {
	Type    ErrorType
	Code    int
	Message string
	Model   string
	Cause   error
}

func (e *EmbeddingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("embedding %s error: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("embedding %s error: %s", e.Type, e.Message)
}

func (e *EmbeddingError) Unwrap() error {
	return e.Cause
}

// ErrNoEmbeddings is raised when a backend responds successfully but with an
// empty embeddings array. Callers must never see an empty vector instead.
func ErrNoEmbeddings(model string) *EmbeddingError {
	return &EmbeddingError{
		Type:    ErrTypeEmbedding,
		Message: "no embeddings returned",
		Model:   model,
	}
}

func NewMissingAPIKeyError(provider string) *EmbeddingError {
	return &EmbeddingError{
		Type:    ErrTypeMissingAPIKey,
		Message: fmt.Sprintf("%s API key is required", provider),
	}
}
