// File: internal/services/embedding/nomic_provider.go
package embedding

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// NomicProvider calls the hosted Nomic Atlas embedding API with bearer auth.
type NomicProvider struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	logger  Logger
}

// NewNomicProvider fails fast when no API key is configured, before any
// network call is ever attempted.
func NewNomicProvider(cfg *Config, logger Logger) (*NomicProvider, error) {
	if cfg.NomicAPIKey == "" {
		return nil, NewMissingAPIKeyError("nomic")
	}
	cfg.applyDefaults()
	return &NomicProvider{
		baseURL: strings.TrimRight(cfg.NomicURL, "/"),
		apiKey:  cfg.NomicAPIKey,
		model:   cfg.NomicModel,
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}, nil
}

func (p *NomicProvider) ModelName() string {
	return p.model
}

func (p *NomicProvider) CreateEmbedding(ctx context.Context, text string) ([]float32, error) {
	var parsed struct {
		Embeddings [][]float32 `json:"embeddings"`
	}

	body := map[string]any{
		"model": p.model,
		"texts": []string{text},
	}

	err := postJSON(ctx, p.client, p.baseURL+"/v1/embedding/text", p.apiKey, body, &parsed)
	if err != nil {
		return nil, p.classify(err)
	}

	if len(parsed.Embeddings) == 0 || len(parsed.Embeddings[0]) == 0 {
		return nil, ErrNoEmbeddings(p.model)
	}

	p.logger.Debug("created embedding", "model", p.model, "dimension", len(parsed.Embeddings[0]))
	return parsed.Embeddings[0], nil
}

// classify maps HTTP statuses from the Nomic API onto embedding error kinds.
func (p *NomicProvider) classify(err error) *EmbeddingError {
	var httpErr *httpError
	if !errors.As(err, &httpErr) {
		// Network-level failure, no status to go on.
		return &EmbeddingError{
			Type:    ErrTypeEmbedding,
			Message: err.Error(),
			Model:   p.model,
			Cause:   err,
		}
	}

	e := &EmbeddingError{
		Code:  httpErr.StatusCode,
		Model: p.model,
		Cause: err,
	}

	switch {
	case httpErr.StatusCode == http.StatusUnauthorized || httpErr.StatusCode == http.StatusForbidden:
		e.Type = ErrTypeAuthFailed
		e.Message = "authentication failed - check NOMIC_API_KEY"
	case httpErr.StatusCode == http.StatusTooManyRequests:
		e.Type = ErrTypeRateLimit
		e.Message = "rate limit exceeded"
	case httpErr.StatusCode == http.StatusBadRequest:
		e.Type = ErrTypeInvalidRequest
		e.Message = httpErr.bodyMessage()
	case httpErr.StatusCode >= 500:
		e.Type = ErrTypeServerError
		e.Message = "embedding service unavailable"
	default:
		e.Type = ErrTypeHTTP
		e.Message = httpErr.Error()
	}
	return e
}

// HealthCheck is a no-op for the hosted API; a real probe would spend quota.
func (p *NomicProvider) HealthCheck(ctx context.Context) error {
	return nil
}
