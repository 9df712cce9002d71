// File: internal/services/embedding/ollama_provider.go
package embedding

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// OllamaProvider talks to a local Ollama instance over its /api/embed
// endpoint. The host address is fixed at construction; nothing reads the
// environment after that.
type OllamaProvider struct {
	baseURL string
	model   string
	client  *http.Client
	logger  Logger
}

func NewOllamaProvider(cfg *Config, logger Logger) (*OllamaProvider, error) {
	cfg.applyDefaults()
	return &OllamaProvider{
		baseURL: strings.TrimRight(cfg.OllamaURL, "/"),
		model:   cfg.OllamaModel,
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}, nil
}

func (p *OllamaProvider) ModelName() string {
	return p.model
}

func (p *OllamaProvider) CreateEmbedding(ctx context.Context, text string) ([]float32, error) {
	var parsed struct {
		Embeddings [][]float32 `json:"embeddings"`
	}

	body := map[string]any{
		"model": p.model,
		"input": text,
	}

	err := postJSON(ctx, p.client, p.baseURL+"/api/embed", "", body, &parsed)
	if err != nil {
		return nil, p.classify(err)
	}

	if len(parsed.Embeddings) == 0 || len(parsed.Embeddings[0]) == 0 {
		return nil, ErrNoEmbeddings(p.model)
	}

	p.logger.Debug("created embedding", "model", p.model, "dimension", len(parsed.Embeddings[0]))
	return parsed.Embeddings[0], nil
}

// classify maps transport failures to the Ollama error kinds. Connection
// refused and missing-model conditions get distinct kinds so the caller can
// show remediation hints; everything else collapses to OLLAMA_ERROR.
func (p *OllamaProvider) classify(err error) *EmbeddingError {
	var httpErr *httpError
	if errors.As(err, &httpErr) {
		if httpErr.StatusCode == http.StatusNotFound || strings.Contains(string(httpErr.Body), "not found") {
			return &EmbeddingError{
				Type:    ErrTypeModelNotFound,
				Code:    httpErr.StatusCode,
				Message: fmt.Sprintf("model %q not found - pull it with: ollama pull %s", p.model, p.model),
				Model:   p.model,
				Cause:   err,
			}
		}
		return &EmbeddingError{
			Type:    ErrTypeOllama,
			Code:    httpErr.StatusCode,
			Message: httpErr.bodyMessage(),
			Model:   p.model,
			Cause:   err,
		}
	}

	if strings.Contains(err.Error(), "connection refused") {
		return &EmbeddingError{
			Type: ErrTypeConnectionRefused,
			Message: fmt.Sprintf(
				"cannot reach Ollama at %s - start it with: ollama serve, then: ollama pull %s",
				p.baseURL, p.model),
			Model: p.model,
			Cause: err,
		}
	}

	return &EmbeddingError{
		Type:    ErrTypeOllama,
		Message: err.Error(),
		Model:   p.model,
		Cause:   err,
	}
}

// HealthCheck hits the Ollama root endpoint, which answers on any running
// instance without touching a model.
func (p *OllamaProvider) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/", nil)
	if err != nil {
		return err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return p.classify(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return &EmbeddingError{
			Type:    ErrTypeOllama,
			Code:    resp.StatusCode,
			Message: fmt.Sprintf("health check failed with HTTP %d", resp.StatusCode),
		}
	}
	return nil
}
