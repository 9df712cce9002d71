// File: internal/services/embedding/config.go
package embedding

import (
	"fmt"
	"time"
)

// ProviderType is the closed set of embedding backends.
type ProviderType string

const (
	ProviderOllama ProviderType = "ollama"
	ProviderNomic  ProviderType = "nomic"
)

const (
	DefaultOllamaURL   = "http://localhost:11434"
	DefaultOllamaModel = "nomic-embed-text"
	DefaultNomicURL    = "https://api-atlas.nomic.ai"
	DefaultNomicModel  = "nomic-embed-text-v1.5"
)

type Config struct {
	Provider ProviderType

	// Ollama (local inference)
	OllamaURL   string
	OllamaModel string

	// Nomic Atlas (hosted)
	NomicAPIKey string
	NomicURL    string
	NomicModel  string

	Timeout time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		Provider:    ProviderNomic,
		OllamaURL:   DefaultOllamaURL,
		OllamaModel: DefaultOllamaModel,
		NomicURL:    DefaultNomicURL,
		NomicModel:  DefaultNomicModel,
		Timeout:     30 * time.Second,
	}
}

func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderOllama, ProviderNomic:
	default:
		return fmt.Errorf("unsupported embedding provider: %q", c.Provider)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

// applyDefaults fills in hard defaults for anything left blank, so explicit
// config always wins over the defaults.
func (c *Config) applyDefaults() {
	if c.OllamaURL == "" {
		c.OllamaURL = DefaultOllamaURL
	}
	if c.OllamaModel == "" {
		c.OllamaModel = DefaultOllamaModel
	}
	if c.NomicURL == "" {
		c.NomicURL = DefaultNomicURL
	}
	if c.NomicModel == "" {
		c.NomicModel = DefaultNomicModel
	}
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
}
