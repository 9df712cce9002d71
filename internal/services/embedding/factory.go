// File: internal/services/embedding/factory.go
package embedding

import "fmt"

// NewProvider constructs the embedding backend matching cfg.Provider.
// Unknown provider tags are rejected here, never at call time.
func NewProvider(cfg *Config, logger Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Provider {
	case ProviderOllama:
		return NewOllamaProvider(cfg, logger)
	case ProviderNomic:
		return NewNomicProvider(cfg, logger)
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %q", cfg.Provider)
	}
}
