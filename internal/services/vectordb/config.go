// File: internal/services/vectordb/config.go
package vectordb

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

type Config struct {
	// URL is the Qdrant endpoint, e.g. "http://localhost:6334" or
	// "https://xyz.cloud.qdrant.io:6334".
	URL    string
	APIKey string

	Timeout time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		URL:     "http://localhost:6334",
		Timeout: 30 * time.Second,
	}
}

func (c *Config) Validate() error {
	if c.URL == "" {
		return errors.New("qdrant URL is required")
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	return nil
}

// hostPort splits the configured URL into the host/port/TLS triple the gRPC
// client wants. The default port is Qdrant's gRPC port 6334.
func (c *Config) hostPort() (string, int, bool, error) {
	parsed, err := url.Parse(c.URL)
	if err != nil {
		return "", 0, false, fmt.Errorf("invalid qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	if host == "" {
		// Bare "host:port" with no scheme parses into Opaque/Path.
		host = parsed.Path
	}

	port := 6334
	if parsed.Port() != "" {
		p, err := strconv.Atoi(parsed.Port())
		if err != nil {
			return "", 0, false, fmt.Errorf("invalid qdrant port: %w", err)
		}
		port = p
	}

	return host, port, parsed.Scheme == "https", nil
}
