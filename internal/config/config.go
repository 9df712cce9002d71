// File: internal/config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Embedding provider names accepted in EMBEDDING_PROVIDER.
const (
	ProviderOllama = "ollama"
	ProviderNomic  = "nomic"
)

type Config struct {
	ServerPort string

	// Qdrant connection
	QdrantURL    string
	QdrantAPIKey string

	// Embedding backend
	EmbeddingProvider string
	NomicAPIKey       string
	OllamaModel       string
	OllamaURL         string

	// Idea generation (Groq, OpenAI-compatible)
	GroqAPIKey string

	RetrievalTopK int
	Environment   string
}

// Load reads configuration from environment variables or .env file.
func Load() *Config {
	env := os.Getenv("ENV")
	if strings.ToLower(env) != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}

	cfg := &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		QdrantURL:         getEnv("QD_URL", "http://localhost:6334"),
		QdrantAPIKey:      getEnv("QD_API_KEY", ""),
		EmbeddingProvider: strings.ToLower(getEnv("EMBEDDING_PROVIDER", ProviderNomic)),
		NomicAPIKey:       getEnv("NOMIC_API_KEY", ""),
		// OLLAMA_MODEL wins over the older OLLAMA_EMBED_MODEL name.
		OllamaModel:   getEnv("OLLAMA_MODEL", getEnv("OLLAMA_EMBED_MODEL", "nomic-embed-text")),
		OllamaURL:     getEnv("OLLAMA_URL", "http://localhost:11434"),
		GroqAPIKey:    getEnv("GROQ_API_KEY", ""),
		RetrievalTopK: getEnvAsInt("RETRIEVAL_TOPK", 10),
		Environment:   env,
	}

	// Validation for production environments
	if strings.ToLower(env) == "production" {
		missing := []string{}
		if cfg.QdrantURL == "" {
			missing = append(missing, "QD_URL")
		}
		if cfg.EmbeddingProvider == ProviderNomic && cfg.NomicAPIKey == "" {
			missing = append(missing, "NOMIC_API_KEY")
		}
		if len(missing) > 0 {
			log.Fatalf("Missing required production environment variables: %v", missing)
		}
	}

	return cfg
}

// IsProduction reports whether error sanitization should be active.
func (c *Config) IsProduction() bool {
	return strings.ToLower(c.Environment) == "production"
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an env var as an integer, with a fallback.
func getEnvAsInt(key string, defaultValue int) int {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(strValue)
	if err != nil {
		log.Printf("Warning: could not parse env var %s as integer. Using default value.", key)
		return defaultValue
	}
	return intValue
}
