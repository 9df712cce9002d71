// File: internal/services/search/service.go
package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hackmatch/showcase-search/internal/domain"
	"github.com/hackmatch/showcase-search/internal/services/embedding"
	"github.com/hackmatch/showcase-search/internal/services/vectordb"
)

// Collection is the fixed collection the search path operates on.
const Collection = "eth_global_showcase"

// DefaultLimit caps result counts when the caller does not ask for one.
const DefaultLimit = 10

// errPrefix marks messages this layer has already formatted, so a re-thrown
// error is never wrapped twice.
const errPrefix = "embedding failed: "

// Service orchestrates text -> embedding -> nearest-neighbor search and maps
// raw store hits into domain Projects.
type Service struct {
	provider  EmbeddingProvider
	store     VectorSearcher
	sanitizer *Sanitizer
	logger    Logger
}

func NewService(provider EmbeddingProvider, store VectorSearcher, sanitizer *Sanitizer, logger Logger) *Service {
	return &Service{
		provider:  provider,
		store:     store,
		sanitizer: sanitizer,
		logger:    logger,
	}
}

// CreateEmbedding delegates to the configured provider. Failures are
// status-prefixed and sanitized here, once, before anything user-visible.
func (s *Service) CreateEmbedding(ctx context.Context, text string) ([]float32, error) {
	vector, err := s.provider.CreateEmbedding(ctx, text)
	if err != nil {
		if strings.HasPrefix(err.Error(), errPrefix) {
			return nil, err
		}

		msg := s.sanitizer.Sanitize(statusPrefix(err) + err.Error())
		s.logger.Error("embedding creation failed", "error", msg)
		return nil, fmt.Errorf("%s%s", errPrefix, msg)
	}
	return vector, nil
}

// SearchSimilarProjects queries the fixed collection and maps each hit's
// payload onto a Project, preserving the store's score ordering. Search
// failures are logged and re-thrown unmodified.
func (s *Service) SearchSimilarProjects(ctx context.Context, vector []float32, limit int) ([]domain.Project, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	hits, err := s.store.Search(ctx, Collection, vectordb.SearchParams{
		Vector: vector,
		Limit:  uint64(limit),
	})
	if err != nil {
		s.logger.Error("similarity search failed", "collection", Collection, "error", err.Error())
		return nil, err
	}

	projects := make([]domain.Project, 0, len(hits))
	for _, hit := range hits {
		projects = append(projects, projectFromPayload(hit.Payload))
	}

	s.logger.Debug("search completed", "results", len(projects))
	return projects, nil
}

// statusPrefix maps the HTTP status carried by an embedding error onto the
// user-facing message prefix.
func statusPrefix(err error) string {
	var embErr *embedding.EmbeddingError
	if !errors.As(err, &embErr) {
		return ""
	}
	switch embErr.Code {
	case 403:
		return "authentication failed: "
	case 401:
		return "unauthorized: "
	case 429:
		return "rate limit exceeded: "
	default:
		return ""
	}
}

// projectFromPayload maps a stored payload onto a Project. Description falls
// back to "" when the store has no projectDescription field.
func projectFromPayload(payload map[string]any) domain.Project {
	return domain.Project{
		Title:       payloadString(payload, "title"),
		Description: payloadString(payload, "projectDescription"),
		Link:        payloadString(payload, "link"),
		SourceCode:  payloadString(payload, "sourceCode"),
		HowItsMade:  payloadString(payload, "howItsMade"),
		Hackathon:   payloadString(payload, "hackathon"),
		Prize:       payloadBool(payload, "prize"),
	}
}

func payloadString(payload map[string]any, key string) string {
	if v, ok := payload[key].(string); ok {
		return v
	}
	return ""
}

func payloadBool(payload map[string]any, key string) bool {
	if v, ok := payload[key].(bool); ok {
		return v
	}
	return false
}
