// File: internal/handlers/match_handler.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/hackmatch/showcase-search/internal/services/search"
)

type MatchHandler struct {
	SearchService *search.Service
	DefaultLimit  int
}

func NewMatchHandler(s *search.Service, defaultLimit int) *MatchHandler {
	return &MatchHandler{SearchService: s, DefaultLimit: defaultLimit}
}

// MatchProjects handles "describe your idea, find similar past projects".
// The text is embedded and matched against the showcase collection.
func (h *MatchHandler) MatchProjects(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text  string `json:"text"`
		Limit int    `json:"limit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		writeError(w, "Request body must include a non-empty \"text\" field", http.StatusBadRequest)
		return
	}

	vector, err := h.SearchService.CreateEmbedding(r.Context(), req.Text)
	if err != nil {
		// Already formatted and sanitized by the search service.
		writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	limit := req.Limit
	if limit <= 0 {
		limit = h.DefaultLimit
	}

	projects, err := h.SearchService.SearchSimilarProjects(r.Context(), vector, limit)
	if err != nil {
		writeError(w, "Similarity search failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"projects": projects,
		"count":    len(projects),
	})
}
