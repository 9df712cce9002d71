// File: internal/handlers/ideas_handler.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/hackmatch/showcase-search/internal/services/ideas"
)

type IdeasHandler struct {
	IdeasService *ideas.Service
}

func NewIdeasHandler(s *ideas.Service) *IdeasHandler {
	return &IdeasHandler{IdeasService: s}
}

// GenerateIdea produces a fresh pitch for a theme.
func (h *IdeasHandler) GenerateIdea(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Theme string `json:"theme"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Theme == "" {
		writeError(w, "Request body must include a non-empty \"theme\" field", http.StatusBadRequest)
		return
	}

	idea, err := h.IdeasService.GenerateIdea(r.Context(), req.Theme)
	if err != nil {
		writeError(w, "Idea generation failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"idea": idea})
}

// ImproveIdea sharpens an existing pitch, optionally against prior art.
func (h *IdeasHandler) ImproveIdea(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Idea     string   `json:"idea"`
		PriorArt []string `json:"priorArt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Idea == "" {
		writeError(w, "Request body must include a non-empty \"idea\" field", http.StatusBadRequest)
		return
	}

	improved, err := h.IdeasService.ImproveIdea(r.Context(), req.Idea, req.PriorArt)
	if err != nil {
		writeError(w, "Idea improvement failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"idea": improved})
}
