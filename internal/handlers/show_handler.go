package handlers

import (
	"net/http"

	"showscraper/internal/models"
	"showscraper/internal/repository"
)

type ShowHandler struct {
	repo repository.ShowRepository
}

func NewShowHandler(repo repository.ShowRepository) *ShowHandler {
	return &ShowHandler{repo: repo}
}

// List returns every stored show.
func (h *ShowHandler) List(w http.ResponseWriter, r *http.Request) {
	shows, err := h.repo.GetShows(r.Context())
	if err != nil {
		writeJSONErrorResponse(w, http.StatusInternalServerError, "internal_error", "Failed to list shows: "+err.Error())
		return
	}
	if shows == nil {
		shows = []models.Show{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"shows": shows,
		"count": len(shows),
	})
}
