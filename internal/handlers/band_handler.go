package handlers

import (
	"net/http"

	"showscraper/internal/models"
	"showscraper/internal/repository"
)

type BandHandler struct {
	repo repository.BandRepository
}

func NewBandHandler(repo repository.BandRepository) *BandHandler {
	return &BandHandler{repo: repo}
}

// List returns the band allowlist.
func (h *BandHandler) List(w http.ResponseWriter, r *http.Request) {
	bands, err := h.repo.GetBands(r.Context())
	if err != nil {
		writeJSONErrorResponse(w, http.StatusInternalServerError, "internal_error", "Failed to list bands: "+err.Error())
		return
	}
	if bands == nil {
		bands = []models.Band{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"bands": bands,
		"count": len(bands),
	})
}
