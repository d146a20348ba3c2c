package handlers

import (
	"net/http"

	"showscraper/internal/ingest"
)

type RunHandler struct {
	runner *ingest.Runner
}

func NewRunHandler(runner *ingest.Runner) *RunHandler {
	return &RunHandler{runner: runner}
}

// Trigger starts a scrape run and returns its report. Runs block; the
// client waits for the sources to answer.
func (h *RunHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	report, err := h.runner.Run(r.Context())
	if err != nil {
		writeJSONErrorResponse(w, http.StatusInternalServerError, "run_failed", "Scrape run failed: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Latest returns the most recent run's report.
func (h *RunHandler) Latest(w http.ResponseWriter, r *http.Request) {
	report := h.runner.LastReport()
	if report == nil {
		writeJSONErrorResponse(w, http.StatusNotFound, "not_found", "No runs have completed yet")
		return
	}
	writeJSON(w, http.StatusOK, report)
}
