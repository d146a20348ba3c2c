// Package ingest orchestrates one scrape-filter-persist run across every
// configured source.
package ingest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"showscraper/internal/filter"
	"showscraper/internal/models"
	"showscraper/internal/repository"
	"showscraper/internal/scraper"
	"showscraper/internal/services"
)

// SourceReport tracks how many shows one source produced and how many
// survived each filter stage.
type SourceReport struct {
	Venue    string `json:"venue"`
	Error    string `json:"error,omitempty"`
	Found    int    `json:"found"`
	Upcoming int    `json:"upcoming"`
	Matched  int    `json:"matched"`
	New      int    `json:"new"`
}

// Report summarizes one run.
type Report struct {
	RunID      string         `json:"run_id"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
	Sources    []SourceReport `json:"sources"`
	Persisted  int            `json:"persisted"`
}

// Runner wires the sources to the store and executes runs one at a time.
type Runner struct {
	Sources []scraper.Source
	Shows   repository.ShowRepository
	Bands   repository.BandRepository

	// Mailer and DigestTo are optional; when both are set, a run that
	// persisted shows sends a digest email.
	Mailer   services.EmailSender
	DigestTo string

	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time

	mu   sync.Mutex
	last *Report
}

// Run executes one full ingestion pass: scrape every source sequentially,
// filter each source's output (upcoming, allowlist match, not already
// stored), then upsert the survivors in one batch. A failing source shows
// up in the report with an error and zero counts; it never blocks the
// others or the persist step.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}

	report := &Report{
		RunID:     uuid.NewString(),
		StartedAt: now(),
	}
	log := logrus.WithField("run_id", report.RunID)

	approved, err := r.Bands.GetBands(ctx)
	if err != nil {
		return nil, fmt.Errorf("load approved bands: %w", err)
	}
	existing, err := r.Shows.GetShows(ctx)
	if err != nil {
		return nil, fmt.Errorf("load existing shows: %w", err)
	}

	var keep []models.Show
	for _, result := range scraper.ScrapeAll(ctx, r.Sources) {
		sr := SourceReport{Venue: result.Venue}
		if result.Err != nil {
			sr.Error = result.Err.Error()
			report.Sources = append(report.Sources, sr)
			continue
		}

		sr.Found = len(result.Shows)

		shows := filter.Apply(result.Shows, filter.Upcoming(now()))
		sr.Upcoming = len(shows)

		shows = filter.Apply(shows, filter.ByBands(approved))
		sr.Matched = len(shows)

		shows = filter.Apply(shows, filter.NotAlreadyKnown(existing))
		sr.New = len(shows)

		log.WithFields(logrus.Fields{
			"venue":    sr.Venue,
			"found":    sr.Found,
			"upcoming": sr.Upcoming,
			"matched":  sr.Matched,
			"new":      sr.New,
		}).Info("filtered source")

		keep = append(keep, shows...)
		report.Sources = append(report.Sources, sr)
	}

	if err := r.Shows.UpsertShows(ctx, keep); err != nil {
		return nil, fmt.Errorf("persist shows: %w", err)
	}
	report.Persisted = len(keep)
	report.FinishedAt = now()

	log.WithField("persisted", report.Persisted).Info("run complete")

	if len(keep) > 0 && r.Mailer != nil && r.DigestTo != "" {
		if err := r.Mailer.Send(r.DigestTo, services.DigestSubject, services.DigestBody(keep)); err != nil {
			log.WithError(err).Warn("failed to send digest")
		}
	}

	r.mu.Lock()
	r.last = report
	r.mu.Unlock()

	return report, nil
}

// LastReport returns the most recent run's report, or nil before any run.
func (r *Runner) LastReport() *Report {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}
