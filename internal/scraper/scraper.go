// Package scraper fetches event listings from venue APIs and maps them into
// canonical shows. Every venue gets its own adapter; the shapes of the feeds
// have nothing in common beyond producing shows, so the adapters share an
// interface and nothing else.
package scraper

import (
	"context"

	"github.com/sirupsen/logrus"

	"showscraper/internal/models"
)

// Source is one venue's scraper. Scrape blocks until the venue's feed has
// been fully read (pagination included) and returns every show it could
// construct. An empty slice is a valid result; an error means the whole
// source failed and its output should be discarded.
type Source interface {
	Venue() string
	Scrape(ctx context.Context) ([]models.Show, error)
}

// Archiver stores a raw feed page for later inspection. Adapters call it
// best-effort before parsing; a nil Archiver disables archiving.
type Archiver interface {
	Store(ctx context.Context, venue string, page int, payload []byte) error
}

// Result is one source's outcome in an aggregate run. Err and Shows are
// mutually exclusive.
type Result struct {
	Venue string
	Shows []models.Show
	Err   error
}

// ScrapeAll runs every source in order, one at a time. A failing source
// contributes an error Result; it never disturbs the output of the others.
func ScrapeAll(ctx context.Context, sources []Source) []Result {
	results := make([]Result, 0, len(sources))
	for _, source := range sources {
		shows, err := source.Scrape(ctx)
		if err != nil {
			logrus.WithField("venue", source.Venue()).WithError(err).Error("scrape failed")
			results = append(results, Result{Venue: source.Venue(), Err: err})
			continue
		}
		logrus.WithFields(logrus.Fields{"venue": source.Venue(), "shows": len(shows)}).Info("scrape complete")
		results = append(results, Result{Venue: source.Venue(), Shows: shows})
	}
	return results
}

func archive(ctx context.Context, archiver Archiver, venue string, page int, payload []byte) {
	if archiver == nil {
		return
	}
	if err := archiver.Store(ctx, venue, page, payload); err != nil {
		logrus.WithFields(logrus.Fields{"venue": venue, "page": page}).WithError(err).Warn("failed to archive raw payload")
	}
}
