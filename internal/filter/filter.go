// Package filter holds the pure predicates applied to scraped shows before
// they are persisted. Each stage is an independent predicate; Apply runs
// them left to right as a logical AND.
package filter

import (
	"time"

	"showscraper/internal/models"
)

// Predicate reports whether a show should be kept.
type Predicate func(models.Show) bool

// Apply returns the shows that pass every predicate, preserving order.
func Apply(shows []models.Show, preds ...Predicate) []models.Show {
	kept := make([]models.Show, 0, len(shows))
	for _, show := range shows {
		ok := true
		for _, pred := range preds {
			if !pred(show) {
				ok = false
				break
			}
		}
		if ok {
			kept = append(kept, show)
		}
	}
	return kept
}

// Upcoming keeps shows whose show_date is at or after now. The boundary is
// inclusive: a show starting at the exact instant passes.
func Upcoming(now time.Time) Predicate {
	return func(show models.Show) bool {
		return !show.ShowDate.Before(now)
	}
}

// ByBands keeps shows where any scraped band name exactly matches the name
// of any approved band. One recognized name among several unknown ones is
// enough; matching is case-sensitive.
func ByBands(approved []models.Band) Predicate {
	names := make(map[string]struct{}, len(approved))
	for _, band := range approved {
		names[band.Name] = struct{}{}
	}
	return func(show models.Show) bool {
		for _, name := range show.Bands {
			if _, ok := names[name]; ok {
				return true
			}
		}
		return false
	}
}

// NotAlreadyKnown drops a candidate when any existing show falls on the
// same calendar date, regardless of venue. This is a coarse pre-filter;
// the storage layer's (show_date, venue) upsert key is what actually
// guarantees no duplicates.
func NotAlreadyKnown(existing []models.Show) Predicate {
	dates := make(map[string]struct{}, len(existing))
	for _, show := range existing {
		dates[show.ShowDate.Format("2006-01-02")] = struct{}{}
	}
	return func(show models.Show) bool {
		_, ok := dates[show.ShowDate.Format("2006-01-02")]
		return !ok
	}
}
