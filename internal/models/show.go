// internal/models/show.go
package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Show is one event at one venue. It is immutable value data once built:
// adapters construct it, filters read it, the repository stores it.
//
// Bands holds plain name strings captured at scrape time. It is a
// denormalized snapshot, not a reference into the bands catalog, so later
// allowlist edits never rewrite stored shows.
type Show struct {
	ID       int        `json:"id,omitempty" db:"id"`
	Title    string     `json:"title" db:"title" validate:"required"`
	ShowDate time.Time  `json:"show_date" db:"show_date" validate:"required"`
	ShowTime *time.Time `json:"show_time,omitempty" db:"show_time"`
	DoorTime *time.Time `json:"door_time,omitempty" db:"door_time"`
	Venue    string     `json:"venue" db:"venue"`
	Bands    []string   `json:"bands" db:"bands" validate:"required,min=1"`
}

// NewShow builds a Show and enforces its construction invariants: a title,
// a non-zero show date, and at least one band name. Failure rejects the
// single record; callers skip it and keep going with the rest of the batch.
func NewShow(title string, showDate time.Time, showTime, doorTime *time.Time, venue string, bands []string) (Show, error) {
	s := Show{
		Title:    title,
		ShowDate: showDate,
		ShowTime: showTime,
		DoorTime: doorTime,
		Venue:    venue,
		Bands:    bands,
	}
	if err := validate.Struct(s); err != nil {
		return Show{}, err
	}
	return s, nil
}
