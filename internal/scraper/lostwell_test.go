package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lostWellPayload = `{
  "project": {
    "data": {
      "events": [
        {"title": "Death File Red, Bruka, Ungrieved", "start": "1788382800000"},
        {"title": " , & and ", "start": "1788382800000"},
        {"title": "Unsane, Glassing, Bridge Farmers", "start": "not-a-number"}
      ]
    }
  }
}`

func TestLostWellScrape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/js/v0.1/calendar/data", r.URL.Path)
		assert.Equal(t, "test-instance", r.URL.Query().Get("instance"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(lostWellPayload))
	}))
	defer srv.Close()

	s := NewLostWell(srv.URL, "test-instance")
	shows, err := s.Scrape(context.Background())
	require.NoError(t, err)

	// The separator-only title and the bad timestamp are both skipped.
	require.Len(t, shows, 1)
	assert.Equal(t, "Death File Red, Bruka, Ungrieved", shows[0].Title)
	assert.Equal(t, []string{"Death File Red", "Bruka", "Ungrieved"}, shows[0].Bands)
	assert.Equal(t, "The Lost Well", shows[0].Venue)
	assert.Equal(t, time.UnixMilli(1788382800000).Unix(), shows[0].ShowDate.Unix())
	assert.Nil(t, shows[0].ShowTime)
	assert.Nil(t, shows[0].DoorTime)
}

func TestLostWellScrapeEmptyCalendar(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"project":{"data":{"events":[]}}}`))
	}))
	defer srv.Close()

	shows, err := NewLostWell(srv.URL, "x").Scrape(context.Background())
	require.NoError(t, err)
	assert.Empty(t, shows)
}

func TestLostWellScrapeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broke", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewLostWell(srv.URL, "x").Scrape(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=502")
}

func TestLostWellScrapeBadShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"unexpected": true}`))
	}))
	defer srv.Close()

	_, err := NewLostWell(srv.URL, "x").Scrape(context.Background())
	require.Error(t, err)
}
