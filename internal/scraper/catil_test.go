package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComeAndTakeItLiveFollowsContinuation(t *testing.T) {
	var requests []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		requests = append(requests, r.URL.Query().Get("continuation"))

		if r.URL.Query().Get("continuation") == "" {
			fmt.Fprint(w, `{
			  "events": [
			    {"name": {"text": "Thou, Cloud Rat"}, "start": {"local": "2026-09-10T19:00:00"}}
			  ],
			  "pagination": {"page_number": 1, "page_count": 2, "continuation": "tok-2"}
			}`)
			return
		}
		fmt.Fprint(w, `{
		  "events": [
		    {"name": {"text": "Frail Body"}, "start": {"local": "2026-09-11T20:00:00"}},
		    {"name": {"text": ", & ,"}, "start": {"local": "2026-09-12T20:00:00"}}
		  ],
		  "pagination": {"page_number": 2, "page_count": 2}
		}`)
	}))
	defer srv.Close()

	s := NewComeAndTakeItLive(srv.URL, "28302591", "test-token")
	shows, err := s.Scrape(context.Background())
	require.NoError(t, err)

	require.Equal(t, []string{"", "tok-2"}, requests, "should fetch until no continuation token remains")
	require.Len(t, shows, 2)

	assert.Equal(t, []string{"Thou", "Cloud Rat"}, shows[0].Bands)
	assert.Equal(t, "Come and Take It Live", shows[0].Venue)
	require.NotNil(t, shows[0].ShowTime)
	assert.Equal(t, shows[0].ShowDate, *shows[0].ShowTime)
	assert.Equal(t, []string{"Frail Body"}, shows[1].Bands)
}

func TestComeAndTakeItLiveRequiresToken(t *testing.T) {
	_, err := NewComeAndTakeItLive("http://example.invalid", "1", "  ").Scrape(context.Background())
	require.Error(t, err)
}

func TestComeAndTakeItLivePageFailureAbortsSource(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			fmt.Fprint(w, `{
			  "events": [{"name": {"text": "Thou"}, "start": {"local": "2026-09-10T19:00:00"}}],
			  "pagination": {"page_number": 1, "page_count": 2, "continuation": "tok-2"}
			}`)
			return
		}
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewComeAndTakeItLive(srv.URL, "1", "tok").Scrape(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=429")
}
