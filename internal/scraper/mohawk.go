package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"showscraper/internal/lineup"
	"showscraper/internal/models"
)

const mohawkVenue = "Mohawk"

// Mohawk scrapes the venue's events feed, which is served JSONP-wrapped for
// the site's embed widget: `mhk({...});`. The payload carries a structured
// lineup per event plus separate door and start times; when the lineup is
// missing or empty the title is tokenized instead.
type Mohawk struct {
	baseURL    string
	httpClient *http.Client
	archiver   Archiver
}

func NewMohawk(baseURL string) *Mohawk {
	return &Mohawk{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *Mohawk) SetHTTPClient(hc *http.Client) {
	if hc != nil {
		s.httpClient = hc
	}
}

func (s *Mohawk) SetArchiver(a Archiver) { s.archiver = a }

func (s *Mohawk) Venue() string { return mohawkVenue }

type mohawkEvent struct {
	Title  string   `json:"title"`
	Date   string   `json:"date"`  // "2026-09-05"
	Doors  string   `json:"doors"` // "19:00", may be empty
	Start  string   `json:"start"` // "20:00", may be empty
	Lineup []string `json:"lineup"`
}

type mohawkResponse struct {
	Events []mohawkEvent `json:"events"`
}

func (s *Mohawk) Scrape(ctx context.Context) ([]models.Show, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/api/events.js?callback=mhk", nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("mohawk events failed: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	archive(ctx, s.archiver, mohawkVenue, 1, body)

	payload, err := unwrapJSONP(body)
	if err != nil {
		return nil, fmt.Errorf("mohawk events: %w", err)
	}

	var data mohawkResponse
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("mohawk events: invalid json: %w", err)
	}

	logrus.WithFields(logrus.Fields{"venue": mohawkVenue, "events": len(data.Events)}).Info("found events")

	shows := make([]models.Show, 0, len(data.Events))
	for _, event := range data.Events {
		showDate, err := time.ParseInLocation("2006-01-02", event.Date, time.Local)
		if err != nil {
			logrus.WithFields(logrus.Fields{"venue": mohawkVenue, "title": event.Title}).Warn("skipping event with bad date")
			continue
		}

		bands := cleanLineup(event.Lineup)
		if len(bands) == 0 {
			bands = lineup.Tokenize(event.Title)
		}
		if len(bands) == 0 {
			continue
		}

		show, err := models.NewShow(
			event.Title,
			showDate,
			timeOfDay(showDate, event.Start),
			timeOfDay(showDate, event.Doors),
			mohawkVenue,
			bands,
		)
		if err != nil {
			logrus.WithFields(logrus.Fields{"venue": mohawkVenue, "title": event.Title}).WithError(err).Warn("skipping invalid event")
			continue
		}
		shows = append(shows, show)
	}

	return shows, nil
}

func cleanLineup(raw []string) []string {
	names := make([]string, 0, len(raw))
	for _, name := range raw {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return names
}

// timeOfDay combines a calendar date with an "HH:MM" clock value. Returns
// nil when the clock value is absent or unparsable; door and show times are
// optional on a Show.
func timeOfDay(date time.Time, clock string) *time.Time {
	if clock == "" {
		return nil
	}
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return nil
	}
	t := time.Date(date.Year(), date.Month(), date.Day(), parsed.Hour(), parsed.Minute(), 0, 0, date.Location())
	return &t
}

// unwrapJSONP strips the callback wrapper from a `cb({...});` response and
// returns the inner JSON.
func unwrapJSONP(body []byte) ([]byte, error) {
	s := string(body)
	open := strings.Index(s, "(")
	end := strings.LastIndex(s, ")")
	if open < 0 || end <= open {
		return nil, fmt.Errorf("not a jsonp payload")
	}
	return []byte(s[open+1 : end]), nil
}
