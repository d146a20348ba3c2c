package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"showscraper/internal/lineup"
	"showscraper/internal/models"
)

const lostWellVenue = "The Lost Well"

// LostWell scrapes The Lost Well's wix events-calendar widget. The feed is a
// single unauthenticated page; there is no structured lineup, so band names
// come from tokenizing the event title.
//
// Example event from the API:
//
//	{"title": "Unsane, Glassing, Bridge Farmers",
//	 "start": "1677369600000",
//	 "end":   "1677369600000",
//	 "allday": false, ...}
type LostWell struct {
	baseURL    string
	instance   string
	httpClient *http.Client
	archiver   Archiver
}

func NewLostWell(baseURL, instance string) *LostWell {
	return &LostWell{
		baseURL:    strings.TrimRight(baseURL, "/"),
		instance:   instance,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *LostWell) SetHTTPClient(hc *http.Client) {
	if hc != nil {
		s.httpClient = hc
	}
}

func (s *LostWell) SetArchiver(a Archiver) { s.archiver = a }

func (s *LostWell) Venue() string { return lostWellVenue }

type lostWellEvent struct {
	Title string `json:"title"`
	Start string `json:"start"` // epoch millis, as a string
}

type lostWellResponse struct {
	Project struct {
		Data struct {
			Events []lostWellEvent `json:"events"`
		} `json:"data"`
	} `json:"project"`
}

func (s *LostWell) Scrape(ctx context.Context) ([]models.Show, error) {
	u, err := url.Parse(s.baseURL + "/js/v0.1/calendar/data")
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("viewMode", "site")
	q.Set("locale", "en")
	q.Set("instance", s.instance)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("lost well calendar failed: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	archive(ctx, s.archiver, lostWellVenue, 1, body)

	var data lostWellResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("lost well calendar: invalid json: %w", err)
	}
	if data.Project.Data.Events == nil {
		return nil, fmt.Errorf("lost well calendar: unexpected payload shape")
	}

	events := data.Project.Data.Events
	logrus.WithFields(logrus.Fields{"venue": lostWellVenue, "events": len(events)}).Info("found events")

	shows := make([]models.Show, 0, len(events))
	for _, event := range events {
		millis, err := strconv.ParseInt(event.Start, 10, 64)
		if err != nil {
			logrus.WithFields(logrus.Fields{"venue": lostWellVenue, "title": event.Title}).Warn("skipping event with bad start timestamp")
			continue
		}

		bands := lineup.Tokenize(event.Title)
		if len(bands) == 0 {
			continue
		}

		show, err := models.NewShow(event.Title, time.UnixMilli(millis), nil, nil, lostWellVenue, bands)
		if err != nil {
			logrus.WithFields(logrus.Fields{"venue": lostWellVenue, "title": event.Title}).WithError(err).Warn("skipping invalid event")
			continue
		}
		shows = append(shows, show)
	}

	return shows, nil
}
