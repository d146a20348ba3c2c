package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"showscraper/internal/lineup"
	"showscraper/internal/models"
)

const catilVenue = "Come and Take It Live"

const eventbriteTimeLayout = "2006-01-02T15:04:05"

// ComeAndTakeItLive scrapes the Eventbrite venue-events API. The feed is
// paginated; pages are followed through the continuation token until
// Eventbrite stops returning one. Requests carry a bearer token.
//
// Eventbrite does not expose a per-event lineup, but CATIL lists every band
// in the event name, so names come from tokenizing it. Events whose name
// tokenizes to nothing are skipped.
type ComeAndTakeItLive struct {
	baseURL    string
	venueID    string
	token      string
	httpClient *http.Client
	archiver   Archiver
}

func NewComeAndTakeItLive(baseURL, venueID, token string) *ComeAndTakeItLive {
	return &ComeAndTakeItLive{
		baseURL:    strings.TrimRight(baseURL, "/"),
		venueID:    venueID,
		token:      token,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *ComeAndTakeItLive) SetHTTPClient(hc *http.Client) {
	if hc != nil {
		s.httpClient = hc
	}
}

func (s *ComeAndTakeItLive) SetArchiver(a Archiver) { s.archiver = a }

func (s *ComeAndTakeItLive) Venue() string { return catilVenue }

type eventbriteEvent struct {
	Name struct {
		Text string `json:"text"`
	} `json:"name"`
	Start struct {
		Local string `json:"local"`
	} `json:"start"`
}

type eventbriteResponse struct {
	Events     []eventbriteEvent `json:"events"`
	Pagination struct {
		PageNumber   int    `json:"page_number"`
		PageCount    int    `json:"page_count"`
		Continuation string `json:"continuation"`
	} `json:"pagination"`
}

func (s *ComeAndTakeItLive) Scrape(ctx context.Context) ([]models.Show, error) {
	if strings.TrimSpace(s.token) == "" {
		return nil, fmt.Errorf("eventbrite token is required")
	}

	var shows []models.Show
	continuation := ""
	page := 0

	for {
		page++
		data, body, err := s.fetchPage(ctx, continuation)
		if err != nil {
			return nil, err
		}
		archive(ctx, s.archiver, catilVenue, page, body)

		logrus.WithFields(logrus.Fields{
			"venue":  catilVenue,
			"events": len(data.Events),
			"page":   data.Pagination.PageNumber,
			"pages":  data.Pagination.PageCount,
		}).Info("found events")

		for _, event := range data.Events {
			bands := lineup.Tokenize(event.Name.Text)
			if len(bands) == 0 {
				continue
			}

			start, err := time.ParseInLocation(eventbriteTimeLayout, event.Start.Local, time.Local)
			if err != nil {
				logrus.WithFields(logrus.Fields{"venue": catilVenue, "title": event.Name.Text}).Warn("skipping event with bad start time")
				continue
			}

			show, err := models.NewShow(event.Name.Text, start, &start, nil, catilVenue, bands)
			if err != nil {
				logrus.WithFields(logrus.Fields{"venue": catilVenue, "title": event.Name.Text}).WithError(err).Warn("skipping invalid event")
				continue
			}
			shows = append(shows, show)
		}

		continuation = data.Pagination.Continuation
		if continuation == "" {
			break
		}
	}

	logrus.WithFields(logrus.Fields{"venue": catilVenue, "shows": len(shows)}).Info("finished paging")
	return shows, nil
}

func (s *ComeAndTakeItLive) fetchPage(ctx context.Context, continuation string) (*eventbriteResponse, []byte, error) {
	u, err := url.Parse(s.baseURL + "/v3/venues/" + s.venueID + "/events/")
	if err != nil {
		return nil, nil, err
	}
	q := u.Query()
	q.Set("expand", "music_properties")
	if continuation != "" {
		q.Set("continuation", continuation)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(s.token))

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, nil, fmt.Errorf("eventbrite events failed: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var data eventbriteResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, nil, fmt.Errorf("eventbrite events: invalid json: %w", err)
	}
	if data.Events == nil {
		return nil, nil, fmt.Errorf("eventbrite events: unexpected payload shape")
	}

	return &data, body, nil
}
