package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// LostWellSource configures The Lost Well's wix calendar feed.
type LostWellSource struct {
	URL      string `yaml:"url"`
	Instance string `yaml:"instance"`
	Enabled  bool   `yaml:"enabled"`
}

// EventbriteSource configures the Come and Take It Live feed. The bearer
// token is deliberately not part of the file; it comes from the
// EVENTBRITE_TOKEN environment variable.
type EventbriteSource struct {
	URL     string `yaml:"url"`
	VenueID string `yaml:"venue_id"`
	Enabled bool   `yaml:"enabled"`
}

// MohawkSource configures the Mohawk JSONP events feed.
type MohawkSource struct {
	URL     string `yaml:"url"`
	Enabled bool   `yaml:"enabled"`
}

// Sources is the per-venue feed configuration.
type Sources struct {
	LostWell   LostWellSource   `yaml:"lost_well"`
	Eventbrite EventbriteSource `yaml:"eventbrite"`
	Mohawk     MohawkSource     `yaml:"mohawk"`
}

// DefaultSources returns the production endpoints with everything enabled.
func DefaultSources() *Sources {
	return &Sources{
		LostWell: LostWellSource{
			URL:     "https://inffuse.eventscalendar.co",
			Enabled: true,
		},
		Eventbrite: EventbriteSource{
			URL:     "https://www.eventbriteapi.com",
			VenueID: "28302591",
			Enabled: true,
		},
		Mohawk: MohawkSource{
			URL:     "https://mohawkaustin.com",
			Enabled: true,
		},
	}
}

// Normalize fills in missing endpoint URLs so a partially-filled sources
// file still points at production.
func (s *Sources) Normalize() {
	defaults := DefaultSources()
	if s.LostWell.URL == "" {
		s.LostWell.URL = defaults.LostWell.URL
	}
	if s.Eventbrite.URL == "" {
		s.Eventbrite.URL = defaults.Eventbrite.URL
	}
	if s.Eventbrite.VenueID == "" {
		s.Eventbrite.VenueID = defaults.Eventbrite.VenueID
	}
	if s.Mohawk.URL == "" {
		s.Mohawk.URL = defaults.Mohawk.URL
	}
}

// LoadSources reads the YAML sources file. A missing file is not an error;
// it means the defaults.
func LoadSources(path string) (*Sources, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultSources(), nil
		}
		return nil, fmt.Errorf("read sources file: %w", err)
	}

	var sources Sources
	if err := yaml.Unmarshal(data, &sources); err != nil {
		return nil, fmt.Errorf("parse sources file: %w", err)
	}
	sources.Normalize()
	return &sources, nil
}
