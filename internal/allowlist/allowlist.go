// Package allowlist loads the static catalog of bands worth tracking. The
// file is plain JSON: [{"name": "Thou", "genre": "sludge"}, ...]. It is
// read once at startup and upserted into the catalog before any filtering.
package allowlist

import (
	"encoding/json"
	"fmt"
	"os"

	"showscraper/internal/models"
)

type entry struct {
	Name  string `json:"name"`
	Genre string `json:"genre"`
}

// Load reads and validates the allowlist file. Entries without a name are
// rejected; a band the filter can never match is a config mistake worth
// failing loudly on.
func Load(path string) ([]models.Band, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read allowlist: %w", err)
	}

	var entries []entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse allowlist: %w", err)
	}

	bands := make([]models.Band, 0, len(entries))
	for _, e := range entries {
		band, err := models.NewBand(e.Name, e.Genre)
		if err != nil {
			return nil, fmt.Errorf("allowlist entry %+v: %w", e, err)
		}
		bands = append(bands, band)
	}
	return bands, nil
}
