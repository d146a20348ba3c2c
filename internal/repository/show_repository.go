package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"showscraper/internal/models"
)

type ShowRepository interface {
	UpsertShows(ctx context.Context, shows []models.Show) error
	GetShows(ctx context.Context) ([]models.Show, error)
}

type showRepository struct {
	db *sql.DB
}

func NewShowRepository(db *sql.DB) ShowRepository {
	return &showRepository{db: db}
}

// UpsertShows writes each show keyed by (show_date, venue). A conflicting
// key replaces the stored row wholesale, so re-running with overlapping
// input always converges on the same stored state.
func (r *showRepository) UpsertShows(ctx context.Context, shows []models.Show) error {
	if len(shows) == 0 {
		return nil
	}

	query := `INSERT INTO shows (title, show_date, show_time, door_time, venue, bands)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  ON CONFLICT (show_date, venue) DO UPDATE SET
			    title = EXCLUDED.title,
			    show_time = EXCLUDED.show_time,
			    door_time = EXCLUDED.door_time,
			    bands = EXCLUDED.bands`

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert shows: %w", err)
	}
	defer tx.Rollback()

	for _, show := range shows {
		bands, err := json.Marshal(show.Bands)
		if err != nil {
			return fmt.Errorf("marshal bands for %q: %w", show.Title, err)
		}
		if _, err := tx.ExecContext(ctx, query, show.Title, show.ShowDate, show.ShowTime, show.DoorTime, show.Venue, bands); err != nil {
			return fmt.Errorf("upsert show %q: %w", show.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert shows: %w", err)
	}
	return nil
}

// GetShows returns every stored show, rebuilt through the same construction
// invariants a freshly scraped show passes.
func (r *showRepository) GetShows(ctx context.Context) ([]models.Show, error) {
	query := `SELECT id, title, show_date, show_time, door_time, venue, bands
			  FROM shows ORDER BY show_date`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get shows: %w", err)
	}
	defer rows.Close()

	var shows []models.Show
	for rows.Next() {
		var (
			id                 int
			title, venue       string
			showDate           sql.NullTime
			showTime, doorTime sql.NullTime
			bandsJSON          []byte
		)
		if err := rows.Scan(&id, &title, &showDate, &showTime, &doorTime, &venue, &bandsJSON); err != nil {
			return nil, fmt.Errorf("scan show: %w", err)
		}

		var bands []string
		if err := json.Unmarshal(bandsJSON, &bands); err != nil {
			return nil, fmt.Errorf("unmarshal bands: %w", err)
		}

		show, err := models.NewShow(title, showDate.Time, nullableTime(showTime), nullableTime(doorTime), venue, bands)
		if err != nil {
			return nil, fmt.Errorf("stored show %d failed validation: %w", id, err)
		}
		show.ID = id
		shows = append(shows, show)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shows: %w", err)
	}

	return shows, nil
}

func nullableTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	return &t.Time
}
