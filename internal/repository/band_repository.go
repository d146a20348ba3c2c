package repository

import (
	"context"
	"database/sql"
	"fmt"

	"showscraper/internal/models"
)

type BandRepository interface {
	UpsertBands(ctx context.Context, bands []models.Band) error
	GetBands(ctx context.Context) ([]models.Band, error)
}

type bandRepository struct {
	db *sql.DB
}

func NewBandRepository(db *sql.DB) BandRepository {
	return &bandRepository{db: db}
}

// UpsertBands writes the allowlist keyed by name; an existing name has its
// genre replaced.
func (r *bandRepository) UpsertBands(ctx context.Context, bands []models.Band) error {
	if len(bands) == 0 {
		return nil
	}

	query := `INSERT INTO bands (name, genre) VALUES ($1, $2)
			  ON CONFLICT (name) DO UPDATE SET genre = EXCLUDED.genre`

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert bands: %w", err)
	}
	defer tx.Rollback()

	for _, band := range bands {
		if _, err := tx.ExecContext(ctx, query, band.Name, band.Genre); err != nil {
			return fmt.Errorf("upsert band %q: %w", band.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert bands: %w", err)
	}
	return nil
}

func (r *bandRepository) GetBands(ctx context.Context) ([]models.Band, error) {
	query := `SELECT id, name, genre FROM bands ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get bands: %w", err)
	}
	defer rows.Close()

	var bands []models.Band
	for rows.Next() {
		var band models.Band
		if err := rows.Scan(&band.ID, &band.Name, &band.Genre); err != nil {
			return nil, fmt.Errorf("scan band: %w", err)
		}
		bands = append(bands, band)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bands: %w", err)
	}

	return bands, nil
}
