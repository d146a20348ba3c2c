package repository

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"showscraper/internal/models"
)

func TestUpsertBandsReplacesGenreOnConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO bands \(name, genre\) VALUES \(\$1, \$2\)\s+ON CONFLICT \(name\) DO UPDATE SET genre = EXCLUDED.genre`).
		WithArgs("Thou", "sludge").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO bands`).
		WithArgs("Cloud Rat", "grind").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewBandRepository(db)
	bands := []models.Band{
		{Name: "Thou", Genre: "sludge"},
		{Name: "Cloud Rat", Genre: "grind"},
	}
	if err := repo.UpsertBands(context.Background(), bands); err != nil {
		t.Fatalf("UpsertBands: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetBands(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "genre"}).
		AddRow(1, "Cloud Rat", "grind").
		AddRow(2, "Thou", "sludge")
	mock.ExpectQuery(`SELECT id, name, genre FROM bands ORDER BY name`).WillReturnRows(rows)

	repo := NewBandRepository(db)
	bands, err := repo.GetBands(context.Background())
	if err != nil {
		t.Fatalf("GetBands: %v", err)
	}
	if len(bands) != 2 {
		t.Fatalf("expected 2 bands got %d", len(bands))
	}
	if bands[0].Name != "Cloud Rat" || bands[1].Genre != "sludge" {
		t.Fatalf("unexpected bands %+v", bands)
	}
}
