package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"showscraper/internal/models"
)

func TestUpsertShowsReplacesOnConflictKey(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	date := time.Date(2026, 9, 5, 20, 0, 0, 0, time.UTC)
	show, err := models.NewShow("Thou, Cloud Rat", date, nil, nil, "Mohawk", []string{"Thou", "Cloud Rat"})
	if err != nil {
		t.Fatalf("NewShow: %v", err)
	}
	bands, _ := json.Marshal(show.Bands)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO shows \(title, show_date, show_time, door_time, venue, bands\)\s+VALUES \(\$1, \$2, \$3, \$4, \$5, \$6\)\s+ON CONFLICT \(show_date, venue\) DO UPDATE SET`).
		WithArgs(show.Title, show.ShowDate, nil, nil, show.Venue, bands).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewShowRepository(db)
	if err := repo.UpsertShows(context.Background(), []models.Show{show}); err != nil {
		t.Fatalf("UpsertShows: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpsertShowsEmptyInputTouchesNothing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := NewShowRepository(db)
	if err := repo.UpsertShows(context.Background(), nil); err != nil {
		t.Fatalf("UpsertShows: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected database activity: %v", err)
	}
}

func TestGetShowsRebuildsValidatedShows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	date := time.Date(2026, 9, 5, 20, 0, 0, 0, time.UTC)
	showTime := date.Add(time.Hour)

	rows := sqlmock.NewRows([]string{"id", "title", "show_date", "show_time", "door_time", "venue", "bands"}).
		AddRow(7, "Thou, Cloud Rat", date, showTime, nil, "Mohawk", []byte(`["Thou","Cloud Rat"]`))
	mock.ExpectQuery(`SELECT id, title, show_date, show_time, door_time, venue, bands\s+FROM shows ORDER BY show_date`).
		WillReturnRows(rows)

	repo := NewShowRepository(db)
	shows, err := repo.GetShows(context.Background())
	if err != nil {
		t.Fatalf("GetShows: %v", err)
	}
	if len(shows) != 1 {
		t.Fatalf("expected 1 show got %d", len(shows))
	}
	got := shows[0]
	if got.ID != 7 || got.Title != "Thou, Cloud Rat" || got.Venue != "Mohawk" {
		t.Fatalf("unexpected show %+v", got)
	}
	if got.ShowTime == nil || !got.ShowTime.Equal(showTime) {
		t.Fatalf("expected show_time %v got %v", showTime, got.ShowTime)
	}
	if got.DoorTime != nil {
		t.Fatalf("expected nil door_time got %v", got.DoorTime)
	}
	if len(got.Bands) != 2 {
		t.Fatalf("expected 2 bands got %v", got.Bands)
	}
}

func TestGetShowsRejectsCorruptRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "title", "show_date", "show_time", "door_time", "venue", "bands"}).
		AddRow(1, "No Bands", time.Now(), nil, nil, "Mohawk", []byte(`[]`))
	mock.ExpectQuery(`SELECT id, title`).WillReturnRows(rows)

	repo := NewShowRepository(db)
	if _, err := repo.GetShows(context.Background()); err == nil {
		t.Fatal("expected validation error for a stored show without bands")
	}
}
