// internal/db/migrations/migrations.go
package migrations

import (
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"
)

type Migration struct {
	Version int
	Name    string
	Up      string
}

// migrations is the ordered schema history. New changes append a new entry;
// applied versions are tracked in schema_migrations and never re-run.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_bands",
		Up: `CREATE TABLE IF NOT EXISTS bands (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			genre TEXT NOT NULL DEFAULT ''
		)`,
	},
	{
		Version: 2,
		Name:    "create_shows",
		Up: `CREATE TABLE IF NOT EXISTS shows (
			id SERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			show_date TIMESTAMP WITH TIME ZONE NOT NULL,
			show_time TIMESTAMP WITH TIME ZONE,
			door_time TIMESTAMP WITH TIME ZONE,
			venue TEXT NOT NULL DEFAULT '',
			bands JSONB NOT NULL,
			CONSTRAINT shows_date_venue_unq UNIQUE (show_date, venue)
		)`,
	},
	{
		Version: 3,
		Name:    "index_shows_show_date",
		Up:      `CREATE INDEX IF NOT EXISTS shows_show_date_idx ON shows (show_date)`,
	},
}

func RunMigrations(db *sql.DB) error {
	// Create migrations table if it doesn't exist
	if err := createMigrationsTable(db); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	// Get applied migrations
	applied, err := getAppliedMigrations(db)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	// Apply pending migrations
	for _, m := range migrations {
		if _, exists := applied[m.Version]; !exists {
			if err := applyMigration(db, m); err != nil {
				return fmt.Errorf("failed to apply migration %s: %w", m.Name, err)
			}
			logrus.WithField("migration", m.Name).Info("applied migration")
		}
	}

	return nil
}

func createMigrationsTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		)
	`)
	return err
}

func getAppliedMigrations(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM schema_migrations ORDER BY version")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func applyMigration(db *sql.DB, migration Migration) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Execute migration
	if _, err := tx.Exec(migration.Up); err != nil {
		return fmt.Errorf("failed to execute migration: %w", err)
	}

	// Record migration
	if _, err := tx.Exec("INSERT INTO schema_migrations (version, name) VALUES ($1, $2)", migration.Version, migration.Name); err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}

	return tx.Commit()
}
