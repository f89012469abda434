// Package storedb opens a SQLite-backed metadata database and brings it to
// a target schema version through an ordered list of migrations, the way
// the teacher's image store does for its own metadata.db (pkg/image/db.go).
package storedb

import (
	"database/sql"
	"sort"

	_ "modernc.org/sqlite"

	"github.com/core-quic/pluginop/internal/errx"
)

// Migration is one forward-only schema step. SQL may contain multiple
// statements; it runs inside the same transaction as the bookkeeping
// insert, so a partial failure leaves no trace of the migration.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// OpenOptions configures Open.
type OpenOptions struct {
	// Path is the sqlite file path. ":memory:" is accepted for tests.
	Path string
	// Module names the caller in error messages and logs.
	Module string
	// Migrations runs in ascending Version order against a fresh or
	// partially-migrated database. Versions already recorded in
	// schema_migrations are skipped.
	Migrations []Migration
}

// Open opens (creating if absent) the database at opts.Path and applies
// every migration in opts.Migrations not yet recorded as applied.
func Open(opts OpenOptions) (*sql.DB, error) {
	db, err := sql.Open("sqlite", opts.Path)
	if err != nil {
		return nil, errx.With(ErrOpenFailed, " %s (%s): %w", opts.Path, opts.Module, err)
	}
	db.SetMaxOpenConns(1)

	if err := migrate(db, opts); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func migrate(db *sql.DB, opts OpenOptions) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version    INTEGER PRIMARY KEY,
  name       TEXT NOT NULL,
  applied_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
);`); err != nil {
		return errx.With(ErrMigrationFailed, " %s: bookkeeping table: %w", opts.Module, err)
	}

	applied := map[int]bool{}
	rows, err := db.Query(`SELECT version FROM schema_migrations`)
	if err != nil {
		return errx.With(ErrMigrationFailed, " %s: reading applied versions: %w", opts.Module, err)
	}
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			rows.Close()
			return errx.With(ErrMigrationFailed, " %s: scanning applied versions: %w", opts.Module, err)
		}
		applied[v] = true
	}
	rows.Close()

	ordered := append([]Migration(nil), opts.Migrations...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Version < ordered[j].Version })
	for _, m := range ordered {
		if applied[m.Version] {
			continue
		}
		if err := applyMigration(db, opts.Module, m); err != nil {
			return err
		}
	}
	return nil
}

func applyMigration(db *sql.DB, module string, m Migration) error {
	tx, err := db.Begin()
	if err != nil {
		return errx.With(ErrMigrationFailed, " %s: version %d (%s): begin: %w", module, m.Version, m.Name, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(m.SQL); err != nil {
		return errx.With(ErrMigrationFailed, " %s: version %d (%s): %w", module, m.Version, m.Name, err)
	}
	if _, err := tx.Exec(
		`INSERT INTO schema_migrations (version, name) VALUES (?, ?)`,
		m.Version, m.Name,
	); err != nil {
		return errx.With(ErrMigrationFailed, " %s: version %d (%s): recording: %w", module, m.Version, m.Name, err)
	}
	if err := tx.Commit(); err != nil {
		return errx.With(ErrMigrationFailed, " %s: version %d (%s): commit: %w", module, m.Version, m.Name, err)
	}
	return nil
}
