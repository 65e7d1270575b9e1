// Package sqlite implementa los repositorios sobre un archivo SQLite
// (modernc.org/sqlite, sin cgo). Sirve para correr una sola instancia del
// servidor sin Postgres.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Open abre (o crea) la base en path y aplica el schema.
func Open(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// SQLite serializa escrituras; una conexión evita SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS pet_state (
		instance_id TEXT PRIMARY KEY,
		record      TEXT NOT NULL,
		updated_at  INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS community_actions (
		id          TEXT PRIMARY KEY,
		instance_id TEXT NOT NULL,
		username    TEXT NOT NULL,
		action      TEXT NOT NULL,
		message     TEXT NOT NULL,
		created_at  INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_community_actions_instance_created
		ON community_actions(instance_id, created_at DESC);

	CREATE TABLE IF NOT EXISTS community_totals (
		instance_id TEXT PRIMARY KEY,
		total       INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS announcements (
		id          TEXT PRIMARY KEY,
		instance_id TEXT NOT NULL,
		user_id     TEXT NOT NULL,
		username    TEXT NOT NULL,
		action      TEXT NOT NULL,
		message     TEXT NOT NULL,
		created_at  INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_announcements_instance_created
		ON announcements(instance_id, created_at DESC);
	`)
	return err
}
