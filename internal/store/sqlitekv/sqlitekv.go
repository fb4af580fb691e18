// Package sqlitekv backs the storage adapter with an embedded SQLite
// database: a single kv table, one row per namespace. Pure-Go driver, no
// external service involved.
package sqlitekv

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"gemba.tools/internal/store"
)

type Store struct {
	db *sql.DB
}

// Open opens (and if needed initializes) the database at path. Use
// ":memory:" in tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("sqlitekv: open %s: %w", path, err)
	}
	// The tool is single-writer; one connection avoids SQLITE_BUSY churn.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(time.Hour)
	if _, err := db.Exec(`create table if not exists kv (
		key text primary key,
		value blob not null,
		updated_at text not null
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlitekv: init schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Read(key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow(`select value from kv where key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlitekv: read %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) Write(key string, value []byte) error {
	_, err := s.db.Exec(`
		insert into kv(key, value, updated_at) values (?, ?, ?)
		on conflict(key) do update set value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("sqlitekv: write %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec(`delete from kv where key = ?`, key); err != nil {
		return fmt.Errorf("sqlitekv: delete %s: %w", key, err)
	}
	return nil
}
