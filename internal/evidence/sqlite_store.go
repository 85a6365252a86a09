package evidence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

const evidenceSchema = `
CREATE TABLE IF NOT EXISTS directory_evidence (
	directory     TEXT PRIMARY KEY,
	has_valid_log INTEGER NOT NULL,
	release_ids   TEXT NOT NULL
)`

// SQLiteStore is a Store backed by an in-memory SQLite database. The database
// lives as long as the store and is discarded by Close.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore creates the in-memory database and its schema.
func OpenSQLiteStore(ctx context.Context) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open evidence database: %w", err)
	}
	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if _, err := db.ExecContext(ctx, evidenceSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create evidence schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, dir string) (Evidence, bool, error) {
	var (
		hasLog bool
		raw    string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT has_valid_log, release_ids FROM directory_evidence WHERE directory = ?`, dir,
	).Scan(&hasLog, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return Evidence{}, false, nil
	}
	if err != nil {
		return Evidence{}, false, fmt.Errorf("query evidence for %s: %w", dir, err)
	}

	ev := Evidence{HasValidLog: hasLog}
	if err := json.Unmarshal([]byte(raw), &ev.ReleaseIDs); err != nil {
		return Evidence{}, false, fmt.Errorf("decode release ids for %s: %w", dir, err)
	}
	return ev, true, nil
}

func (s *SQLiteStore) Put(ctx context.Context, dir string, ev Evidence) error {
	ids := ev.ReleaseIDs
	if ids == nil {
		ids = []string{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode release ids: %w", err)
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO directory_evidence (directory, has_valid_log, release_ids) VALUES (?, ?, ?)`,
		dir, ev.HasValidLog, string(raw),
	); err != nil {
		return fmt.Errorf("insert evidence for %s: %w", dir, err)
	}
	return nil
}

// Close discards the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
