package db

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // needed
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS table_configs
(
    table_id       TEXT PRIMARY KEY,
    tournament_id  TEXT    NOT NULL DEFAULT '',
    small_blind    INTEGER NOT NULL,
    big_blind      INTEGER NOT NULL,
    starting_stack INTEGER NOT NULL,
    password_hash  TEXT    NOT NULL DEFAULT '',
    created        TIMESTAMP NOT NULL
)`

// SQLiteStore keeps table configs in a local sqlite file
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the file, creating it and the schema if needed
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("empty sqlite database path")
	}

	if path != ":memory:" {
		if parent := filepath.Dir(path); parent != "" && parent != "." {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return nil, err
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// sqlite allows a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	for _, stmt := range []string{`PRAGMA busy_timeout = 5000`, `PRAGMA journal_mode = WAL`, sqliteSchema} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return &SQLiteStore{db: db}, nil
}

// SaveTableConfig inserts or replaces the config
func (s *SQLiteStore) SaveTableConfig(ctx context.Context, cfg *TableConfig) error {
	if cfg.Created.IsZero() {
		cfg.Created = time.Now().UTC()
	}

	const query = `
INSERT INTO table_configs (table_id, tournament_id, small_blind, big_blind, starting_stack, password_hash, created)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (table_id) DO UPDATE
SET tournament_id = excluded.tournament_id,
    small_blind = excluded.small_blind,
    big_blind = excluded.big_blind,
    starting_stack = excluded.starting_stack,
    password_hash = excluded.password_hash`

	_, err := s.db.ExecContext(ctx, query, cfg.TableID, cfg.TournamentID, cfg.SmallBlind, cfg.BigBlind,
		cfg.StartingStack, cfg.PasswordHash, cfg.Created)
	return err
}

// LoadTableConfig returns the config or ErrNotFound
func (s *SQLiteStore) LoadTableConfig(ctx context.Context, tableID string) (*TableConfig, error) {
	const query = `
SELECT ` + tableConfigColumns + `
FROM table_configs
WHERE table_id = ?`

	cfg, err := scanTableConfig(s.db.QueryRowContext(ctx, query, tableID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}

	return cfg, err
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
