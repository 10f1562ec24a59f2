package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/sirupsen/logrus"

	_ "github.com/golang-migrate/migrate/v4/source/file" // needed
	_ "github.com/lib/pq"                                 // needed
)

// PostgresStore keeps table configs in postgres
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects to the database and runs the migrations
func NewPostgresStore(ctx context.Context, dsn, migrationsPath string) (*PostgresStore, error) {
	db, err := OpenPostgres(ctx, dsn)
	if err != nil {
		return nil, err
	}

	if err := Migrate(db, migrationsPath); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &PostgresStore{db: db}, nil
}

// OpenPostgres opens and pings the database
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate runs the migrations
func Migrate(db *sql.DB, migrationsPath string) error {
	logrus.WithField("migrationsPath", migrationsPath).Info("running migrations")
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", migrationsPath), "postgres", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}

// SaveTableConfig inserts or replaces the config
func (p *PostgresStore) SaveTableConfig(ctx context.Context, cfg *TableConfig) error {
	const query = `
INSERT INTO table_configs (table_id, tournament_id, small_blind, big_blind, starting_stack, password_hash)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (table_id) DO UPDATE
SET tournament_id = excluded.tournament_id,
    small_blind = excluded.small_blind,
    big_blind = excluded.big_blind,
    starting_stack = excluded.starting_stack,
    password_hash = excluded.password_hash
RETURNING created`

	row := p.db.QueryRowContext(ctx, query, cfg.TableID, cfg.TournamentID, cfg.SmallBlind, cfg.BigBlind,
		cfg.StartingStack, cfg.PasswordHash)
	return row.Scan(&cfg.Created)
}

// LoadTableConfig returns the config or ErrNotFound
func (p *PostgresStore) LoadTableConfig(ctx context.Context, tableID string) (*TableConfig, error) {
	const query = `
SELECT ` + tableConfigColumns + `
FROM table_configs
WHERE table_id = $1`

	cfg, err := scanTableConfig(p.db.QueryRowContext(ctx, query, tableID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}

	return cfg, err
}

// Close closes the database
func (p *PostgresStore) Close() error {
	return p.db.Close()
}
