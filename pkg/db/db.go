package db

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when no table config exists for the ID
var ErrNotFound = errors.New("table config not found")

// TableConfig is how a table was set up when it was created
// It is kept so a table that was torn down can be brought back
type TableConfig struct {
	TableID       string    `json:"tableId"`
	TournamentID  string    `json:"tournamentId"`
	SmallBlind    int       `json:"smallBlind"`
	BigBlind      int       `json:"bigBlind"`
	StartingStack int       `json:"startingStack"`
	PasswordHash  string    `json:"-"`
	Created       time.Time `json:"created"`
}

// Store persists table configs
type Store interface {
	SaveTableConfig(ctx context.Context, cfg *TableConfig) error
	LoadTableConfig(ctx context.Context, tableID string) (*TableConfig, error)
	Close() error
}

// Scanner is an interface that sql should've provided
// No snark here...
type Scanner interface {
	Scan(...interface{}) error
}

const tableConfigColumns = `
table_id,
tournament_id,
small_blind,
big_blind,
starting_stack,
password_hash,
created`

func scanTableConfig(row Scanner) (*TableConfig, error) {
	var cfg TableConfig
	if err := row.Scan(&cfg.TableID, &cfg.TournamentID, &cfg.SmallBlind, &cfg.BigBlind,
		&cfg.StartingStack, &cfg.PasswordHash, &cfg.Created); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Options selects and configures a store
type Options struct {
	// Driver is one of memory, postgres or sqlite
	Driver         string
	PGDSN          string
	SQLitePath     string
	MigrationsPath string
}

// Open returns the store for the driver
// The postgres store runs its migrations before it is returned
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Driver {
	case "", "memory":
		return NewMemoryStore(), nil
	case "postgres":
		return NewPostgresStore(ctx, opts.PGDSN, opts.MigrationsPath)
	case "sqlite":
		return NewSQLiteStore(ctx, opts.SQLitePath)
	}

	return nil, fmt.Errorf("unknown store driver: %s", opts.Driver)
}
