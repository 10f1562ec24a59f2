package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cbg = context.Background()

func testStore(t *testing.T, store Store) {
	t.Helper()
	a := assert.New(t)

	cfg, err := store.LoadTableConfig(cbg, "missing")
	a.Equal(ErrNotFound, err)
	a.Nil(cfg)

	id := uuid.New().String()
	a.NoError(store.SaveTableConfig(cbg, &TableConfig{
		TableID:       id,
		TournamentID:  "spring",
		SmallBlind:    25,
		BigBlind:      50,
		StartingStack: 5000,
		PasswordHash:  "hash",
	}))

	cfg, err = store.LoadTableConfig(cbg, id)
	if a.NoError(err) {
		a.Equal(id, cfg.TableID)
		a.Equal("spring", cfg.TournamentID)
		a.Equal(25, cfg.SmallBlind)
		a.Equal(50, cfg.BigBlind)
		a.Equal(5000, cfg.StartingStack)
		a.Equal("hash", cfg.PasswordHash)
		a.False(cfg.Created.IsZero())
	}

	a.NoError(store.SaveTableConfig(cbg, &TableConfig{
		TableID:       id,
		SmallBlind:    50,
		BigBlind:      100,
		StartingStack: 5000,
	}))

	cfg, err = store.LoadTableConfig(cbg, id)
	if a.NoError(err) {
		a.Equal(100, cfg.BigBlind)
		a.Equal("", cfg.TournamentID)
		a.Equal("", cfg.PasswordHash)
	}
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "holdem.db")
	store, err := NewSQLiteStore(cbg, path)
	require.NoError(t, err)
	defer store.Close()

	testStore(t, store)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestSQLiteStore_reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holdem.db")
	store, err := NewSQLiteStore(cbg, path)
	require.NoError(t, err)
	require.NoError(t, store.SaveTableConfig(cbg, &TableConfig{TableID: "t1", SmallBlind: 1, BigBlind: 2, StartingStack: 100}))
	require.NoError(t, store.Close())

	store, err = NewSQLiteStore(cbg, path)
	require.NoError(t, err)
	defer store.Close()

	cfg, err := store.LoadTableConfig(cbg, "t1")
	if assert.NoError(t, err) {
		assert.Equal(t, 2, cfg.BigBlind)
	}
}

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("HOLDEM_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("HOLDEM_TEST_PG_DSN is not set")
	}

	store, err := NewPostgresStore(cbg, dsn, "../../sql")
	require.NoError(t, err)
	defer store.Close()

	testStore(t, store)
}

func TestOpen(t *testing.T) {
	a := assert.New(t)

	store, err := Open(cbg, Options{})
	a.NoError(err)
	a.IsType(&MemoryStore{}, store)

	store, err = Open(cbg, Options{Driver: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "x.db")})
	if a.NoError(err) {
		a.IsType(&SQLiteStore{}, store)
		a.NoError(store.Close())
	}

	_, err = Open(cbg, Options{Driver: "mongo"})
	a.EqualError(err, "unknown store driver: mongo")

	_, err = NewSQLiteStore(cbg, "  ")
	a.EqualError(err, "empty sqlite database path")
}
