package config

import (
	"holdem-server/internal/util"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInstance(t *testing.T) {
	defer util.SetEnv("HOLDEM_CONFIG_FILE", "testdata/config.yaml")()
	defer util.SetEnv("HOLDEM_JWT_PRIVATE_KEY", "private2.key")()
	config = Config{}

	a := assert.New(t)
	cfg := Instance()
	a.Equal(":8080", cfg.Addr)
	a.Equal("debug", cfg.Log.Level)
	a.Equal("public.pem", cfg.JWT.PublicKey)
	a.Equal("private2.key", cfg.JWT.PrivateKey)
	a.Equal("sqlite", cfg.Store.Driver)
	a.Equal("/tmp/holdem.db", cfg.Store.SQLitePath)
	a.Equal(50, cfg.Table.BigBlind)
	a.Equal(30*time.Second, cfg.Table.TurnTimeout)

	// values the file does not set keep their defaults
	a.Equal(10, cfg.Table.SmallBlind)
	a.Equal(15*time.Minute, cfg.Table.IdleTimeout)

	// ensure that it's only loaded once
	_ = os.Setenv("HOLDEM_JWT_PRIVATE_KEY", "private3.key")
	// ensure we aren't using a pointer
	cfg.JWT.PrivateKey = "bad"
	cfg = Instance()
	a.Equal("private2.key", cfg.JWT.PrivateKey)
}

func TestLoad_missingFile(t *testing.T) {
	defer util.SetEnv("HOLDEM_CONFIG_FILE", "testdata/missing.yaml")()
	defer util.SetEnv("HOLDEM_TABLE_STREET_DELAY", "500ms")()

	a := assert.New(t)
	a.NoError(Load())
	cfg := Instance()
	a.Equal("memory", cfg.Store.Driver)
	a.Equal(500*time.Millisecond, cfg.Table.StreetDelay)
	a.Equal(DefaultConfig().Table.TurnTimeout, cfg.Table.TurnTimeout)
}
