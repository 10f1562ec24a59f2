package config

import (
	"errors"
	"holdem-server/internal/util"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config provides configuration for the hold'em server
type Config struct {
	loaded bool
	Addr   string `yaml:"addr" envconfig:"addr"`
	Log    struct {
		Level             string `yaml:"level" envconfig:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
	JWT struct {
		PublicKey  string `yaml:"publicKey" envconfig:"public_key"`
		PrivateKey string `yaml:"privateKey" envconfig:"private_key"`
	} `yaml:"jwt"`
	Store struct {
		// Driver is one of memory, postgres or sqlite
		Driver         string `yaml:"driver" envconfig:"driver"`
		PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
		SQLitePath     string `yaml:"sqlitePath" envconfig:"sqlite_path"`
		MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	} `yaml:"store"`
	Table struct {
		SmallBlind    int           `yaml:"smallBlind" envconfig:"small_blind"`
		BigBlind      int           `yaml:"bigBlind" envconfig:"big_blind"`
		StartingStack int           `yaml:"startingStack" envconfig:"starting_stack"`
		MaxSeats      int           `yaml:"maxSeats" envconfig:"max_seats"`
		TurnTimeout   time.Duration `yaml:"turnTimeout" envconfig:"turn_timeout"`
		StreetDelay   time.Duration `yaml:"streetDelay" envconfig:"street_delay"`
		NextHandDelay time.Duration `yaml:"nextHandDelay" envconfig:"next_hand_delay"`
		IdleTimeout   time.Duration `yaml:"idleTimeout" envconfig:"idle_timeout"`
	} `yaml:"table"`
}

var config Config

// DefaultConfig returns the configuration used when nothing is set
func DefaultConfig() Config {
	var cfg Config
	cfg.Addr = ":5000"
	cfg.Log.Level = "info"
	cfg.JWT.PublicKey = "public.pem"
	cfg.JWT.PrivateKey = "private.key"
	cfg.Store.Driver = "memory"
	cfg.Store.PGDSN = "postgres://postgres@localhost:5432/postgres?sslmode=disable"
	cfg.Store.SQLitePath = "holdem.db"
	cfg.Store.MigrationsPath = "./sql"
	cfg.Table.SmallBlind = 10
	cfg.Table.BigBlind = 20
	cfg.Table.StartingStack = 1000
	cfg.Table.MaxSeats = 10
	cfg.Table.TurnTimeout = 10 * time.Second
	cfg.Table.StreetDelay = 2 * time.Second
	cfg.Table.NextHandDelay = 5 * time.Second
	cfg.Table.IdleTimeout = 15 * time.Minute

	return cfg
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// Values come from the defaults, then the YAML file, then the environment.
// A missing config file is not an error.
func Load() error {
	cfg := DefaultConfig()

	configFile := util.Getenv("HOLDEM_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()

		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err := envconfig.Process("holdem", &cfg); err != nil {
		return err
	}

	cfg.loaded = true
	config = cfg
	return nil
}
