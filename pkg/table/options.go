package table

import (
	"errors"
	"holdem-server/internal/rng"
	"holdem-server/pkg/playable"
	"holdem-server/pkg/playable/poker/texasholdem"
	"time"

	"github.com/sirupsen/logrus"
)

// Options configures a table
type Options struct {
	SmallBlind    int
	BigBlind      int
	StartingStack int
	// PasswordHash is an argon2id hash, an empty hash leaves the table open
	PasswordHash string
	MaxSeats     int

	TurnTimeout   time.Duration
	StreetDelay   time.Duration
	NextHandDelay time.Duration

	// Generator shuffles the deck, defaults to a crypto generator
	Generator rng.Generator
	// Scheduler runs every timer the table and its hands own
	Scheduler texasholdem.Scheduler
	Logger    logrus.FieldLogger
	Recorder  HandRecorder
	Listener  Listener
}

// DefaultOptions returns the default table options
func DefaultOptions() Options {
	return Options{
		SmallBlind:    10,
		BigBlind:      20,
		StartingStack: 1000,
		MaxSeats:      10,
		TurnTimeout:   10 * time.Second,
		StreetDelay:   2 * time.Second,
		NextHandDelay: 5 * time.Second,
	}
}

func validateOptions(opts Options) error {
	if opts.SmallBlind <= 0 {
		return errors.New("small blind must be > 0")
	}

	if opts.BigBlind < opts.SmallBlind {
		return errors.New("big blind must be >= the small blind")
	}

	if opts.StartingStack <= 0 {
		return errors.New("starting stack must be > 0")
	}

	if opts.MaxSeats < 2 {
		return errors.New("a table needs at least two seats")
	}

	if opts.TurnTimeout < 0 || opts.StreetDelay < 0 || opts.NextHandDelay < 0 {
		return errors.New("timeouts cannot be negative")
	}

	return nil
}

// Listener is notified when the table changes
type Listener interface {
	// TableUpdated is called after any change to the public state
	TableUpdated(t *Table)
	// TableLog is called with lines for the table log
	TableLog(messages ...*playable.LogMessage)
}

type nopListener struct{}

func (nopListener) TableUpdated(*Table) {}

func (nopListener) TableLog(...*playable.LogMessage) {}
