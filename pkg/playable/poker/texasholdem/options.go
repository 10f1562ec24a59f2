package texasholdem

import (
	"errors"
	"holdem-server/pkg/playable"
	"time"

	"github.com/sirupsen/logrus"
)

// Options configures how a hand is played
type Options struct {
	SmallBlind int
	BigBlind   int

	// TurnTimeout is how long a seat has to act, zero disables the clock
	TurnTimeout time.Duration
	// StreetDelay is the pause between streets when nobody can bet
	StreetDelay time.Duration

	// Scheduler runs timers, without one the runout is dealt immediately and
	// turns never time out
	Scheduler Scheduler
	Listener  Listener
	Logger    logrus.FieldLogger
}

// DefaultOptions returns the default options for a hand
func DefaultOptions() Options {
	return Options{
		SmallBlind:  10,
		BigBlind:    20,
		TurnTimeout: 10 * time.Second,
		StreetDelay: 2 * time.Second,
	}
}

func validateOptions(opts Options) error {
	if opts.SmallBlind <= 0 {
		return errors.New("small blind must be > 0")
	}

	if opts.BigBlind < opts.SmallBlind {
		return errors.New("big blind must be >= the small blind")
	}

	if opts.TurnTimeout < 0 || opts.StreetDelay < 0 {
		return errors.New("timeouts cannot be negative")
	}

	return nil
}

// Listener is notified as a hand progresses
// Calls are made from whichever goroutine is driving the hand
type Listener interface {
	// HandUpdated is called after any change to the public state
	HandUpdated(h *Hand)
	// HandLog is called with lines for the table log
	HandLog(messages ...*playable.LogMessage)
	// HandComplete is called once when the hand reaches StateComplete
	HandComplete(h *Hand)
}

type nopListener struct{}

func (nopListener) HandUpdated(*Hand) {}

func (nopListener) HandLog(...*playable.LogMessage) {}

func (nopListener) HandComplete(*Hand) {}
