package table

import (
	"errors"
	"holdem-server/internal/rng"
	"holdem-server/pkg/deck"
	"holdem-server/pkg/playable"
	"holdem-server/pkg/playable/poker/action"
	"holdem-server/pkg/playable/poker/texasholdem"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/synacor/argon2id"
)

const maxChatLength = 256

// Table is a cash game table
// A table has a roster of seats and plays one hand at a time. It is not safe
// for concurrent use, the owner must serialize calls and timer callbacks.
type Table struct {
	ID string

	options  Options
	logger   logrus.FieldLogger
	listener Listener
	recorder HandRecorder

	// seats in join order
	seats []*texasholdem.Seat
	host  string

	begun    bool
	closed   bool
	rotation int

	deck        *deck.Deck
	hand        *texasholdem.Hand
	lastSummary *texasholdem.Summary

	nextHand    texasholdem.Timer
	nextHandSeq uint64
}

// New returns a new table
func New(id string, opts Options) (*Table, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	if opts.Scheduler == nil {
		opts.Scheduler = ClockScheduler{}
	}

	var listener Listener = nopListener{}
	if opts.Listener != nil {
		listener = opts.Listener
	}

	recorder := opts.Recorder
	if recorder == nil {
		recorder = &LogRecorder{Logger: logger}
	}

	d := deck.New()
	if opts.Generator != nil {
		d.SetGenerator(opts.Generator)
	} else {
		d.SetGenerator(rng.Crypto{})
	}
	d.Shuffle()

	return &Table{
		ID:       id,
		options:  opts,
		logger:   logger.WithField("table", id),
		listener: listener,
		recorder: recorder,
		seats:    make([]*texasholdem.Seat, 0, opts.MaxSeats),
		deck:     d,
	}, nil
}

// Options returns the options the table was created with
func (t *Table) Options() Options {
	return t.options
}

// CheckPassword returns true if the password opens the table
func (t *Table) CheckPassword(password string) bool {
	if t.options.PasswordHash == "" {
		return true
	}

	return argon2id.Compare(t.options.PasswordHash, password) == nil
}

// HasPassword returns true if joining requires a password
func (t *Table) HasPassword() bool {
	return t.options.PasswordHash != ""
}

// Begun returns true once the host started the game
func (t *Table) Begun() bool {
	return t.begun
}

// IsClosed returns true after Close
func (t *Table) IsClosed() bool {
	return t.closed
}

// Hand returns the hand in progress, or the finished hand until the next deal
func (t *Table) Hand() *texasholdem.Hand {
	return t.hand
}

// LastSummary returns the summary of the last completed hand
func (t *Table) LastSummary() *texasholdem.Summary {
	return t.lastSummary
}

// Start begins play, only the host may start the table
func (t *Table) Start(clientID string) error {
	if t.closed {
		return ErrTableClosed
	}

	if t.host != clientID {
		return UserError("only the host can start the game")
	}

	if t.begun {
		return UserError("the game has already started")
	}

	if t.eligibleCount() < 2 {
		return texasholdem.ErrNotEnoughPlayers
	}

	t.begun = true
	t.log(0, "The game has started")
	return t.StartHand()
}

// StartHand deals a new hand to every seat with chips and moves the button
func (t *Table) StartHand() error {
	if t.closed {
		return ErrTableClosed
	}

	if t.hand != nil && !t.hand.IsComplete() {
		return ErrHandInProgress
	}

	t.cancelNextHand()
	t.clearHand()

	h, err := texasholdem.NewHand(t.seats, t.rotation, t.deck, texasholdem.Options{
		SmallBlind:  t.options.SmallBlind,
		BigBlind:    t.options.BigBlind,
		TurnTimeout: t.options.TurnTimeout,
		StreetDelay: t.options.StreetDelay,
		Scheduler:   t.options.Scheduler,
		Listener:    handListener{t},
		Logger:      t.logger,
	})
	if err != nil {
		return err
	}

	t.rotation++
	t.hand = h
	return h.Start()
}

// Action applies a player's action to the hand in progress
func (t *Table) Action(clientID string, kind action.Action, amount int) error {
	if t.closed {
		return ErrTableClosed
	}

	if t.hand == nil || t.hand.IsComplete() {
		return ErrNoHand
	}

	return t.hand.Act(clientID, kind, amount)
}

// LegalActions returns the actions available to the client right now
func (t *Table) LegalActions(clientID string) []action.Action {
	if t.hand == nil {
		return nil
	}

	return t.hand.LegalActions(clientID)
}

// Chat sends a message from a seated player to the table log
func (t *Table) Chat(clientID, text string) (*playable.LogMessage, error) {
	seat := t.seat(clientID)
	if seat == nil {
		return nil, ErrSeatNotFound
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, UserError("a message is required")
	}

	if runes := []rune(text); len(runes) > maxChatLength {
		text = string(runes[:maxChatLength])
	}

	msg := playable.SimpleLogMessage(seat.PlayerID, "%s: %s", seat.Name, text)
	t.listener.TableLog(msg)
	return msg, nil
}

// Close stops every timer the table owns
// It returns false if the table was already closed
func (t *Table) Close() bool {
	if t.closed {
		return false
	}

	t.closed = true
	t.cancelNextHand()
	if t.hand != nil {
		t.hand.StopTimers()
	}

	t.logger.Info("table closed")
	return true
}

// HasPendingTimer returns true if the table or its hand is waiting on a timer
func (t *Table) HasPendingTimer() bool {
	if t.nextHand != nil {
		return true
	}

	return t.hand != nil && t.hand.HasPendingTimer()
}

func (t *Table) log(playerID int64, format string, a ...interface{}) {
	t.listener.TableLog(playable.SimpleLogMessage(playerID, format, a...))
}

// handListener forwards hand events to the table
type handListener struct {
	t *Table
}

func (h handListener) HandUpdated(*texasholdem.Hand) {
	h.t.listener.TableUpdated(h.t)
}

func (h handListener) HandLog(messages ...*playable.LogMessage) {
	h.t.listener.TableLog(messages...)
}

func (h handListener) HandComplete(hand *texasholdem.Hand) {
	h.t.handComplete(hand)
}

// IsUserError returns true if the error is safe to show the player
func IsUserError(err error) bool {
	var tableErr UserError
	var handErr texasholdem.UserError
	return errors.As(err, &tableErr) || errors.As(err, &handErr)
}
