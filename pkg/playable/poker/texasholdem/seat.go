package texasholdem

import (
	"holdem-server/pkg/deck"
)

// Status is the last action a seat took this street
type Status string

// constants for Status
const (
	StatusUndecided   Status = "undecided"
	StatusFolded      Status = "folded"
	StatusChecked     Status = "checked"
	StatusCalled      Status = "called"
	StatusBetOrRaised Status = "bet"
	StatusAllIn       Status = "all-in"
)

// Seat is a player sitting at a table
// Chips only move through the hand, which keeps the pot and stacks in balance
type Seat struct {
	Name     string
	ClientID string
	PlayerID int64

	stack    int
	hole     deck.Hand
	totalIn  int
	streetIn int
	status   Status

	disconnected bool
}

// NewSeat returns a seat with a starting stack
func NewSeat(name, clientID string, playerID int64, stack int) *Seat {
	return &Seat{
		Name:     name,
		ClientID: clientID,
		PlayerID: playerID,
		stack:    stack,
		hole:     make(deck.Hand, 0, 2),
		status:   StatusUndecided,
	}
}

// Stack returns the chips the seat has behind
func (s *Seat) Stack() int {
	return s.stack
}

// Hole returns a copy of the hole cards
func (s *Seat) Hole() deck.Hand {
	return s.hole.Clone()
}

// TotalIn returns what the seat put in the pot this hand
func (s *Seat) TotalIn() int {
	return s.totalIn
}

// StreetIn returns what the seat put in the pot this street
func (s *Seat) StreetIn() int {
	return s.streetIn
}

// Status returns the last action tag
func (s *Seat) Status() Status {
	return s.status
}

// Disconnected returns true if the seat lost its connection
func (s *Seat) Disconnected() bool {
	return s.disconnected
}

// ResetForHand clears everything from the previous hand
func (s *Seat) ResetForHand() {
	s.hole = make(deck.Hand, 0, 2)
	s.totalIn = 0
	s.streetIn = 0
	s.status = StatusUndecided
}

// commit moves up to amount from the stack into the pot
// The amount actually moved is returned
func (s *Seat) commit(amount int) int {
	if amount > s.stack {
		amount = s.stack
	}

	s.stack -= amount
	s.totalIn += amount
	s.streetIn += amount

	if s.stack == 0 {
		s.status = StatusAllIn
	}

	return amount
}

func (s *Seat) credit(amount int) {
	s.stack += amount
}

// refund returns everything the seat put in this hand
func (s *Seat) refund() int {
	amount := s.totalIn
	s.stack += amount
	s.totalIn = 0
	s.streetIn = 0

	return amount
}

func (s *Seat) newStreet() {
	s.streetIn = 0
	if s.canAct() {
		s.status = StatusUndecided
	}
}

// canAct returns true if the seat can still check, call, bet, raise or fold
func (s *Seat) canAct() bool {
	return s.status != StatusFolded && s.status != StatusAllIn
}

// potmanager.Participant interface

// ID returns the client ID
func (s *Seat) ID() string {
	return s.ClientID
}

// Contributed returns what the seat put in the pot this hand
func (s *Seat) Contributed() int {
	return s.totalIn
}

// Folded returns true if the seat folded this hand
func (s *Seat) Folded() bool {
	return s.status == StatusFolded
}
