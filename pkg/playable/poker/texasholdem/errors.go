package texasholdem

import (
	"errors"
	"fmt"
)

// UserError is an error caused by an illegal request from a player
// It is safe to return in a response
type UserError string

func (u UserError) Error() string {
	return string(u)
}

func newUserError(format string, a ...interface{}) UserError {
	return UserError(fmt.Sprintf(format, a...))
}

// ErrNotYourTurn is returned when a seat acts out of turn
var ErrNotYourTurn = errors.New("it is not your turn")

// ErrSeatNotInHand is returned when the seat is not dealt into the hand
var ErrSeatNotInHand = errors.New("seat is not in the hand")

// ErrNotEnoughPlayers is returned when a hand cannot start
var ErrNotEnoughPlayers = errors.New("at least two players with chips are required")

// ErrHandComplete is returned when acting on a finished hand
var ErrHandComplete = errors.New("hand is complete")

// ErrHandStarted is returned when Start() is called more than once
var ErrHandStarted = errors.New("hand has already started")
