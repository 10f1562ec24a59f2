package table

import (
	"errors"
	"fmt"
)

// UserError is an error that is safe to return in a response
type UserError string

func (u UserError) Error() string {
	return string(u)
}

func newUserError(format string, a ...interface{}) UserError {
	return UserError(fmt.Sprintf(format, a...))
}

// ErrTableClosed is returned when the table has been torn down
var ErrTableClosed = errors.New("the table is closed")

// ErrSeatNotFound is returned when the client is not seated at the table
var ErrSeatNotFound = errors.New("you are not seated at the table")

// ErrNoHand is returned when an action arrives between hands
var ErrNoHand = UserError("there is no hand in progress")

// ErrHandInProgress is returned when a hand is started while one is running
var ErrHandInProgress = errors.New("a hand is already in progress")
