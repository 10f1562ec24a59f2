package table

import (
	"holdem-server/pkg/playable/poker/texasholdem"
	"strings"
)

const maxNameLength = 32

// RosterEntry is a seated player as shown in the lobby
type RosterEntry struct {
	Name     string `json:"name"`
	PlayerID int64  `json:"playerId"`
	Stack    int    `json:"stack"`
	IsHost   bool   `json:"isHost"`
}

// Join seats a player at the table
// A stack of zero takes the table's starting stack. The first player to
// join becomes the host.
func (t *Table) Join(name, clientID string, playerID int64, stack int) (*texasholdem.Seat, error) {
	if err := t.CanJoin(name, clientID); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if stack == 0 {
		stack = t.options.StartingStack
	}

	if stack < 0 {
		return nil, UserError("a positive starting stack is required")
	}

	seat := texasholdem.NewSeat(name, clientID, playerID, stack)
	t.seats = append(t.seats, seat)
	if t.host == "" {
		t.host = clientID
	}

	t.logger.WithField("client", clientID).WithField("name", name).Info("player joined")
	t.log(playerID, "%s joined the table", name)

	if t.begun && t.hand == nil && t.nextHand == nil && t.eligibleCount() >= 2 {
		if err := t.StartHand(); err != nil {
			t.logger.WithError(err).Error("could not start hand")
		}
	}

	t.listener.TableUpdated(t)
	return seat, nil
}

// CanJoin returns the reason the player cannot take a seat, or nil
func (t *Table) CanJoin(name, clientID string) error {
	if t.closed {
		return ErrTableClosed
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return UserError("a name is required")
	}

	if len([]rune(name)) > maxNameLength {
		return newUserError("names cannot be longer than %d characters", maxNameLength)
	}

	if t.seat(clientID) != nil {
		return UserError("you are already seated at this table")
	}

	for _, s := range t.seats {
		if strings.EqualFold(s.Name, name) {
			return newUserError("the name %s is taken", name)
		}
	}

	if len(t.seats) >= t.options.MaxSeats {
		return UserError("the table is full")
	}

	return nil
}

// Leave removes the player from the table
// A player in the hand is marked disconnected and folds when their turn
// comes, their chips leave with them.
func (t *Table) Leave(clientID string) error {
	index := -1
	for i, s := range t.seats {
		if s.ClientID == clientID {
			index = i
			break
		}
	}

	if index < 0 {
		return ErrSeatNotFound
	}

	seat := t.seats[index]
	t.seats = append(t.seats[:index], t.seats[index+1:]...)

	if t.host == clientID {
		t.host = ""
		if len(t.seats) > 0 {
			next := t.seats[index%len(t.seats)]
			t.host = next.ClientID
			t.log(next.PlayerID, "%s is now the host", next.Name)
		}
	}

	t.logger.WithField("client", clientID).WithField("name", seat.Name).Info("player left")
	t.log(seat.PlayerID, "%s left the table", seat.Name)

	if t.hand != nil && !t.hand.IsComplete() && t.hand.HasSeat(clientID) {
		if err := t.hand.MarkDisconnected(clientID); err != nil {
			t.logger.WithError(err).Error("could not mark seat disconnected")
		}
	}

	t.listener.TableUpdated(t)
	return nil
}

// Roster returns the seated players in join order
func (t *Table) Roster() []RosterEntry {
	roster := make([]RosterEntry, len(t.seats))
	for i, s := range t.seats {
		roster[i] = RosterEntry{
			Name:     s.Name,
			PlayerID: s.PlayerID,
			Stack:    s.Stack(),
			IsHost:   s.ClientID == t.host,
		}
	}

	return roster
}

// Host returns the client ID of the host, or an empty string
func (t *Table) Host() string {
	return t.host
}

// SeatCount returns how many players are seated
func (t *Table) SeatCount() int {
	return len(t.seats)
}

// Seat returns the client's seat, or nil
func (t *Table) Seat(clientID string) *texasholdem.Seat {
	return t.seat(clientID)
}

// ClientIDs returns the client ID of every seat
func (t *Table) ClientIDs() []string {
	ids := make([]string, len(t.seats))
	for i, s := range t.seats {
		ids[i] = s.ClientID
	}

	return ids
}

func (t *Table) seat(clientID string) *texasholdem.Seat {
	for _, s := range t.seats {
		if s.ClientID == clientID {
			return s
		}
	}

	return nil
}

func (t *Table) eligibleCount() int {
	count := 0
	for _, s := range t.seats {
		if s.Stack() > 0 {
			count++
		}
	}

	return count
}
