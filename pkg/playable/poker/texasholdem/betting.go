package texasholdem

import (
	"holdem-server/pkg/playable/poker/action"
)

// Act performs an action for the seat on the clock
// For a bet or raise, amount is the total the seat will have in this street
func (h *Hand) Act(clientID string, kind action.Action, amount int) error {
	if h.state == StateComplete {
		return ErrHandComplete
	}

	seat := h.seat(clientID)
	if seat == nil {
		return ErrSeatNotInHand
	}

	if h.turn < 0 || h.seats[h.turn] != seat {
		return ErrNotYourTurn
	}

	if err := h.apply(seat, kind, amount); err != nil {
		return err
	}

	h.advance(h.turn)
	h.listener.HandUpdated(h)
	return nil
}

func (h *Hand) apply(seat *Seat, kind action.Action, amount int) error {
	owed := h.owes(seat)

	switch kind {
	case action.Fold:
		seat.status = StatusFolded
		h.recordAction(seat, kind, 0)
	case action.Check:
		if owed > 0 {
			return newUserError("you cannot check, it is $%d to call", owed)
		}

		seat.status = StatusChecked
		h.recordAction(seat, kind, 0)
	case action.Call:
		if owed == 0 {
			return UserError("there is no bet to call")
		}

		h.call(seat)
	case action.Bet, action.Raise:
		if amount >= seat.streetIn+seat.stack {
			h.allIn(seat)
			return nil
		}

		if minTo := h.MinRaiseTo(); amount < minTo {
			if h.currentBet == 0 {
				return newUserError("the minimum bet is $%d", minTo)
			}

			return newUserError("the minimum raise is to $%d", minTo)
		}

		h.raiseTo(seat, amount)
	case action.AllIn:
		h.allIn(seat)
	default:
		return newUserError("unknown action: %s", string(kind))
	}

	return nil
}

func (h *Hand) call(seat *Seat) {
	paid := h.commit(seat, h.owes(seat))
	if seat.status == StatusAllIn {
		h.recordAction(seat, action.AllIn, seat.streetIn)
		return
	}

	seat.status = StatusCalled
	h.recordAction(seat, action.Call, paid)
}

func (h *Hand) allIn(seat *Seat) {
	to := seat.streetIn + seat.stack
	if to <= h.currentBet {
		h.call(seat)
		return
	}

	h.raiseTo(seat, to)
}

// raiseTo makes the seat's total for the street the new bet
// Only a full raise changes the minimum raise
func (h *Hand) raiseTo(seat *Seat, to int) {
	wasBet := h.currentBet == 0
	if raiseBy := to - h.currentBet; raiseBy >= h.minRaise {
		h.minRaise = raiseBy
	}

	h.currentBet = to
	h.commit(seat, to-seat.streetIn)

	switch {
	case seat.status == StatusAllIn:
		h.recordAction(seat, action.AllIn, to)
	case wasBet:
		seat.status = StatusBetOrRaised
		h.recordAction(seat, action.Bet, to)
	default:
		seat.status = StatusBetOrRaised
		h.recordAction(seat, action.Raise, to)
	}
}

func (h *Hand) recordAction(seat *Seat, kind action.Action, amount int) {
	h.lastAction = &LastAction{
		Name:   seat.Name,
		Action: string(kind),
		Amount: amount,
	}

	h.log(seat.PlayerID, "%s %s", seat.Name, kind.LogMessage(amount))
}

// MinRaiseTo returns the smallest legal total for a bet or raise this street
func (h *Hand) MinRaiseTo() int {
	return h.currentBet + h.minRaise
}

// LegalActions returns what the seat can do if it is on the clock
func (h *Hand) LegalActions(clientID string) []action.Action {
	seat := h.seat(clientID)
	if seat == nil || h.turn < 0 || h.seats[h.turn] != seat {
		return nil
	}

	owed := h.owes(seat)
	actions := make([]action.Action, 0, 4)
	if owed == 0 {
		actions = append(actions, action.Check)
	} else {
		actions = append(actions, action.Call)
	}

	if seat.stack > owed {
		if h.currentBet == 0 {
			actions = append(actions, action.Bet)
		} else {
			actions = append(actions, action.Raise)
		}
	}

	return append(actions, action.AllIn, action.Fold)
}

// MarkDisconnected flags the seat so it folds when the turn reaches it
// If it is already the seat's turn, it acts right away
func (h *Hand) MarkDisconnected(clientID string) error {
	seat := h.seat(clientID)
	if seat == nil {
		return ErrSeatNotInHand
	}

	seat.disconnected = true
	if h.state == StateComplete || h.turn < 0 || h.seats[h.turn] != seat {
		return nil
	}

	h.log(seat.PlayerID, "%s is disconnected", seat.Name)
	h.forceAction(seat, action.Fold)
	return nil
}
