package texasholdem

import (
	"holdem-server/pkg/playable/poker/potmanager"
	"holdem-server/pkg/poker"
)

// showdown evaluates every seat still in the hand and pays each pot
func (h *Hand) showdown() {
	h.state = StateShowdown
	h.turn = -1

	ordered := h.payoutOrder()
	participants := make([]potmanager.Participant, len(ordered))
	h.strengths = make(map[string]poker.Strength)
	for i, s := range ordered {
		participants[i] = s
		if s.Folded() {
			continue
		}

		strength, err := poker.Evaluate(s.hole, h.community)
		if err != nil {
			h.abort(err)
			return
		}

		h.strengths[s.ClientID] = strength
	}

	h.revealed = true
	h.pots = potmanager.Partition(participants)
	payouts, err := potmanager.Award(h.pots, h.strengths)
	if err != nil {
		h.abort(err)
		return
	}

	for _, s := range ordered {
		if !s.Folded() {
			h.logWithCards(s.Hole(), "%s shows %s", s.Name, h.strengths[s.ClientID].Describe())
		}
	}

	h.pay(payouts)
}

// payoutOrder returns the seats starting with the first seat after the dealer
func (h *Hand) payoutOrder() []*Seat {
	n := len(h.seats)
	ordered := make([]*Seat, n)
	for i := 0; i < n; i++ {
		ordered[i] = h.seats[(h.dealer+1+i)%n]
	}

	return ordered
}

func (h *Hand) pay(payouts potmanager.Payouts) {
	if total := payouts.Total(); total != h.pot {
		h.logger.WithField("pot", h.pot).WithField("paid", total).Error("payouts do not match the pot")
	}

	for _, payout := range payouts {
		seat := h.seat(payout.Participant.ID())
		seat.credit(payout.Amount)
		h.pot -= payout.Amount
	}

	totals := payouts.ByParticipant()
	for _, seat := range h.payoutOrder() {
		won, ok := totals[seat.ClientID]
		if !ok {
			continue
		}

		if strength, ok := h.strengths[seat.ClientID]; ok && h.revealed {
			h.log(seat.PlayerID, "%s won $%d with %s", seat.Name, won, strength.Describe())
		} else {
			h.log(seat.PlayerID, "%s won $%d", seat.Name, won)
		}
	}

	h.payouts = payouts
	h.finish()
}
