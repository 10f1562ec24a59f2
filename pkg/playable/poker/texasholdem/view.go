package texasholdem

import (
	"holdem-server/pkg/deck"
	"holdem-server/pkg/playable/poker/potmanager"
	"holdem-server/pkg/poker"

	playablepoker "holdem-server/pkg/playable/poker"
)

// SeatView is the public view of a seat for one viewer
type SeatView struct {
	Name     string `json:"name"`
	Stack    int    `json:"stack"`
	MoneyIn  int    `json:"moneyIn"`
	Card1    string `json:"card1"`
	Card2    string `json:"card2"`
	Status   Status `json:"status"`
	IsTurn   bool   `json:"isTurn"`
	IsDealer bool   `json:"isDealer"`
	Hand     string `json:"hand"`
}

// NewSeatView builds the view of the seat for the viewer's client ID
// Hole cards are only shown to their owner, or to everyone at showdown
func NewSeatView(s *Seat, h *Hand, viewer string) SeatView {
	view := SeatView{
		Name:   s.Name,
		Stack:  s.stack,
		Status: StatusUndecided,
	}

	if h == nil || h.seat(s.ClientID) == nil {
		return view
	}

	view.MoneyIn = s.streetIn
	view.Status = s.status
	view.IsTurn = h.turn >= 0 && h.seats[h.turn] == s
	view.IsDealer = h.seats[h.dealer] == s

	if len(s.hole) != 2 {
		return view
	}

	owner := s.ClientID == viewer
	shown := h.revealed && !s.Folded()
	switch {
	case owner || shown:
		view.Card1 = s.hole[0].Image()
		view.Card2 = s.hole[1].Image()
		view.Hand = h.describe(s)
	case !s.Folded():
		view.Card1 = deck.BackImage
		view.Card2 = deck.BackImage
	}

	return view
}

func (h *Hand) describe(s *Seat) string {
	if len(h.community) == 0 {
		return poker.DescribePreflop(s.hole)
	}

	strength, err := poker.Evaluate(s.hole, h.community)
	if err != nil {
		return ""
	}

	return strength.Describe()
}

// BettingState returns the current bet and pot state
func (h *Hand) BettingState() *playablepoker.State {
	pots := h.pots
	if pots == nil {
		participants := make([]potmanager.Participant, 0, len(h.seats))
		for _, s := range h.payoutOrder() {
			participants = append(participants, s)
		}

		pots = livePots(potmanager.Partition(participants))
	}

	return &playablepoker.State{
		CurrentBet: h.currentBet,
		MinRaiseTo: h.MinRaiseTo(),
		Pot:        h.pot,
		Pots:       pots,
		Community:  h.community.Images(),
	}
}

// livePots merges pots that are only split because betting on the street
// is unfinished. A side pot boundary stays once an all-in seat is capped
// by it.
func livePots(pots potmanager.Pots) potmanager.Pots {
	merged := make(potmanager.Pots, 0, len(pots))
	for _, pot := range pots {
		if n := len(merged); n > 0 && !capsAllIn(merged[n-1], pot) {
			merged[n-1] = &potmanager.Pot{
				Amount:   merged[n-1].Amount + pot.Amount,
				Eligible: merged[n-1].Eligible,
			}

			continue
		}

		merged = append(merged, pot)
	}

	return merged
}

func capsAllIn(lower, upper *potmanager.Pot) bool {
	for _, p := range lower.Eligible {
		if s, ok := p.(*Seat); ok && s.status == StatusAllIn && !upper.IsEligible(p) {
			return true
		}
	}

	return false
}

// State returns where the hand is
func (h *Hand) State() State {
	return h.state
}

// IsComplete returns true once the pot was paid or the hand was aborted
func (h *Hand) IsComplete() bool {
	return h.state == StateComplete
}

// Aborted returns true if the hand was cancelled and bets returned
func (h *Hand) Aborted() bool {
	return h.aborted
}

// Community returns a copy of the community cards
func (h *Hand) Community() deck.Hand {
	return h.community.Clone()
}

// Pot returns the chips in the pot
func (h *Hand) Pot() int {
	return h.pot
}

// CurrentBet returns the amount to match this street
func (h *Hand) CurrentBet() int {
	return h.currentBet
}

// Seats returns the seats dealt into the hand
func (h *Hand) Seats() []*Seat {
	seats := make([]*Seat, len(h.seats))
	copy(seats, h.seats)
	return seats
}

// Turn returns the seat on the clock, or nil
func (h *Hand) Turn() *Seat {
	if h.turn < 0 {
		return nil
	}

	return h.seats[h.turn]
}

// Dealer returns the seat with the button
func (h *Hand) Dealer() *Seat {
	return h.seats[h.dealer]
}

// SmallBlind returns the seat that posted the small blind
func (h *Hand) SmallBlind() *Seat {
	return h.seats[h.smallBlind]
}

// BigBlind returns the seat that posted the big blind
func (h *Hand) BigBlind() *Seat {
	return h.seats[h.bigBlind]
}

// HasSeat returns true if the client was dealt in
func (h *Hand) HasSeat(clientID string) bool {
	return h.seat(clientID) != nil
}

// LastAction returns the most recent action, or nil
func (h *Hand) LastAction() *LastAction {
	return h.lastAction
}

// Payouts returns what each seat won, once the hand is complete
func (h *Hand) Payouts() potmanager.Payouts {
	return h.payouts
}
