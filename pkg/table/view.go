package table

import (
	"holdem-server/pkg/playable/poker/action"
	"holdem-server/pkg/playable/poker/texasholdem"

	playablepoker "holdem-server/pkg/playable/poker"
)

// View is the table as one client sees it
type View struct {
	ID         string                  `json:"id"`
	Begun      bool                    `json:"begun"`
	Host       string                  `json:"host"`
	Blinds     [2]int                  `json:"blinds"`
	Seats      []texasholdem.SeatView  `json:"seats"`
	HandID     string                  `json:"handId,omitempty"`
	State      *texasholdem.State      `json:"state,omitempty"`
	Betting    *playablepoker.State    `json:"betting,omitempty"`
	LastAction *texasholdem.LastAction `json:"lastAction,omitempty"`
	Actions    []action.Action         `json:"actions"`
	Summary    *texasholdem.Summary    `json:"summary,omitempty"`
}

// View returns the state of the table for the client
// Hole cards are hidden unless they belong to the client or were shown down
func (t *Table) View(clientID string) *View {
	view := &View{
		ID:      t.ID,
		Begun:   t.begun,
		Blinds:  [2]int{t.options.SmallBlind, t.options.BigBlind},
		Seats:   make([]texasholdem.SeatView, len(t.seats)),
		Actions: make([]action.Action, 0),
		Summary: t.lastSummary,
	}

	if host := t.seat(t.host); host != nil {
		view.Host = host.Name
	}

	for i, s := range t.seats {
		view.Seats[i] = texasholdem.NewSeatView(s, t.hand, clientID)
	}

	if t.hand == nil {
		return view
	}

	state := t.hand.State()
	view.HandID = t.hand.ID
	view.State = &state
	view.Betting = t.hand.BettingState()
	view.LastAction = t.hand.LastAction()
	if actions := t.hand.LegalActions(clientID); actions != nil {
		view.Actions = actions
	}

	return view
}
