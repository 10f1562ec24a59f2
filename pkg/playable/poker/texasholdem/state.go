package texasholdem

import "encoding/json"

// State represents where a hand is
type State int

// constants for State
const (
	StatePostingBlinds State = iota
	StatePreFlop
	StateFlop
	StateTurn
	StateRiver
	StateShowdown
	StateComplete
)

func (s State) String() string {
	switch s {
	case StatePostingBlinds:
		return "posting-blinds"
	case StatePreFlop:
		return "pre-flop"
	case StateFlop:
		return "flop"
	case StateTurn:
		return "turn"
	case StateRiver:
		return "river"
	case StateShowdown:
		return "showdown"
	case StateComplete:
		return "complete"
	}

	return ""
}

// MarshalJSON encodes JSON
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}{
		ID:   int(s),
		Name: s.String(),
	})
}

// isBettingRound returns true if seats can act in this state
func (s State) isBettingRound() bool {
	return s >= StatePreFlop && s <= StateRiver
}

// communityCards returns how many cards are dealt when entering the state
func (s State) communityCards() int {
	switch s {
	case StateFlop:
		return 3
	case StateTurn, StateRiver:
		return 1
	}

	return 0
}

func (s State) title() string {
	switch s {
	case StateFlop:
		return "Flop"
	case StateTurn:
		return "Turn"
	case StateRiver:
		return "River"
	}

	return s.String()
}
