package poker

import (
	"holdem-server/pkg/playable/poker/potmanager"
)

// State provides the current betting state of a hand
type State struct {
	CurrentBet int             `json:"currentBet"`
	MinRaiseTo int             `json:"minRaiseTo"`
	Pot        int             `json:"pot"`
	Pots       potmanager.Pots `json:"pots"`
	Community  []string        `json:"community"`
}
