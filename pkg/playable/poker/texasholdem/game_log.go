package texasholdem

import (
	"holdem-server/pkg/deck"
	"time"
)

// Summary describes a completed hand for the history log
type Summary struct {
	ID        string         `json:"id"`
	Community deck.Hand      `json:"community"`
	Pot       int            `json:"pot"`
	Aborted   bool           `json:"aborted"`
	Seats     []*SeatSummary `json:"seats"`
	Completed time.Time      `json:"completed"`
}

// SeatSummary is how one seat did in a hand
type SeatSummary struct {
	Name     string    `json:"name"`
	PlayerID int64     `json:"playerId"`
	Start    int       `json:"start"`
	End      int       `json:"end"`
	Put      int       `json:"put"`
	Won      int       `json:"won"`
	Cards    deck.Hand `json:"cards,omitempty"`
	Hand     string    `json:"hand,omitempty"`
}

// Summary returns the summary of the hand
func (h *Hand) Summary() *Summary {
	won := h.payouts.ByParticipant()
	seats := make([]*SeatSummary, len(h.seats))
	pot := 0
	for i, s := range h.seats {
		summary := &SeatSummary{
			Name:     s.Name,
			PlayerID: s.PlayerID,
			Start:    h.startingStacks[s.ClientID],
			End:      s.stack,
			Put:      s.totalIn,
			Won:      won[s.ClientID],
		}

		if strength, ok := h.strengths[s.ClientID]; ok {
			summary.Cards = s.Hole()
			summary.Hand = strength.Describe()
		}

		pot += s.totalIn
		seats[i] = summary
	}

	return &Summary{
		ID:        h.ID,
		Community: h.community.Clone(),
		Pot:       pot,
		Aborted:   h.aborted,
		Seats:     seats,
		Completed: time.Now(),
	}
}
