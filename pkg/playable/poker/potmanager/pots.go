package potmanager

import "encoding/json"

// Pot is a main or side pot
// Eligible participants are listed in payout priority order
type Pot struct {
	Amount   int
	Eligible []Participant
}

type potJSON struct {
	Amount   int      `json:"amount"`
	Eligible []string `json:"eligible"`
}

// MarshalJSON provides custom marshalling
func (p Pot) MarshalJSON() ([]byte, error) {
	ids := make([]string, len(p.Eligible))
	for i, pt := range p.Eligible {
		ids[i] = pt.ID()
	}

	return json.Marshal(potJSON{
		Amount:   p.Amount,
		Eligible: ids,
	})
}

// IsEligible returns true if the participant can win the pot
func (p *Pot) IsEligible(pt Participant) bool {
	for _, e := range p.Eligible {
		if e.ID() == pt.ID() {
			return true
		}
	}

	return false
}

// sameEligibility returns true if both pots can be won by exactly the same participants
func (p *Pot) sameEligibility(other *Pot) bool {
	if len(p.Eligible) != len(other.Eligible) {
		return false
	}

	for _, pt := range p.Eligible {
		if !other.IsEligible(pt) {
			return false
		}
	}

	return true
}

// Pots is a collection of pots, main pot first
type Pots []*Pot

// Total returns the combined total of all pots
func (p Pots) Total() int {
	total := 0
	for _, pot := range p {
		total += pot.Amount
	}

	return total
}
