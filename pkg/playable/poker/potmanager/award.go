package potmanager

import (
	"fmt"
	"holdem-server/pkg/poker"
)

// Payout is the amount a participant won from a single pot
type Payout struct {
	Participant Participant
	Amount      int
	Pot         int
}

// Payouts is a list of payouts
type Payouts []Payout

// Total returns the total paid out
func (p Payouts) Total() int {
	total := 0
	for _, payout := range p {
		total += payout.Amount
	}

	return total
}

// ByParticipant sums the payouts for each participant ID
func (p Payouts) ByParticipant() map[string]int {
	sums := make(map[string]int)
	for _, payout := range p {
		sums[payout.Participant.ID()] += payout.Amount
	}

	return sums
}

// Award pays out each pot to the eligible participants with the best hand
//
// A tie splits the pot evenly and the odd chips go to the tied participant
// listed first in the pot's Eligible list. Every eligible participant must
// have an entry in strengths.
func Award(pots Pots, strengths map[string]poker.Strength) (Payouts, error) {
	payouts := make(Payouts, 0, len(pots))
	for i, pot := range pots {
		if pot.Amount == 0 {
			continue
		}

		wm := NewWinManager()
		for _, pt := range pot.Eligible {
			strength, ok := strengths[pt.ID()]
			if !ok {
				return nil, fmt.Errorf("no hand strength for %s", pt.ID())
			}

			wm.AddParticipant(pt, strength)
		}

		tiers := wm.GetSortedTiers()
		if len(tiers) == 0 {
			return nil, fmt.Errorf("pot %d has no eligible participants", i)
		}

		winners := tiers[0]
		share := pot.Amount / len(winners)
		remainder := pot.Amount % len(winners)
		for j, winner := range winners {
			amount := share
			if j == 0 {
				amount += remainder
			}

			payouts = append(payouts, Payout{
				Participant: winner,
				Amount:      amount,
				Pot:         i,
			})
		}
	}

	return payouts, nil
}
