package potmanager

import "sort"

// Partition splits every participant's contribution into a main pot and
// side pots
//
// Each distinct contribution level closes a pot. A pot collects, from every
// participant, the part of their contribution between the previous level and
// its own, and it can be won by any participant who did not fold and put in
// at least that level. Consecutive pots with the same eligible participants
// are merged. Participants must be passed in payout priority order, which is
// kept in each pot's Eligible list.
func Partition(participants []Participant) Pots {
	levels := contributionLevels(participants)

	pots := make(Pots, 0, len(levels))
	carry := 0
	prevLevel := 0
	for _, level := range levels {
		pot := &Pot{Amount: carry}
		carry = 0

		for _, pt := range participants {
			amount := pt.Contributed()
			if amount > level {
				amount = level
			}

			if diff := amount - prevLevel; diff > 0 {
				pot.Amount += diff
			}

			if !pt.Folded() && pt.Contributed() >= level {
				pot.Eligible = append(pot.Eligible, pt)
			}
		}

		prevLevel = level

		if len(pot.Eligible) == 0 {
			// nobody left can claim these chips, they go to the pot below
			if len(pots) > 0 {
				pots[len(pots)-1].Amount += pot.Amount
			} else {
				carry = pot.Amount
			}

			continue
		}

		if len(pots) > 0 && pots[len(pots)-1].sameEligibility(pot) {
			pots[len(pots)-1].Amount += pot.Amount
			continue
		}

		pots = append(pots, pot)
	}

	return pots
}

func contributionLevels(participants []Participant) []int {
	seen := make(map[int]bool)
	levels := make([]int, 0, len(participants))
	for _, pt := range participants {
		c := pt.Contributed()
		if c <= 0 || seen[c] {
			continue
		}

		seen[c] = true
		levels = append(levels, c)
	}

	sort.Ints(levels)
	return levels
}
