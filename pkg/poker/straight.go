package poker

import "holdem-server/pkg/deck"

// straightLength is the number of consecutive ranks in a straight
const straightLength = 5

// highestStraight returns the top rank of the best straight formed by the
// ranks present. An ace also counts as a one, so the wheel tops at five.
func highestStraight(present map[int]bool) (int, bool) {
	for top := deck.Ace; top >= straightLength; top-- {
		ok := true
		for r := top; r > top-straightLength; r-- {
			rank := r
			if rank == deck.LowAce {
				rank = deck.Ace
			}

			if !present[rank] {
				ok = false
				break
			}
		}

		if ok {
			return top, true
		}
	}

	return 0, false
}
