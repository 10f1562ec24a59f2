package poker

import (
	"holdem-server/pkg/deck"
	"sort"
)

// HandAnalyzer finds the best five-card hand among up to seven cards
type HandAnalyzer struct {
	cards []deck.Card

	// ranks grouped by how many times they appear, highest rank first
	quads []int
	trips []int
	pairs []int

	// flush holds every rank of the flush suit, highest first
	flush      []int
	flushRanks map[int]bool
	ranks      map[int]bool

	strength Strength
}

// Evaluate returns the strength of the best hand the hole and community
// cards can make
func Evaluate(hole []deck.Card, community []deck.Card) (Strength, error) {
	cards := make([]deck.Card, 0, len(hole)+len(community))
	cards = append(cards, hole...)
	cards = append(cards, community...)

	h, err := NewHandAnalyzer(cards)
	if err != nil {
		return 0, err
	}

	return h.Strength(), nil
}

// NewHandAnalyzer will return a new HandAnalyzer instance
func NewHandAnalyzer(cards []deck.Card) (*HandAnalyzer, error) {
	if len(cards) < 2 {
		return nil, ErrTooFewCards
	}

	newCards := make([]deck.Card, len(cards))
	copy(newCards, cards)
	sort.Stable(sort.Reverse(sortByRank(newCards)))

	h := &HandAnalyzer{
		cards: newCards,
		ranks: make(map[int]bool),
	}

	h.analyze()
	h.strength = h.rank()

	return h, nil
}

// Strength returns the strength of the best hand
func (h *HandAnalyzer) Strength() Strength {
	return h.strength
}

// Category returns the category of the best hand
func (h *HandAnalyzer) Category() Category {
	return h.strength.Category()
}

func (h *HandAnalyzer) analyze() {
	counts := make(map[int]int)
	suits := make(map[deck.Suit][]int)

	for _, card := range h.cards {
		counts[card.Rank]++
		h.ranks[card.Rank] = true
		suits[card.Suit] = append(suits[card.Suit], card.Rank)
	}

	for rank := deck.Ace; rank >= 2; rank-- {
		switch counts[rank] {
		case 4:
			h.quads = append(h.quads, rank)
		case 3:
			h.trips = append(h.trips, rank)
		case 2:
			h.pairs = append(h.pairs, rank)
		}
	}

	for _, ranks := range suits {
		if len(ranks) >= 5 {
			h.flush = ranks
			h.flushRanks = make(map[int]bool)
			for _, r := range ranks {
				h.flushRanks[r] = true
			}
		}
	}
}

func (h *HandAnalyzer) rank() Strength {
	if h.flush != nil {
		if top, ok := highestStraight(h.flushRanks); ok {
			return newStrength(StraightFlush, top)
		}
	}

	if len(h.quads) > 0 {
		q := h.quads[0]
		return newStrength(FourOfAKind, append([]int{q}, h.kickers(1, q)...)...)
	}

	if len(h.trips) > 0 {
		t := h.trips[0]
		pair := 0
		if len(h.pairs) > 0 {
			pair = h.pairs[0]
		}
		if len(h.trips) > 1 && h.trips[1] > pair {
			pair = h.trips[1]
		}

		if pair > 0 {
			return newStrength(FullHouse, t, pair)
		}
	}

	if h.flush != nil {
		return newStrength(Flush, h.flush[:5]...)
	}

	if top, ok := highestStraight(h.ranks); ok {
		return newStrength(Straight, top)
	}

	if len(h.trips) > 0 {
		t := h.trips[0]
		return newStrength(ThreeOfAKind, append([]int{t}, h.kickers(2, t)...)...)
	}

	if len(h.pairs) >= 2 {
		hi, lo := h.pairs[0], h.pairs[1]
		return newStrength(TwoPair, append([]int{hi, lo}, h.kickers(1, hi, lo)...)...)
	}

	if len(h.pairs) == 1 {
		p := h.pairs[0]
		return newStrength(OnePair, append([]int{p}, h.kickers(3, p)...)...)
	}

	return newStrength(HighCard, h.kickers(5)...)
}

// kickers returns up to n of the highest card ranks not in exclude
func (h *HandAnalyzer) kickers(n int, exclude ...int) []int {
	kickers := make([]int, 0, n)
	for _, card := range h.cards {
		if len(kickers) == n {
			break
		}

		if containsRank(exclude, card.Rank) {
			continue
		}

		kickers = append(kickers, card.Rank)
	}

	return kickers
}

func containsRank(ranks []int, rank int) bool {
	for _, r := range ranks {
		if r == rank {
			return true
		}
	}

	return false
}
