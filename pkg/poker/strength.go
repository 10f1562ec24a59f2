package poker

import (
	"fmt"
	"holdem-server/pkg/deck"
	"strings"
)

// maxKickers is the number of two-digit kicker groups packed into a Strength
const maxKickers = 5

// Strength is a totally ordered hand value
//
// The value is category*10^10 followed by up to five two-digit kicker
// groups, highest first. A larger Strength is a better hand and two equal
// values are a chop.
type Strength int64

var kickerWeights = [maxKickers]int64{100000000, 1000000, 10000, 100, 1}

const categoryWeight int64 = 10000000000

func newStrength(category Category, kickers ...int) Strength {
	if len(kickers) > maxKickers {
		panic(fmt.Sprintf("too many kickers: %d", len(kickers)))
	}

	value := int64(category) * categoryWeight
	for i, k := range kickers {
		value += int64(k) * kickerWeights[i]
	}

	return Strength(value)
}

// Category returns the hand category
func (s Strength) Category() Category {
	return Category(int64(s) / categoryWeight)
}

// Kickers returns the five kicker groups, zero-padded
func (s Strength) Kickers() []int {
	kickers := make([]int, maxKickers)
	rem := int64(s) % categoryWeight
	for i, w := range kickerWeights {
		kickers[i] = int(rem / w)
		rem %= w
	}

	return kickers
}

// Float returns the strength as category.k1k2k3k4k5
func (s Strength) Float() float64 {
	return float64(s) / float64(categoryWeight)
}

// Describe returns a human readable description of the hand
func (s Strength) Describe() string {
	k := s.Kickers()
	switch s.Category() {
	case StraightFlush:
		return fmt.Sprintf("Straight Flush: %s to %s", deck.RankName(k[0]), deck.RankName(k[0]-4))
	case FourOfAKind:
		return withKickers("Four of a Kind: "+deck.RankPlural(k[0]), k[1:2])
	case FullHouse:
		return fmt.Sprintf("Full House: %s full of %s", deck.RankPlural(k[0]), deck.RankPlural(k[1]))
	case Flush:
		return "Flush: " + rankList(k)
	case Straight:
		return fmt.Sprintf("Straight: %s to %s", deck.RankName(k[0]), deck.RankName(k[0]-4))
	case ThreeOfAKind:
		return withKickers("Three of a Kind: "+deck.RankPlural(k[0]), k[1:])
	case TwoPair:
		return withKickers(fmt.Sprintf("Two Pair: %s & %s", deck.RankPlural(k[0]), deck.RankPlural(k[1])), k[2:])
	case OnePair:
		return withKickers("Pair of "+deck.RankPlural(k[0]), k[1:])
	default:
		return "High Card: " + rankList(k)
	}
}

// withKickers appends the kickers, hands of fewer than five cards may have none
func withKickers(made string, kickers []int) string {
	if list := rankList(kickers); list != "" {
		return made + ", " + list + " high"
	}

	return made
}

func rankList(ranks []int) string {
	names := make([]string, 0, len(ranks))
	for _, r := range ranks {
		if r == 0 {
			break
		}

		names = append(names, deck.RankName(r))
	}

	return strings.Join(names, ", ")
}

// DescribePreflop describes two hole cards before any community card is
// dealt. It is for display only.
func DescribePreflop(hole []deck.Card) string {
	if len(hole) != 2 {
		return ""
	}

	if hole[0].Rank == hole[1].Rank {
		return "Pair of: " + deck.RankPlural(hole[0].Rank)
	}

	hi, lo := hole[0], hole[1]
	if lo.Rank > hi.Rank {
		hi, lo = lo, hi
	}

	return fmt.Sprintf("High Card: %s, %s", hi.Name(), lo.Name())
}
