package deck

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Suit represents a card suit
type Suit string

// suit constants
const (
	Spades   Suit = "spades"
	Clubs    Suit = "clubs"
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
)

// Suits is the canonical suit order of a new deck
var Suits = []Suit{Spades, Clubs, Hearts, Diamonds}

// Letter returns the single lower-case letter for the suit
func (s Suit) Letter() string {
	switch s {
	case Spades:
		return "s"
	case Clubs:
		return "c"
	case Hearts:
		return "h"
	case Diamonds:
		return "d"
	}

	panic(fmt.Sprintf("unknown suit: %s", string(s)))
}

// face cards
const (
	Jack  = 11
	Queen = 12
	King  = 13
	Ace   = 14
	// LowAce is the rank an ace takes in a wheel (5-4-3-2-A)
	LowAce = 1
)

// BackImage is the image identifier for a face-down card
const BackImage = "blue_back.png"

// Card is an individual playing card
// Cards are values, two cards are equal if their suit and rank match
type Card struct {
	Rank int  `json:"rank"`
	Suit Suit `json:"suit"`
}

func (c Card) String() string {
	var suit string
	switch c.Suit {
	case Clubs:
		suit = "♣"
	case Diamonds:
		suit = "♢"
	case Hearts:
		suit = "♡"
	case Spades:
		suit = "♠"
	default:
		panic("unknown suit")
	}

	return RankAbbreviation(c.Rank) + suit
}

// Code returns the rendering code for the card, i.e., 14S for the ace of spades
func (c Card) Code() string {
	return strconv.Itoa(c.Rank) + strings.ToUpper(c.Suit.Letter())
}

// Image returns the image identifier used by the web client
func (c Card) Image() string {
	return c.Code() + ".png"
}

// Name returns the long name, i.e., "Ace of Spades"
func (c Card) Name() string {
	return RankName(c.Rank) + " of " + suitNames[c.Suit]
}

var suitNames = map[Suit]string{
	Spades:   "Spades",
	Clubs:    "Clubs",
	Hearts:   "Hearts",
	Diamonds: "Diamonds",
}

// IsValid returns true if the card has a known suit and a rank in 2..14
func (c Card) IsValid() bool {
	if c.Rank < 2 || c.Rank > Ace {
		return false
	}

	switch c.Suit {
	case Spades, Clubs, Hearts, Diamonds:
		return true
	}

	return false
}

// RankAbbreviation returns the short rank (2-10, J, Q, K, A)
func RankAbbreviation(rank int) string {
	switch rank {
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace, LowAce:
		return "A"
	}

	return strconv.Itoa(rank)
}

var rankNames = map[int]string{
	LowAce: "Ace",
	2:      "Two",
	3:      "Three",
	4:      "Four",
	5:      "Five",
	6:      "Six",
	7:      "Seven",
	8:      "Eight",
	9:      "Nine",
	10:     "Ten",
	Jack:   "Jack",
	Queen:  "Queen",
	King:   "King",
	Ace:    "Ace",
}

// RankName returns the spelled-out rank, i.e., "Queen"
func RankName(rank int) string {
	if name, ok := rankNames[rank]; ok {
		return name
	}

	return strconv.Itoa(rank)
}

// RankPlural returns the plural rank name, i.e., "Sixes"
func RankPlural(rank int) string {
	if rank == 6 {
		return "Sixes"
	}

	return RankName(rank) + "s"
}

var cardRx = regexp.MustCompile(`(?i)^([2-9]|1[0-4])([cdhs])\z`)

// CardFromString returns a Card from the string.
// The string must be in the format of <rank><suit> where rank >= 2 and <= 14 and suit in [cdhs]
func CardFromString(s string) Card {
	match := cardRx.FindStringSubmatch(strings.TrimSpace(s))
	if match == nil {
		panic(fmt.Sprintf("could not parse card: %s", s))
	}

	rank, err := strconv.Atoi(match[1])
	if err != nil {
		panic(fmt.Sprintf("could not parse card `%s`: %v", s, err))
	}

	var suit Suit
	switch strings.ToLower(match[2]) {
	case "c":
		suit = Clubs
	case "d":
		suit = Diamonds
	case "h":
		suit = Hearts
	case "s":
		suit = Spades
	}

	return Card{
		Rank: rank,
		Suit: suit,
	}
}

// CardsFromString will returns a slice of cards
func CardsFromString(s string) Hand {
	if s == "" {
		return Hand{}
	}

	cardStrings := strings.Split(s, ",")
	cards := make(Hand, len(cardStrings))
	for i, card := range cardStrings {
		cards[i] = CardFromString(card)
	}

	return cards
}

// CardToString converts a card (Ace of Clubs) to a string (14c)
func CardToString(card Card) string {
	return fmt.Sprintf("%d%s", card.Rank, card.Suit.Letter())
}

// CardsToString will convert a slice of cards to a string in the format of 2c,3h,4s,...
func CardsToString(cards []Card) string {
	c := make([]string, len(cards))
	for i, card := range cards {
		c[i] = CardToString(card)
	}

	return strings.Join(c, ",")
}
