package deck

import (
	"crypto/sha1" // nolint:gosec
	"encoding/hex"
	"errors"

	"holdem-server/internal/rng"
)

// ErrEndOfDeck is an error when Deal() is attempted and there are no more cards
var ErrEndOfDeck = errors.New("end of deck reached")

// Size is the number of cards in a standard deck
const Size = 52

// Deck represents a playing deck
// Cards are dealt from a cursor, a deck never deals the same card twice between shuffles
type Deck struct {
	cards  []Card
	cursor int
	rng    rng.Generator
}

// New returns a new deck of cards in canonical order.
// Important! this deck is unshuffled. You must call the Shuffle() method to shuffle the cards
func New() *Deck {
	d := &Deck{
		rng: rng.Crypto{},
	}

	d.buildDeck()
	return d
}

// SetGenerator replaces the random number generator
// Tests and simulations use this for deterministic shuffles
func (d *Deck) SetGenerator(g rng.Generator) {
	d.rng = g
}

func (d *Deck) buildDeck() {
	cards := make([]Card, 0, Size)
	for _, suit := range Suits {
		for rank := 2; rank <= Ace; rank++ {
			cards = append(cards, Card{
				Rank: rank,
				Suit: suit,
			})
		}
	}

	d.cards = cards
	d.cursor = 0
}

// Shuffle produces a uniformly random permutation (Fisher-Yates) and resets the deal cursor
func (d *Deck) Shuffle() {
	for j := len(d.cards) - 1; j > 0; j-- {
		i := d.rng.Intn(j + 1)

		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}

	d.cursor = 0
}

// Deal returns the next undealt card
// If all 52 cards were dealt since the last shuffle, ErrEndOfDeck is returned
func (d *Deck) Deal() (Card, error) {
	if d.cursor >= len(d.cards) {
		return Card{}, ErrEndOfDeck
	}

	card := d.cards[d.cursor]
	d.cursor++

	return card, nil
}

// CanDeal returns true if there are {want} cards left in the deck
func (d *Deck) CanDeal(want int) bool {
	return d.CardsLeft() >= want
}

// CardsLeft returns the number of cards left in the deck
func (d *Deck) CardsLeft() int {
	return len(d.cards) - d.cursor
}

// Cards returns a copy of the deck order, dealt cards included
func (d *Deck) Cards() []Card {
	c := make([]Card, len(d.cards))
	copy(c, d.cards)
	return c
}

// HashCode returns a SHA1 hash code of the deck order.
func (d *Deck) HashCode() string {
	hash := sha1.New() // nolint:gosec
	for _, card := range d.cards {
		_, _ = hash.Write([]byte(card.String()))
	}

	return hex.EncodeToString(hash.Sum(nil)[:])
}

// Stack moves the cards to the top of the deck in the order given and
// resets the deal cursor. The remaining cards keep their relative order.
func (d *Deck) Stack(top ...Card) {
	rest := make([]Card, 0, len(d.cards))
	for _, card := range d.cards {
		if !Hand(top).HasCard(card) {
			rest = append(rest, card)
		}
	}

	d.cards = append(append(make([]Card, 0, len(d.cards)), top...), rest...)
	d.cursor = 0
}
