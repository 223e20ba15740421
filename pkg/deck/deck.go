package deck

import (
	"crypto/sha1" // nolint:gosec
	"encoding/hex"
	"errors"
	"fmt"

	"highlow-server/internal/rng"
)

// ErrDeckExhausted is returned when more cards are requested than remain in the deck
var ErrDeckExhausted = errors.New("deck exhausted")

// Size is the number of cards in a full deck
const Size = 52

// Deck represents a playing deck
type Deck struct {
	cards []Card
	rng   rng.Generator
}

// New returns a new deck of cards in canonical (suit, rank) order.
// Important! this deck is unshuffled. You must call the Shuffle() method to shuffle the cards
func New() *Deck {
	d := &Deck{
		rng: rng.Crypto{},
	}

	d.Reset()
	return d
}

// SetGenerator replaces the random number generator used by Shuffle()
// Tests use this with a seeded math/rand source for deterministic deals
func (d *Deck) SetGenerator(g rng.Generator) {
	d.rng = g
}

// Reset restores the full 52-card set in canonical order, discarding all dealt cards.
// It does not shuffle.
func (d *Deck) Reset() {
	cards := make([]Card, 0, Size)
	for _, suit := range Suits {
		for rank := MinRank; rank <= MaxRank; rank++ {
			cards = append(cards, NewCard(rank, suit))
		}
	}

	d.cards = cards
}

// Shuffle will shuffle the cards currently in the deck
func (d *Deck) Shuffle() {
	rng.Shuffle(d.rng, len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Deal removes n cards from the end of the deck and returns them in the order they were popped
func (d *Deck) Deal(n int) ([]Card, error) {
	if n < 0 {
		return nil, fmt.Errorf("cannot deal %d cards", n)
	}

	if n > len(d.cards) {
		return nil, ErrDeckExhausted
	}

	dealt := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		last := len(d.cards) - 1
		dealt = append(dealt, d.cards[last])
		d.cards = d.cards[:last]
	}

	return dealt, nil
}

// CanDeal returns true if there are {want} cards left in the deck
func (d *Deck) CanDeal(want int) bool {
	return len(d.cards) >= want
}

// CardsLeft returns the number of cards left in the deck
func (d *Deck) CardsLeft() int {
	return len(d.cards)
}

// Cards returns a copy of the cards remaining in the deck
func (d *Deck) Cards() []Card {
	return append([]Card{}, d.cards...)
}

// HashCode returns a SHA1 hash code of the deck order.
func (d *Deck) HashCode() string {
	hash := sha1.New() // nolint:gosec
	for _, card := range d.cards {
		_, _ = hash.Write([]byte(card.Label()))
	}

	return hex.EncodeToString(hash.Sum(nil))
}
