package deck

import (
	"sort"
)

// Hand represents a collection of cards
type Hand []Card

// SortByRank sorts the hand in ascending rank order, keeping deal order among equal ranks
func (h Hand) SortByRank() {
	sort.SliceStable(h, func(i, j int) bool {
		return h[i].rank < h[j].rank
	})
}

// Ranks returns the rank of every card in hand order
func (h Hand) Ranks() []Rank {
	ranks := make([]Rank, len(h))
	for i, c := range h {
		ranks[i] = c.rank
	}

	return ranks
}

// Replace returns a new hand with the first card matching fn swapped for card.
// If nothing matches, the returned hand is a copy of the original and false is returned.
func (h Hand) Replace(card Card, fn func(Card) bool) (Hand, bool) {
	h2 := h.Clone()
	for i, c := range h2 {
		if fn(c) {
			h2[i] = card
			return h2, true
		}
	}

	return h2, false
}

func (h Hand) String() string {
	return CardsToString(h)
}

// Clone returns a clone of the hand
func (h Hand) Clone() Hand {
	h2 := make(Hand, len(h))
	copy(h2, h)

	return h2
}
