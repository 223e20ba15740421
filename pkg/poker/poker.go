package poker

import (
	"fmt"

	"highlow-server/pkg/deck"
)

// Category is a poker hand ranking, i.e., full house
// Values increase with the strength of the hand and are used for cross-category comparison
type Category int

// Constants for category
const (
	HighCard Category = iota + 1
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	FiveOfAKind
	StraightFlush
)

// String returns the string representation of a category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "high_card"
	case OnePair:
		return "one_pair"
	case TwoPair:
		return "two_pair"
	case ThreeOfAKind:
		return "three_of_a_kind"
	case Straight:
		return "straight"
	case Flush:
		return "flush"
	case FullHouse:
		return "full_house"
	case FourOfAKind:
		return "four_of_a_kind"
	case FiveOfAKind:
		return "five_of_a_kind"
	case StraightFlush:
		return "straight_flush"
	default:
		panic(fmt.Sprintf("unknown category: %d", int(c)))
	}
}

// MarshalText renders the category name in JSON payloads
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses a category name
func (c *Category) UnmarshalText(text []byte) error {
	for cat := HighCard; cat <= StraightFlush; cat++ {
		if cat.String() == string(text) {
			*c = cat
			return nil
		}
	}

	return fmt.Errorf("unknown category: %s", text)
}

// HandSize is the number of cards a hand is classified on
const HandSize = 5

// Classify returns the category of a five card hand
func Classify(hand []deck.Card) Category {
	flush := isFlush(hand)
	straight := isStraight(hand)

	if straight && flush {
		return StraightFlush
	}

	counts := countRanks(hand)
	maxCount, pairs, hasTrips := 0, 0, false
	for _, rc := range counts {
		if rc.count > maxCount {
			maxCount = rc.count
		}

		switch rc.count {
		case 3:
			hasTrips = true
		case 2:
			pairs++
		}
	}

	switch {
	case maxCount == 5:
		return FiveOfAKind
	case maxCount == 4:
		return FourOfAKind
	case hasTrips && pairs > 0:
		return FullHouse
	case flush:
		return Flush
	case straight:
		return Straight
	case hasTrips:
		return ThreeOfAKind
	case pairs == 2:
		return TwoPair
	case pairs == 1:
		return OnePair
	default:
		return HighCard
	}
}

func isFlush(hand []deck.Card) bool {
	if len(hand) == 0 {
		return false
	}

	suit := hand[0].Suit()
	for _, c := range hand[1:] {
		if c.Suit() != suit {
			return false
		}
	}

	return true
}

// isStraight returns true for five consecutive ranks or the wheel (A-2-3-4-5)
func isStraight(hand []deck.Card) bool {
	if len(hand) != HandSize {
		return false
	}

	ranks := sortedRanks(hand)
	if isWheelRanks(ranks) {
		return true
	}

	for i := 1; i < len(ranks); i++ {
		if ranks[i]-ranks[i-1] != 1 {
			return false
		}
	}

	return true
}

func isWheelRanks(sorted []deck.Rank) bool {
	wheel := [HandSize]deck.Rank{2, 3, 4, 5, deck.Ace}
	if len(sorted) != HandSize {
		return false
	}

	for i, r := range sorted {
		if r != wheel[i] {
			return false
		}
	}

	return true
}

// topRank returns the highest rank in the hand, where the wheel tops out at five
func topRank(hand []deck.Card) deck.Rank {
	ranks := sortedRanks(hand)
	if len(ranks) == 0 {
		return 0
	}

	if isWheelRanks(ranks) {
		return deck.Five
	}

	return ranks[len(ranks)-1]
}
