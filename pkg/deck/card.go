package deck

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrUnknownRank is returned when a rank name cannot be parsed
var ErrUnknownRank = errors.New("unknown rank")

// ErrUnknownSuit is returned when a suit name cannot be parsed
var ErrUnknownSuit = errors.New("unknown suit")

// Suit represents a card suit
type Suit string

// suit constants
const (
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
	Clubs    Suit = "clubs"
	Spades   Suit = "spades"
)

// Suits is the canonical suit order used to build a deck
var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

// Rank is the face value of a card, 2 through 14
type Rank int

// face cards
const (
	Two   Rank = 2
	Five  Rank = 5
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
	Ace   Rank = 14
)

// MinRank and MaxRank bound the ranks found in a deck
const (
	MinRank = Two
	MaxRank = Ace
)

var rankNames = map[string]Rank{
	"jack":  Jack,
	"queen": Queen,
	"king":  King,
	"ace":   Ace,
	"j":     Jack,
	"q":     Queen,
	"k":     King,
	"a":     Ace,
}

// ParseRank converts "2".."14" or a face name (Jack, Queen, King, Ace) to a Rank
func ParseRank(s string) (Rank, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if r, ok := rankNames[s]; ok {
		return r, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil || Rank(n) < MinRank || Rank(n) > MaxRank {
		return 0, fmt.Errorf("%w: %q", ErrUnknownRank, s)
	}

	return Rank(n), nil
}

// ParseSuit converts a suit name to a Suit
func ParseSuit(s string) (Suit, error) {
	suit := Suit(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Suits {
		if suit == known {
			return suit, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownSuit, s)
}

// Card is an individual playing card. Cards are values and never change once built.
type Card struct {
	rank Rank
	suit Suit

	// set on cards produced by a wild card substitution
	substituted bool
}

// NewCard returns a card with the given rank and suit
func NewCard(rank Rank, suit Suit) Card {
	return Card{rank: rank, suit: suit}
}

// NewWildCard returns a card that is always wild regardless of rank and suit.
// It represents what a wild card was substituted for.
func NewWildCard(rank Rank, suit Suit) Card {
	return Card{rank: rank, suit: suit, substituted: true}
}

// Rank returns the card rank
func (c Card) Rank() Rank {
	return c.rank
}

// Suit returns the card suit
func (c Card) Suit() Suit {
	return c.suit
}

// IsWild returns true for every 2, the one-eyed jacks (hearts and spades), and substituted cards
func (c Card) IsWild() bool {
	if c.substituted {
		return true
	}

	return c.rank == Two || (c.rank == Jack && (c.suit == Hearts || c.suit == Spades))
}

// Label is the display identity of a card, i.e., "11hearts"
func (c Card) Label() string {
	return strconv.Itoa(int(c.rank)) + string(c.suit)
}

func (c Card) String() string {
	var rank string
	switch c.rank {
	case Jack:
		rank = "J"
	case Queen:
		rank = "Q"
	case King:
		rank = "K"
	case Ace:
		rank = "A"
	default:
		rank = strconv.Itoa(int(c.rank))
	}

	var suit string
	switch c.suit {
	case Clubs:
		suit = "♣"
	case Diamonds:
		suit = "♢"
	case Hearts:
		suit = "♡"
	case Spades:
		suit = "♠"
	default:
		suit = "?"
	}

	return rank + suit
}

var descriptorRx = regexp.MustCompile(`(?i)^\s*(\S+)\s+of\s+(\S+)\s*$`)

// ParseDescriptor parses "<rank> of <suit>" (i.e., "Queen of spades", "7 of clubs")
// and returns a substituted wild card
func ParseDescriptor(s string) (Card, error) {
	match := descriptorRx.FindStringSubmatch(s)
	if match == nil {
		return Card{}, fmt.Errorf("%w: could not parse %q", ErrUnknownRank, s)
	}

	rank, err := ParseRank(match[1])
	if err != nil {
		return Card{}, err
	}

	suit, err := ParseSuit(match[2])
	if err != nil {
		return Card{}, err
	}

	return NewWildCard(rank, suit), nil
}

var cardRx = regexp.MustCompile(`(?i)^(!)?([2-9]|1[0-4])([cdhs])\z`)

// CardFromString returns a Card from the string.
// The string must be in the format of <rank><suit> where rank >= 2 and <= 14 and suit in [cdhs].
// A leading "!" marks a substituted wild card.
func CardFromString(s string) Card {
	match := cardRx.FindStringSubmatch(s)
	if match == nil {
		panic(fmt.Sprintf("could not parse card: %s", s))
	}

	rank, _ := strconv.Atoi(match[2])

	var suit Suit
	switch strings.ToLower(match[3]) {
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
		rank:        Rank(rank),
		suit:        suit,
		substituted: match[1] == "!",
	}
}

// CardsFromString will return a slice of cards from a comma separated list
func CardsFromString(s string) []Card {
	if s == "" {
		return []Card{}
	}

	cardStrings := strings.Split(s, ",")
	cards := make([]Card, len(cardStrings))
	for i, card := range cardStrings {
		cards[i] = CardFromString(strings.TrimSpace(card))
	}

	return cards
}

// CardToString converts a card (Ace of Clubs) to a string (14c)
func CardToString(card Card) string {
	prefix := ""
	if card.substituted {
		prefix = "!"
	}

	return fmt.Sprintf("%s%d%c", prefix, card.rank, card.suit[0])
}

// CardsToString will convert a slice of cards to a string in the format of 2c,3h,4s,...
func CardsToString(cards []Card) string {
	c := make([]string, len(cards))
	for i, card := range cards {
		c[i] = CardToString(card)
	}

	return strings.Join(c, ",")
}
