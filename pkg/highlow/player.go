package highlow

import (
	"strings"

	"highlow-server/pkg/deck"
)

// Direction is the side of a bet
type Direction string

// bet directions
const (
	DirectionNone Direction = "none"
	DirectionHigh Direction = "high"
	DirectionLow  Direction = "low"
)

// ParseDirection returns the direction for "high" or "low"
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case DirectionHigh:
		return DirectionHigh, nil
	case DirectionLow:
		return DirectionLow, nil
	default:
		return DirectionNone, ErrInvalidDirection
	}
}

// Bet is a wager for the current round
// An amount of zero means the player has not bet yet
type Bet struct {
	Amount    int       `json:"amount"`
	Direction Direction `json:"direction"`
}

var noBet = Bet{Amount: 0, Direction: DirectionNone}

// CardView is how a card is shown to players
type CardView struct {
	Label string `json:"label"`
	Wild  bool   `json:"wild"`
}

func viewHand(hand deck.Hand) []CardView {
	views := make([]CardView, len(hand))
	for i, c := range hand {
		views[i] = CardView{Label: c.Label(), Wild: c.IsWild()}
	}

	return views
}

// Player is a participant in the game
type Player struct {
	Username string
	hand     deck.Hand
	bet      Bet
	score    int
}

func newPlayer(username string) *Player {
	return &Player{
		Username: username,
		hand:     deck.Hand{},
		bet:      noBet,
	}
}

// Hand returns a copy of the player's hand
func (p *Player) Hand() deck.Hand {
	return p.hand.Clone()
}

// Bet returns the player's bet for the current round
func (p *Player) Bet() Bet {
	return p.bet
}

// Score returns the player's running score
func (p *Player) Score() int {
	return p.score
}
