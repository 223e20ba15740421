package highlow

import (
	"highlow-server/pkg/deck"
	"highlow-server/pkg/payout"
	"highlow-server/pkg/poker"
)

// Game is a multi-round game of high/low betting on five card hands.
// A Game is not safe for concurrent use; callers must apply commands one at a time.
type Game struct {
	options Options
	deck    *deck.Deck

	// players in join order
	players    []*Player
	idToPlayer map[string]*Player

	started     bool
	roundsTotal int
	roundsLeft  int
}

// NewGame returns a new game with an empty roster and a shuffled deck
func NewGame(opts Options) *Game {
	if opts.Generator == nil {
		opts.Generator = DefaultOptions().Generator
	}

	if opts.MinPlayers < 2 {
		opts.MinPlayers = 2
	}

	d := deck.New()
	d.SetGenerator(opts.Generator)
	d.Shuffle()

	return &Game{
		options:    opts,
		deck:       d,
		players:    make([]*Player, 0),
		idToPlayer: make(map[string]*Player),
	}
}

// AddPlayer registers a new player with an empty hand, no bet, and a zero score
func (g *Game) AddPlayer(username string) error {
	if g.started {
		return ErrGameAlreadyStarted
	}

	if username == "" {
		return ErrEmptyUsername
	}

	if _, ok := g.idToPlayer[username]; ok {
		return ErrUsernameTaken
	}

	p := newPlayer(username)
	g.players = append(g.players, p)
	g.idToPlayer[username] = p

	return nil
}

// RemovePlayer removes the player and all of their state, forfeiting any outstanding bet.
// It is allowed at any point in the game.
func (g *Game) RemovePlayer(username string) error {
	if _, ok := g.idToPlayer[username]; !ok {
		return ErrUnknownPlayer
	}

	players := make([]*Player, 0, len(g.players))
	for _, p := range g.players {
		if p.Username != username {
			players = append(players, p)
		}
	}

	g.players = players
	delete(g.idToPlayer, username)

	return nil
}

// CanStart returns true if enough players have joined
func (g *Game) CanStart() bool {
	return len(g.players) >= g.options.MinPlayers
}

// Start marks the game as started. Only Reset() reverts it.
func (g *Game) Start() {
	g.started = true
}

// Started returns true if the game has started
func (g *Game) Started() bool {
	return g.started
}

// SetRounds sets the total and remaining rounds
func (g *Game) SetRounds(n int) error {
	if n < 0 {
		return ErrInvalidRounds
	}

	g.roundsTotal = n
	g.roundsLeft = n

	return nil
}

// RoundsLeft returns the number of rounds still to be settled
func (g *Game) RoundsLeft() int {
	return g.roundsLeft
}

// RoundsTotal returns the number of rounds the game was set to
func (g *Game) RoundsTotal() int {
	return g.roundsTotal
}

// DealHand draws five cards for the player, replacing any previous hand.
// The deck is not reshuffled; callers deal from a freshly reset deck each round.
func (g *Game) DealHand(username string) ([]CardView, error) {
	p, ok := g.idToPlayer[username]
	if !ok {
		return nil, ErrUnknownPlayer
	}

	cards, err := g.deck.Deal(poker.HandSize)
	if err != nil {
		return nil, err
	}

	hand := deck.Hand(cards)
	hand.SortByRank()
	p.hand = hand

	return viewHand(hand), nil
}

// DealRound resets and shuffles the deck and deals a hand to every player in join order
func (g *Game) DealRound() (map[string][]CardView, error) {
	if !g.started {
		return nil, ErrGameNotStarted
	}

	if g.roundsLeft <= 0 {
		return nil, ErrNoRoundsLeft
	}

	if len(g.players)*poker.HandSize > deck.Size {
		return nil, deck.ErrDeckExhausted
	}

	g.deck.Reset()
	g.deck.Shuffle()

	hands := make(map[string][]CardView, len(g.players))
	for _, p := range g.players {
		hand, err := g.DealHand(p.Username)
		if err != nil {
			// unreachable given the size check above
			return nil, err
		}

		hands[p.Username] = hand
	}

	return hands, nil
}

// Hand returns the player's current hand
func (g *Game) Hand(username string) ([]CardView, error) {
	p, ok := g.idToPlayer[username]
	if !ok {
		return nil, ErrUnknownPlayer
	}

	return viewHand(p.hand), nil
}

// PlaceBet records the player's bet for the round, replacing any earlier bet
func (g *Game) PlaceBet(username string, amount int, direction Direction) error {
	p, ok := g.idToPlayer[username]
	if !ok {
		return ErrUnknownPlayer
	}

	if amount < 0 {
		return ErrInvalidBetAmount
	}

	if direction != DirectionHigh && direction != DirectionLow {
		return ErrInvalidDirection
	}

	p.bet = Bet{Amount: amount, Direction: direction}
	return nil
}

// BettingOpen returns nil if the player may bet on the current round.
// A round is open once the player holds a dealt hand and rounds remain.
func (g *Game) BettingOpen(username string) error {
	if !g.started {
		return ErrGameNotStarted
	}

	p, ok := g.idToPlayer[username]
	if !ok {
		return ErrUnknownPlayer
	}

	if g.roundsLeft <= 0 {
		return ErrNoRoundsLeft
	}

	if len(p.hand) != poker.HandSize {
		return ErrNoHand
	}

	return nil
}

// AllBetsIn returns true if every player has a non-zero bet
func (g *Game) AllBetsIn() bool {
	for _, p := range g.players {
		if p.bet.Amount == 0 {
			return false
		}
	}

	return true
}

// ReplaceWild substitutes the first wild card labelled oldLabel with the card described by
// newDescriptor (i.e., "Queen of hearts"). The card keeps its position in the hand.
// If no wild card matches, the hand is returned unchanged and no error is raised.
func (g *Game) ReplaceWild(username, oldLabel, newDescriptor string) ([]CardView, error) {
	p, ok := g.idToPlayer[username]
	if !ok {
		return nil, ErrUnknownPlayer
	}

	card, err := deck.ParseDescriptor(newDescriptor)
	if err != nil {
		return nil, err
	}

	hand, _ := p.hand.Replace(card, func(c deck.Card) bool {
		return c.IsWild() && c.Label() == oldLabel
	})
	p.hand = hand

	return viewHand(hand), nil
}

// Standings returns each player's score in join order
func (g *Game) Standings() []payout.Standing {
	standings := make([]payout.Standing, len(g.players))
	for i, p := range g.players {
		standings[i] = payout.Standing{Username: p.Username, Score: p.score}
	}

	return standings
}

// Scores returns each player's score by username
func (g *Game) Scores() map[string]int {
	scores := make(map[string]int, len(g.players))
	for _, p := range g.players {
		scores[p.Username] = p.score
	}

	return scores
}

// DistributeMoney converts the current scores into a settlement between winners and losers
func (g *Game) DistributeMoney() (*payout.Settlement, error) {
	return payout.Distribute(g.Standings())
}

// Player returns the registered player
func (g *Game) Player(username string) (*Player, bool) {
	p, ok := g.idToPlayer[username]
	return p, ok
}

// Usernames returns the roster in join order
func (g *Game) Usernames() []string {
	names := make([]string, len(g.players))
	for i, p := range g.players {
		names[i] = p.Username
	}

	return names
}

// Reset clears the roster and every counter and reshuffles a full deck
func (g *Game) Reset() {
	g.deck.Reset()
	g.deck.Shuffle()
	g.players = make([]*Player, 0)
	g.idToPlayer = make(map[string]*Player)
	g.started = false
	g.roundsTotal = 0
	g.roundsLeft = 0
}
