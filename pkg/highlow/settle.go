package highlow

import (
	"sort"

	"highlow-server/pkg/deck"
	"highlow-server/pkg/poker"
)

// Bettors lists the players of each bet direction, highest score first
type Bettors struct {
	High []string `json:"high"`
	Low  []string `json:"low"`
}

// RoundResult is the outcome of a settled round
type RoundResult struct {
	Scores      map[string]int            `json:"scores"`
	Hands       map[string][]CardView     `json:"hands"`
	Categories  map[string]poker.Category `json:"categories"`
	Bettors     Bettors                   `json:"bettors"`
	Winners     []string                  `json:"winners"`
	ScoreDeltas map[string]int            `json:"scoreDeltas"`
	RoundsLeft  int                       `json:"roundsLeft"`
}

// SettleRound resolves the round once every player has bet.
// High bettors compete for the best hand, low bettors for the worst. Winners gain their bet
// and the rest of their group lose it. Afterwards bets and hands are cleared, a round is
// used up, and the deck is reset and reshuffled.
func (g *Game) SettleRound() (*RoundResult, error) {
	if !g.AllBetsIn() {
		return nil, ErrSettlementNotReady
	}

	high := g.bettors(DirectionHigh)
	low := g.bettors(DirectionLow)

	result := &RoundResult{
		Scores:      make(map[string]int, len(g.players)),
		Hands:       make(map[string][]CardView, len(g.players)),
		Categories:  make(map[string]poker.Category, len(g.players)),
		ScoreDeltas: make(map[string]int, len(g.players)),
		Winners:     make([]string, 0, len(g.players)),
	}

	winners := make(map[string]bool)
	for _, group := range []struct {
		players []*Player
		high    bool
	}{{high, true}, {low, false}} {
		for _, p := range groupWinners(group.players, group.high) {
			winners[p.Username] = true
		}
	}

	for _, p := range g.players {
		delta := 0
		if p.bet.Direction == DirectionHigh || p.bet.Direction == DirectionLow {
			if winners[p.Username] {
				delta = p.bet.Amount
				result.Winners = append(result.Winners, p.Username)
			} else {
				delta = -p.bet.Amount
			}
		}

		p.score += delta
		result.ScoreDeltas[p.Username] = delta
		result.Hands[p.Username] = viewHand(p.hand)
		if len(p.hand) == poker.HandSize {
			result.Categories[p.Username] = poker.Classify(p.hand)
		}

		p.bet = noBet
		p.hand = deck.Hand{}
	}

	for _, p := range g.players {
		result.Scores[p.Username] = p.score
	}

	result.Bettors = Bettors{
		High: sortedByScore(high),
		Low:  sortedByScore(low),
	}

	if g.roundsLeft > 0 {
		g.roundsLeft--
	}
	result.RoundsLeft = g.roundsLeft

	g.deck.Reset()
	g.deck.Shuffle()

	return result, nil
}

func (g *Game) bettors(direction Direction) []*Player {
	players := make([]*Player, 0, len(g.players))
	for _, p := range g.players {
		if p.bet.Direction == direction {
			players = append(players, p)
		}
	}

	return players
}

func groupWinners(players []*Player, high bool) []*Player {
	if len(players) == 0 {
		return nil
	}

	hands := make([][]deck.Card, len(players))
	for i, p := range players {
		hands[i] = p.hand.Clone()
	}

	indices := poker.ReturnWinners(hands, high)
	winners := make([]*Player, len(indices))
	for i, idx := range indices {
		winners[i] = players[idx]
	}

	return winners
}

// sortedByScore returns the usernames highest score first, keeping join order on ties
func sortedByScore(players []*Player) []string {
	sorted := make([]*Player, len(players))
	copy(sorted, players)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].score > sorted[j].score
	})

	names := make([]string, len(sorted))
	for i, p := range sorted {
		names[i] = p.Username
	}

	return names
}
