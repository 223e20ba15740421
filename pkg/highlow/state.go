package highlow

// PlayerState is the public view of a player. Hands are private and not included.
type PlayerState struct {
	Username string `json:"username"`
	Score    int    `json:"score"`
	HasBet   bool   `json:"hasBet"`
	HasHand  bool   `json:"hasHand"`
}

// State is the public view of the game
type State struct {
	Players     []PlayerState `json:"players"`
	Started     bool          `json:"started"`
	CanStart    bool          `json:"canStart"`
	RoundsTotal int           `json:"roundsTotal"`
	RoundsLeft  int           `json:"roundsLeft"`
}

// State returns a snapshot of the game
func (g *Game) State() State {
	players := make([]PlayerState, len(g.players))
	for i, p := range g.players {
		players[i] = PlayerState{
			Username: p.Username,
			Score:    p.score,
			HasBet:   p.bet.Amount != 0,
			HasHand:  len(p.hand) > 0,
		}
	}

	return State{
		Players:     players,
		Started:     g.started,
		CanStart:    g.CanStart(),
		RoundsTotal: g.roundsTotal,
		RoundsLeft:  g.roundsLeft,
	}
}
