package room

import (
	"errors"

	"highlow-server/pkg/highlow"
	"highlow-server/pkg/payout"
)

// reasons sent with joinRejected
const (
	reasonUsernameTaken = "username_taken"
	reasonGameStarted   = "game_started"
)

type joinedData struct {
	Username string `json:"username"`
	// Token lets a new connection resume the seat, it is only sent to the player
	Token string `json:"token,omitempty"`
}

type handDealtData struct {
	Username   string             `json:"username"`
	Hand       []highlow.CardView `json:"hand"`
	RoundsLeft int                `json:"roundsLeft"`
}

type roundsSetData struct {
	NumRounds int `json:"numRounds"`
}

type gameOverData struct {
	Scores map[string]int `json:"scores"`
}

type payoutData struct {
	WinnersOwed     map[string]float64 `json:"winnersOwed"`
	LosersOwe       map[string]float64 `json:"losersOwe"`
	WinnersOwedText map[string]string  `json:"winnersOwedText"`
	LosersOweText   map[string]string  `json:"losersOweText"`
	TotalWinnings   int                `json:"totalWinnings"`
}

func newPayoutData(s *payout.Settlement) payoutData {
	winners, losers := s.Formatted()
	return payoutData{
		WinnersOwed:     s.WinnersOwed,
		LosersOwe:       s.LosersOwe,
		WinnersOwedText: winners,
		LosersOweText:   losers,
		TotalWinnings:   s.TotalWinnings,
	}
}

// joinRejectedReason returns the reason code for a rejected join, or false if
// the error is not a join rejection
func joinRejectedReason(err error) (string, bool) {
	switch {
	case errors.Is(err, highlow.ErrUsernameTaken):
		return reasonUsernameTaken, true
	case errors.Is(err, highlow.ErrGameAlreadyStarted):
		return reasonGameStarted, true
	default:
		return "", false
	}
}
