// Package payout converts final game scores into money owed between players
package payout

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrInsufficientPlayers is returned when fewer than two players are settled
var ErrInsufficientPlayers = errors.New("need at least two players to distribute money")

// Standing is a player's final score
type Standing struct {
	Username string
	Score    int
}

// Settlement is the result of Distribute
type Settlement struct {
	// WinnersOwed maps each winner to the amount they collect
	WinnersOwed map[string]float64 `json:"winnersOwed"`
	// LosersOwe maps each loser to the amount they pay
	LosersOwe map[string]float64 `json:"losersOwe"`
	// Winners and Losers are ordered by score, highest first
	Winners []string `json:"winners"`
	Losers  []string `json:"losers"`
	// TotalWinnings is the spread between the best and the worst score
	TotalWinnings int `json:"totalWinnings"`
}

// Formatted returns the amounts as two decimal strings, keyed like WinnersOwed and LosersOwe
func (s *Settlement) Formatted() (winners map[string]string, losers map[string]string) {
	winners = make(map[string]string, len(s.WinnersOwed))
	for name, amount := range s.WinnersOwed {
		winners[name] = fmt.Sprintf("%.2f", amount)
	}

	losers = make(map[string]string, len(s.LosersOwe))
	for name, amount := range s.LosersOwe {
		losers[name] = fmt.Sprintf("%.2f", amount)
	}

	return winners, losers
}

// Distribute splits the players into the top half (rounded up) and the bottom half.
// The spread between the best and worst score is paid by the losers to the winners,
// each side in proportion to its distance from the opposite extreme.
// Amounts are rounded to cents independently, so totals may drift by a cent.
func Distribute(standings []Standing) (*Settlement, error) {
	n := len(standings)
	if n < 2 {
		return nil, ErrInsufficientPlayers
	}

	sorted := make([]Standing, n)
	copy(sorted, standings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	numWinners := (n + 1) / 2
	winners := sorted[:numWinners]
	losers := sorted[numWinners:]

	best := winners[0].Score
	worst := losers[len(losers)-1].Score
	total := best - worst

	s := &Settlement{
		WinnersOwed:   make(map[string]float64, len(winners)),
		LosersOwe:     make(map[string]float64, len(losers)),
		Winners:       make([]string, len(winners)),
		Losers:        make([]string, len(losers)),
		TotalWinnings: total,
	}

	diffs := make([]int, len(winners))
	sumDiffs := 0
	for i, w := range winners {
		diffs[i] = w.Score - worst
		sumDiffs += diffs[i]
		s.Winners[i] = w.Username
	}

	for i, w := range winners {
		s.WinnersOwed[w.Username] = share(diffs[i], sumDiffs, total)
	}

	owes := make([]int, len(losers))
	sumOwes := 0
	for i, l := range losers {
		owes[i] = best - l.Score
		sumOwes += owes[i]
		s.Losers[i] = l.Username
	}

	for i, l := range losers {
		s.LosersOwe[l.Username] = share(owes[i], sumOwes, total)
	}

	return s, nil
}

// share returns part/whole of total rounded to cents, or 0 when there is nothing to split
func share(part, whole, total int) float64 {
	if whole == 0 {
		return 0
	}

	return roundCents(float64(part) / float64(whole) * float64(total))
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
