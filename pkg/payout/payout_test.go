package payout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistribute_twoPlayers(t *testing.T) {
	a := assert.New(t)

	s, err := Distribute([]Standing{{"alice", 10}, {"bob", 0}})
	a.NoError(err)
	a.Equal(map[string]float64{"alice": 10}, s.WinnersOwed)
	a.Equal(map[string]float64{"bob": 10}, s.LosersOwe)
	a.Equal(10, s.TotalWinnings)

	winners, losers := s.Formatted()
	a.Equal("10.00", winners["alice"])
	a.Equal("10.00", losers["bob"])
}

func TestDistribute_sortsByScore(t *testing.T) {
	a := assert.New(t)

	s, err := Distribute([]Standing{{"bob", -5}, {"alice", 15}})
	a.NoError(err)
	a.Equal([]string{"alice"}, s.Winners)
	a.Equal([]string{"bob"}, s.Losers)
	a.Equal(20.0, s.WinnersOwed["alice"])
	a.Equal(20.0, s.LosersOwe["bob"])
}

func TestDistribute_oddPlayerCount(t *testing.T) {
	a := assert.New(t)

	// winners: alice (20), carol (10); loser: bob (0)
	s, err := Distribute([]Standing{{"alice", 20}, {"bob", 0}, {"carol", 10}})
	a.NoError(err)
	a.Equal([]string{"alice", "carol"}, s.Winners)
	a.Equal([]string{"bob"}, s.Losers)
	a.Equal(20, s.TotalWinnings)

	// diffs 20 and 10 out of 30
	a.Equal(13.33, s.WinnersOwed["alice"])
	a.Equal(6.67, s.WinnersOwed["carol"])
	a.Equal(20.0, s.LosersOwe["bob"])
}

func TestDistribute_fourPlayers(t *testing.T) {
	a := assert.New(t)

	s, err := Distribute([]Standing{{"a", 30}, {"b", 10}, {"c", 0}, {"d", -10}})
	a.NoError(err)
	a.Equal(40, s.TotalWinnings)

	// winner diffs: 40, 20 -> 26.67, 13.33
	a.Equal(26.67, s.WinnersOwed["a"])
	a.Equal(13.33, s.WinnersOwed["b"])

	// loser owes: 30, 40 -> 17.14, 22.86
	a.Equal(17.14, s.LosersOwe["c"])
	a.Equal(22.86, s.LosersOwe["d"])
}

func TestDistribute_equalScores(t *testing.T) {
	a := assert.New(t)

	s, err := Distribute([]Standing{{"alice", 5}, {"bob", 5}, {"carol", 5}})
	a.NoError(err)
	a.Equal(0, s.TotalWinnings)
	for _, amount := range s.WinnersOwed {
		a.Equal(0.0, amount)
	}
	for _, amount := range s.LosersOwe {
		a.Equal(0.0, amount)
	}

	// ties keep the given order
	a.Equal([]string{"alice", "bob"}, s.Winners)
	a.Equal([]string{"carol"}, s.Losers)
}

func TestDistribute_insufficientPlayers(t *testing.T) {
	s, err := Distribute([]Standing{{"alice", 5}})
	assert.Nil(t, s)
	assert.Equal(t, ErrInsufficientPlayers, err)

	_, err = Distribute(nil)
	assert.Equal(t, ErrInsufficientPlayers, err)
}
