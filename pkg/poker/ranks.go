package poker

import (
	"sort"

	"highlow-server/pkg/deck"
)

type rankCount struct {
	rank  deck.Rank
	count int
}

// countRanks tallies the ranks of the hand, ordered by first appearance
func countRanks(hand []deck.Card) []rankCount {
	counts := make([]rankCount, 0, len(hand))
	index := make(map[deck.Rank]int, len(hand))
	for _, c := range hand {
		if i, ok := index[c.Rank()]; ok {
			counts[i].count++
			continue
		}

		index[c.Rank()] = len(counts)
		counts = append(counts, rankCount{rank: c.Rank(), count: 1})
	}

	return counts
}

// mostCommon returns the most frequent rank; equally frequent ranks resolve to the one seen first
func mostCommon(counts []rankCount) deck.Rank {
	best := counts[0]
	for _, rc := range counts[1:] {
		if rc.count > best.count {
			best = rc
		}
	}

	return best.rank
}

func withoutRank(counts []rankCount, rank deck.Rank) []rankCount {
	out := make([]rankCount, 0, len(counts))
	for _, rc := range counts {
		if rc.rank != rank {
			out = append(out, rc)
		}
	}

	return out
}

func sortedRanks(hand []deck.Card) []deck.Rank {
	ranks := deck.Hand(hand).Ranks()
	sort.Slice(ranks, func(i, j int) bool {
		return ranks[i] < ranks[j]
	})

	return ranks
}

// extreme returns the max of the values when high is true, otherwise the min
func extreme[T ~int](values []T, high bool) T {
	best := values[0]
	for _, v := range values[1:] {
		if (high && v > best) || (!high && v < best) {
			best = v
		}
	}

	return best
}
