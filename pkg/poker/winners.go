package poker

import (
	"highlow-server/pkg/deck"
)

// ReturnWinners returns the indices of the winning hands in ascending order.
// When high is true the best ranked hands win, otherwise the worst ranked hands win.
// Hands that cannot be separated are all returned.
func ReturnWinners(hands [][]deck.Card, high bool) []int {
	if len(hands) == 0 {
		return nil
	}

	categories := make([]Category, len(hands))
	for i, hand := range hands {
		categories[i] = Classify(hand)
	}

	best := extreme(categories, high)

	tied := make([]int, 0, len(hands))
	for i, c := range categories {
		if c == best {
			tied = append(tied, i)
		}
	}

	if len(tied) == 1 {
		return tied
	}

	tiedHands := make([][]deck.Card, len(tied))
	for i, idx := range tied {
		tiedHands[i] = hands[idx]
	}

	winners := make([]int, 0, len(tied))
	for _, w := range BreakTies(tiedHands, high) {
		winners = append(winners, tied[w])
	}

	return winners
}

// BreakTies picks the winners among hands that share a category.
// The returned indices refer to the hands slice and are in ascending order.
func BreakTies(hands [][]deck.Card, high bool) []int {
	if len(hands) == 0 {
		return nil
	}

	switch Classify(hands[0]) {
	case StraightFlush, Straight, FiveOfAKind:
		return breakByTopRank(hands, high)
	case Flush, HighCard:
		return breakByKickers(hands, high)
	default:
		return breakByGroups(hands, high)
	}
}

// breakByTopRank compares the top card of each hand; equal tops tie
func breakByTopRank(hands [][]deck.Card, high bool) []int {
	tops := make([]deck.Rank, len(hands))
	for i, hand := range hands {
		tops[i] = topRank(hand)
	}

	best := extreme(tops, high)

	winners := make([]int, 0, len(hands))
	for i, top := range tops {
		if top == best {
			winners = append(winners, i)
		}
	}

	return winners
}

type kickerCandidate struct {
	index int
	// ranks remaining to compare, highest first
	ranks []deck.Rank
}

// breakByKickers compares the highest remaining card of each hand, then the next highest, and so on
func breakByKickers(hands [][]deck.Card, high bool) []int {
	candidates := make([]kickerCandidate, len(hands))
	for i, hand := range hands {
		ranks := sortedRanks(hand)
		for l, r := 0, len(ranks)-1; l < r; l, r = l+1, r-1 {
			ranks[l], ranks[r] = ranks[r], ranks[l]
		}

		candidates[i] = kickerCandidate{index: i, ranks: ranks}
	}

	for len(candidates) > 1 {
		tops := make([]deck.Rank, len(candidates))
		exhausted := true
		for i, c := range candidates {
			if len(c.ranks) > 0 {
				tops[i] = c.ranks[0]
				exhausted = false
			}
		}

		if exhausted {
			break
		}

		best := extreme(tops, high)

		next := make([]kickerCandidate, 0, len(candidates))
		for i, c := range candidates {
			if tops[i] != best {
				continue
			}

			remaining := []deck.Rank{}
			if len(c.ranks) > 0 {
				remaining = c.ranks[1:]
			}

			next = append(next, kickerCandidate{index: c.index, ranks: remaining})
		}

		candidates = next
	}

	winners := make([]int, len(candidates))
	for i, c := range candidates {
		winners[i] = c.index
	}

	return winners
}

type groupCandidate struct {
	index  int
	groups []rankCount
}

// breakByGroups compares the most common rank of each hand and discards that rank from the
// survivors until one hand remains or there is nothing left to compare
func breakByGroups(hands [][]deck.Card, high bool) []int {
	candidates := make([]groupCandidate, len(hands))
	for i, hand := range hands {
		candidates[i] = groupCandidate{index: i, groups: countRanks(hand)}
	}

	for len(candidates) > 1 {
		tops := make([]deck.Rank, len(candidates))
		exhausted := true
		for i, c := range candidates {
			if len(c.groups) > 0 {
				tops[i] = mostCommon(c.groups)
				exhausted = false
			}
		}

		if exhausted {
			break
		}

		best := extreme(tops, high)

		next := make([]groupCandidate, 0, len(candidates))
		for i, c := range candidates {
			if tops[i] != best {
				continue
			}

			next = append(next, groupCandidate{index: c.index, groups: withoutRank(c.groups, best)})
		}

		candidates = next
	}

	winners := make([]int, len(candidates))
	for i, c := range candidates {
		winners[i] = c.index
	}

	return winners
}
