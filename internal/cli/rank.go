package cli

import (
	"fmt"
	"io"
	"strings"

	"highlow-server/pkg/deck"
	"highlow-server/pkg/poker"

	"github.com/spf13/cobra"
)

// RankedHand is a hand and its category
type RankedHand struct {
	Hand     string         `json:"hand"`
	Category poker.Category `json:"category"`
	Winner   bool           `json:"winner"`
}

// RankResult is the output of the rank command
type RankResult struct {
	High    bool         `json:"high"`
	Hands   []RankedHand `json:"hands"`
	Winners []int        `json:"winners"`
}

func newRankCmd(output *string) *cobra.Command {
	var low bool

	cmd := &cobra.Command{
		Use:   "rank HAND [HAND...]",
		Short: "Classify hands and pick the winners",
		Long: `Classify five card hands and pick the winners.

Hands are comma separated cards in the form <rank><suit>, i.e., 2h,3h,4h,5h,14h.
With --low, the worst hands win.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(*output); err != nil {
				return err
			}

			result, err := rank(args, !low)
			if err != nil {
				return err
			}

			NewOutput(*output, cmd.OutOrStdout()).Print(result, func(w io.Writer) {
				for i, h := range result.Hands {
					marker := " "
					if h.Winner {
						marker = "*"
					}

					fmt.Fprintf(w, "%s %d: %-16s %s\n", marker, i, h.Hand, h.Category)
				}
			})

			return nil
		},
	}

	cmd.Flags().BoolVar(&low, "low", false, "Lowest hands win")

	return cmd
}

func rank(args []string, high bool) (*RankResult, error) {
	hands := make([][]deck.Card, len(args))
	for i, arg := range args {
		cards, err := parseHand(arg)
		if err != nil {
			return nil, err
		}

		hands[i] = cards
	}

	winners := poker.ReturnWinners(hands, high)
	isWinner := make(map[int]bool, len(winners))
	for _, w := range winners {
		isWinner[w] = true
	}

	result := &RankResult{
		High:    high,
		Hands:   make([]RankedHand, len(hands)),
		Winners: winners,
	}

	for i, cards := range hands {
		result.Hands[i] = RankedHand{
			Hand:     deck.CardsToString(cards),
			Category: poker.Classify(cards),
			Winner:   isWinner[i],
		}
	}

	return result, nil
}

// parseHand parses a comma separated hand, returning an error instead of panicking on bad input
func parseHand(s string) (cards []deck.Card, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("invalid hand %q: %v", s, r)
		}
	}()

	cards = deck.CardsFromString(strings.TrimSpace(s))
	if len(cards) != poker.HandSize {
		return nil, fmt.Errorf("invalid hand %q: need %d cards, got %d", s, poker.HandSize, len(cards))
	}

	hand := deck.Hand(cards)
	hand.SortByRank()

	return hand, nil
}
