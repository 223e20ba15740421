package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"highlow-server/pkg/payout"

	"github.com/spf13/cobra"
)

// PayoutResult is the output of the payout command
type PayoutResult struct {
	Winners       []string          `json:"winners"`
	Losers        []string          `json:"losers"`
	WinnersOwed   map[string]string `json:"winnersOwed"`
	LosersOwe     map[string]string `json:"losersOwe"`
	TotalWinnings int               `json:"totalWinnings"`
}

func newPayoutCmd(output *string) *cobra.Command {
	return &cobra.Command{
		Use:     "payout NAME=SCORE NAME=SCORE [NAME=SCORE...]",
		Short:   "Split the winnings from final scores",
		Example: "highlowctl payout alice=10 bob=0 carol=-4",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(*output); err != nil {
				return err
			}

			standings, err := parseStandings(args)
			if err != nil {
				return err
			}

			s, err := payout.Distribute(standings)
			if err != nil {
				return err
			}

			winnersOwed, losersOwe := s.Formatted()
			result := PayoutResult{
				Winners:       s.Winners,
				Losers:        s.Losers,
				WinnersOwed:   winnersOwed,
				LosersOwe:     losersOwe,
				TotalWinnings: s.TotalWinnings,
			}

			NewOutput(*output, cmd.OutOrStdout()).Print(result, func(w io.Writer) {
				fmt.Fprintf(w, "total winnings: %d\n", result.TotalWinnings)
				for _, name := range result.Winners {
					fmt.Fprintf(w, "%s is owed %s\n", name, result.WinnersOwed[name])
				}
				for _, name := range result.Losers {
					fmt.Fprintf(w, "%s owes %s\n", name, result.LosersOwe[name])
				}
			})

			return nil
		},
	}
}

func parseStandings(args []string) ([]payout.Standing, error) {
	standings := make([]payout.Standing, len(args))
	seen := make(map[string]bool, len(args))
	for i, arg := range args {
		name, rawScore, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("expected NAME=SCORE, got %q", arg)
		}

		if seen[name] {
			return nil, fmt.Errorf("duplicate name %q", name)
		}
		seen[name] = true

		score, err := strconv.Atoi(rawScore)
		if err != nil {
			return nil, fmt.Errorf("invalid score for %s: %w", name, err)
		}

		standings[i] = payout.Standing{Username: name, Score: score}
	}

	return standings, nil
}
