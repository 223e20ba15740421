package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var output string

	rootCmd := &cobra.Command{
		Use:   "highlowctl",
		Short: "Offline tools for the high/low card game",
		Long: `highlowctl ranks five card hands the way the game server does and computes
the end of game payout from a set of scores.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "text", "Output format: text, json")

	rootCmd.AddCommand(newRankCmd(&output))
	rootCmd.AddCommand(newPayoutCmd(&output))

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
