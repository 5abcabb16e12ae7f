package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wurt83ow/trivia-ext/internal/player"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play one quiz round against the extension",
	Long:  `Answers the three questions in order, the way the orchestrator would, and prints every reply.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		answers, _ := cmd.Flags().GetStringSlice("answers")
		sender, _ := cmd.Flags().GetString("sender")

		texts, err := player.Play(cmd.Context(), newClient(cmd), sender, answers)
		for _, t := range texts {
			fmt.Fprintln(cmd.OutOrStdout(), t)
			fmt.Fprintln(cmd.OutOrStdout())
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().StringSlice("answers", []string{"2", "1", "3"}, "Answers to questions 1, 2 and 3")
	playCmd.Flags().String("sender", "quizctl", "Name reported to the extension")
}
