package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wurt83ow/trivia-ext/internal/client"
	"github.com/wurt83ow/trivia-ext/internal/player"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load test the extension with concurrent players",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		users, _ := cmd.Flags().GetInt("users")
		rounds, _ := cmd.Flags().GetInt("rounds")
		invalid, _ := cmd.Flags().GetFloat64("invalid")
		pause, _ := cmd.Flags().GetDuration("pause")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// a load run measures the extension, retries would hide its failures
		c := newClient(cmd, client.WithRetries(0))

		report, err := player.Load(ctx, c, player.LoadConfig{
			Users:       users,
			Rounds:      rounds,
			InvalidRate: invalid,
			Pause:       pause,
			Seed:        time.Now().UnixNano(),
		})
		fmt.Fprintln(cmd.OutOrStdout(), report)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)
	loadCmd.Flags().IntP("users", "u", 10, "Concurrent players")
	loadCmd.Flags().IntP("rounds", "n", 10, "Rounds per player")
	loadCmd.Flags().Float64("invalid", 0.1, "Share of answers outside the options")
	loadCmd.Flags().Duration("pause", 0, "Pause between rounds of one player")
}
