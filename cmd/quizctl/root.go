package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wurt83ow/trivia-ext/internal/client"
	"github.com/wurt83ow/trivia-ext/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "quizctl",
	Short: "quizctl talks to a trivia extension",
	Long:  `quizctl lists the commands of a trivia extension, plays a quiz against it and load tests it.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		debug, _ := cmd.Flags().GetBool("debug")
		if debug {
			return logger.Initialize("debug")
		}
		return nil
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("url", "http://localhost:8770", "Base URL of the extension")
	rootCmd.PersistentFlags().Duration("timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().Bool("debug", false, "Log every request and response")
}

func newClient(cmd *cobra.Command, extra ...client.Option) *client.Client {
	url, _ := cmd.Flags().GetString("url")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	debug, _ := cmd.Flags().GetBool("debug")

	opts := []client.Option{client.WithTimeout(timeout)}
	if debug {
		opts = append(opts, client.WithDebug(logger.Log.Sugar()))
	}
	return client.New(url, append(opts, extra...)...)
}
