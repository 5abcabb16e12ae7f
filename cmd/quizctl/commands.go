package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List the commands registered in the extension",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmds, err := newClient(cmd).Commands(cmd.Context())
		if err != nil {
			return err
		}
		for _, c := range cmds {
			fmt.Fprintln(cmd.OutOrStdout(), c)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the build of the extension",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := newClient(cmd).Version(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) built %s by %s\n", v.Version, v.Commit, v.BuiltAt, v.BuiltBy)
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how finished quizzes scored",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newClient(cmd).Stats(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "total: %d\n", s.Total)
		for correct := 0; correct <= 3; correct++ {
			fmt.Fprintf(cmd.OutOrStdout(), "%d/3: %d\n", correct, s.ByScore[correct])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(commandsCmd, versionCmd, statsCmd)
}
