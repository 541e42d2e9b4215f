package cmd

import (
	"github.com/spf13/cobra"
	"github.com/xolan/focus/internal/cli"
	"github.com/xolan/focus/internal/cli/handlers"
)

// stopCmd represents the stop command
var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the stopwatch and log the time",
	Long: `Stop the running stopwatch and save the elapsed whole minutes as a
timed record. A stopwatch under one minute keeps running.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.StopTimer(cli.GetDeps())
	},
}

func init() {
	rootCmd.AddCommand(stopCmd)
}
