package cmd

import (
	"github.com/spf13/cobra"
	"github.com/xolan/focus/internal/cli"
	"github.com/xolan/focus/internal/cli/handlers"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the stopwatch",
	Long: `Show the notes, start time and elapsed time of the running stopwatch.

Examples:
  focus status`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ShowTimerStatus(cli.GetDeps())
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
