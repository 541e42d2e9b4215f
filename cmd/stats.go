package cmd

import (
	"github.com/spf13/cobra"
	"github.com/xolan/focus/internal/cli"
	"github.com/xolan/focus/internal/cli/handlers"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics for the current week",
	Long: `Show a bar per day of the current week and the week's totals:
total time, days with focus, average per day, clocked work and the
remaining time to the goal.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ShowWeeklyStats(cli.GetDeps())
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
