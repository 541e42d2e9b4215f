package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/xolan/focus/internal/cli"
	"github.com/xolan/focus/internal/cli/handlers"
)

var forceFlag bool

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start [notes]",
	Short: "Start the stopwatch",
	Long: `Start the stopwatch with optional notes.
It runs until you stop it with 'focus stop', which logs a timed record.
The stopwatch persists across terminal sessions.

Examples:
  focus start
  focus start chapter 3 draft
  focus start --force`,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.StartTimer(cli.GetDeps(), strings.Join(args, " "), forceFlag)
	},
}

// cancelCmd represents the cancel command
var cancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Discard the running stopwatch",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.CancelTimer(cli.GetDeps())
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(cancelCmd)
	startCmd.Flags().BoolVarP(&forceFlag, "force", "f", false, "discard a running stopwatch and start a new one")
}
