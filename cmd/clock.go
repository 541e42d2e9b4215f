package cmd

import (
	"github.com/spf13/cobra"
	"github.com/xolan/focus/internal/cli"
	"github.com/xolan/focus/internal/cli/handlers"
)

var atFlag string

// inCmd represents the in command
var inCmd = &cobra.Command{
	Use:   "in",
	Short: "Clock in to today's session",
	Long: `Start today's clock session for the current goal.
Only one session is kept per day. After 'focus out', run 'focus reset'
before clocking in again.

Examples:
  focus in
  focus in --at 08:45`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ClockIn(cli.GetDeps(), atFlag)
	},
}

// outCmd represents the out command
var outCmd = &cobra.Command{
	Use:   "out",
	Short: "Clock out of today's session",
	Long: `Close today's clock session and credit the elapsed time to the goal.

Examples:
  focus out
  focus out --at 17:30`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ClockOut(cli.GetDeps(), atFlag)
	},
}

// punchCmd represents the punch command
var punchCmd = &cobra.Command{
	Use:   "punch",
	Short: "Clock in or out, whichever is next",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.Punch(cli.GetDeps(), atFlag)
	},
}

// resetCmd represents the reset command
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear today's clock times",
	Long: `Clear the clock-in and clock-out times of today's session so it can be
started again. Time already credited to the session is kept.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ResetClock(cli.GetDeps())
	},
}

// clockCmd represents the clock command
var clockCmd = &cobra.Command{
	Use:   "clock",
	Short: "Show today's clock session",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ShowClock(cli.GetDeps())
	},
}

func init() {
	rootCmd.AddCommand(inCmd)
	rootCmd.AddCommand(outCmd)
	rootCmd.AddCommand(punchCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(clockCmd)

	for _, c := range []*cobra.Command{inCmd, outCmd, punchCmd} {
		c.Flags().StringVar(&atFlag, "at", "", "time of the punch (e.g., 09:00, 5:30pm); defaults to now")
	}
}
