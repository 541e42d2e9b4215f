package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xolan/focus/internal/cli"
	"github.com/xolan/focus/internal/tui"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	Long: `Launch the interactive Terminal User Interface for focus.

The dashboard refreshes every second so running sessions and the
stopwatch count up live.

Views available:
  - Dashboard: Weekly progress and today's records
  - Clock: Clock in and out, run the stopwatch
  - Stats: Daily bars for the current week
  - Records: Browse and delete this week's records
  - Config: View configuration and storage health

Keyboard shortcuts:
  - Tab/Shift+Tab: Navigate between views
  - 1-5: Jump to specific view
  - j/k or arrows: Navigate within lists
  - ?: Show help
  - q: Quit`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runTUI()
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)

	// Add --tui flag to root command for quick access
	rootCmd.PersistentFlags().Bool("tui", false, "Launch interactive terminal UI")
}

// runTUI runs the TUI on the shared services
func runTUI() {
	d := cli.GetDeps()
	if d.Services == nil {
		_, _ = fmt.Fprintln(d.Stderr, "Error: Failed to open storage")
		_, _ = fmt.Fprintf(d.Stderr, "Details: %v\n", d.ServicesErr)
		_, _ = fmt.Fprintln(d.Stderr, "Hint: Check the storage and data_dir settings with 'focus config'")
		d.Exit(1)
		return
	}

	if err := tui.Run(d.Services); err != nil {
		_, _ = fmt.Fprintf(d.Stderr, "Error running TUI: %v\n", err)
		d.Exit(1)
	}
}

// CheckTUIFlag checks if the --tui flag is set and runs the TUI if so.
// Returns true if the TUI was launched, false otherwise.
func CheckTUIFlag(cmd *cobra.Command) bool {
	tuiFlag, _ := cmd.Root().PersistentFlags().GetBool("tui")
	if tuiFlag {
		runTUI()
		return true
	}
	return false
}
