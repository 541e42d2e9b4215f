package cmd

import (
	"github.com/spf13/cobra"
	"github.com/xolan/focus/internal/cli"
	"github.com/xolan/focus/internal/cli/handlers"
)

var rootCmd = &cobra.Command{
	Use:   "focus",
	Short: "A weekly focus-time tracker",
	Long: `focus tracks the time you spend on one weekly goal.

Usage:
  focus                                         Show this week's dashboard
  focus add <duration> [notes]                  Log time manually (e.g., focus add 1h30m reading)
  focus log --from 09:00 --to 10:30 [notes]     Log a timed block
  focus in / focus out                          Clock in and out of today's session
  focus start [notes] / focus stop              Run the stopwatch
  focus week                                    List this week's records
  focus stats                                   Show daily bars and totals
  focus goal set --target 40h --start monday    Change the weekly target
  focus validate                                Check storage health
  focus restore [n]                             Restore from backup (jsonl storage)

Duration format: Yh (hours), Ym (minutes), or YhYm (combined)
Examples: 2h, 30m, 1h30m`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if CheckTUIFlag(cmd) {
			return
		}
		handlers.ShowDashboard(cli.GetDeps())
	},
}

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check storage health",
	Long: `Validate the configured storage backend and report on its health.

For sqlite this shows the schema version. For jsonl it counts valid and
corrupted lines in each data file and lists the available backups.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ValidateStorage(cli.GetDeps())
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"focus version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command and closes the store afterwards.
func Execute() error {
	defer cli.ResetDeps()
	registerCompletions()
	return rootCmd.Execute()
}
