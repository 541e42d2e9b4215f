package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/xolan/focus/internal/cli"
	"github.com/xolan/focus/internal/cli/handlers"
)

// goalCmd represents the goal command
var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Show or change the weekly goal",
	Long: `Show the weekly goal: its title, target and the day the week starts.

Examples:
  focus goal
  focus goal set --target 30h --start sunday
  focus goal rename Thesis
  focus goal reset`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ShowGoal(cli.GetDeps())
	},
}

var goalSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change the weekly target or week start day",
	Long: `Change the weekly target, the day the week starts, or both.
A bare number for --target is read as hours.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		target, _ := cmd.Flags().GetString("target")
		start, _ := cmd.Flags().GetString("start")
		handlers.SetGoal(cli.GetDeps(), target, start)
	},
}

var goalRenameCmd = &cobra.Command{
	Use:   "rename <title>",
	Short: "Rename the weekly goal",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.RenameGoal(cli.GetDeps(), strings.Join(args, " "))
	},
}

var goalResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default target and week start day",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.ResetGoal(cli.GetDeps())
	},
}

// setupCmd represents the setup command
var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Set up the weekly goal interactively",
	Long: `Walk through the goal title, weekly target and week start day in an
interactive form. The form starts from the current goal.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		handlers.RunSetup(cli.GetDeps(), handlers.RunHuhSetup)
	},
}

func init() {
	rootCmd.AddCommand(goalCmd)
	rootCmd.AddCommand(setupCmd)
	goalCmd.AddCommand(goalSetCmd)
	goalCmd.AddCommand(goalRenameCmd)
	goalCmd.AddCommand(goalResetCmd)

	goalSetCmd.Flags().StringP("target", "t", "", "weekly target (e.g., 40h, 37h30m, 20)")
	goalSetCmd.Flags().StringP("start", "s", "", "day the week starts (e.g., monday, sun)")
}
