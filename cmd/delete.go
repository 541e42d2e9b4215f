package cmd

import (
	"github.com/spf13/cobra"
	"github.com/xolan/focus/internal/cli"
	"github.com/xolan/focus/internal/cli/handlers"
)

var yesFlag bool

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <index>",
	Short: "Delete a record of this week by index",
	Long: `Delete a record by its index in 'focus week'.
A confirmation prompt will be shown unless --yes is specified.

Example:
  focus delete 3
  focus delete 3 --yes`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handlers.DeleteRecord(cli.GetDeps(), args[0], yesFlag)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "skip confirmation prompt")
}
