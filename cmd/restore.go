package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/xolan/focus/internal/cli"
	"github.com/xolan/focus/internal/cli/handlers"
)

// restoreCmd represents the restore command
var restoreCmd = &cobra.Command{
	Use:   "restore [backup_number]",
	Short: "Restore the jsonl data files from a backup",
	Long: `Restore the goals and records files from a backup.

Backups are kept by the jsonl storage backend before every rewrite.
By default, restores from the most recent backup (.bak.1).
Optionally specify a backup number to restore from (1-3).

Examples:
  focus restore       Restore from most recent backup
  focus restore 2     Restore from backup #2`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		restoreFromBackup(args)
	},
}

func init() {
	rootCmd.AddCommand(restoreCmd)
}

func restoreFromBackup(args []string) {
	d := cli.GetDeps()
	n := 1
	if len(args) == 1 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil {
			_, _ = fmt.Fprintf(d.Stderr, "Error: Invalid backup number '%s'. Must be a number\n", args[0])
			_, _ = fmt.Fprintln(d.Stderr, "Usage: focus restore [1-3]")
			d.Exit(1)
			return
		}
		n = parsed
	}
	handlers.RestoreBackup(d, n)
}
