package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xolan/focus/internal/cli"
	"github.com/xolan/focus/internal/cli/handlers"
	"github.com/xolan/focus/internal/filter"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <duration> [notes]",
	Short: "Log focus time manually",
	Long: `Log a manual record against the current goal.

The record is dated today unless --date is given (YYYY-MM-DD or DD/MM/YYYY).

Examples:
  focus add 2h
  focus add 45m reading papers
  focus add 1h30m --date 2025-12-09`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		date, _ := cmd.Flags().GetString("date")
		handlers.AddManual(cli.GetDeps(), args[0], strings.Join(args[1:], " "), date)
	},
}

// logCmd represents the log command
var logCmd = &cobra.Command{
	Use:   "log --from HH:MM --to HH:MM [notes]",
	Short: "Log a timed block of focus",
	Long: `Log a record with explicit start and end times on today's date.

Examples:
  focus log --from 09:00 --to 10:30
  focus log --from 2pm --to 3:15pm code review
  focus log --from 14:00 notes            (ends now)`,
	Run: func(cmd *cobra.Command, args []string) {
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		handlers.LogTimed(cli.GetDeps(), from, to, strings.Join(args, " "))
	},
}

// weekCmd represents the week command
var weekCmd = &cobra.Command{
	Use:     "week",
	Aliases: []string{"w"},
	Short:   "List this week's records",
	Long: `List the records of the current week grouped by day.

The numbers shown are the indices used by 'focus edit' and 'focus delete'.
Filtering hides records but keeps their numbers.

Examples:
  focus week
  focus week --search review
  focus week --kind clock`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		deps := cli.GetDeps()
		keyword, _ := cmd.Flags().GetString("search")
		kindFlag, _ := cmd.Flags().GetString("kind")
		kind, err := filter.ParseKind(kindFlag)
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
			deps.Exit(1)
			return
		}
		handlers.ListWeek(deps, filter.NewFilter(keyword, kind))
	},
}

// editCmd represents the edit command
var editCmd = &cobra.Command{
	Use:   "edit <index>",
	Short: "Edit a record of this week",
	Long: `Edit the duration or notes of a record from this week's list.

Usage:
  focus edit <index> --duration 2h             Update the duration
  focus edit <index> --notes 'new text'        Update the notes
  focus edit <index> --notes ''                Clear the notes

The index refers to the record number shown by 'focus week'.
At least one flag (--duration or --notes) is required.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		duration, _ := cmd.Flags().GetString("duration")
		var notes *string
		if cmd.Flags().Changed("notes") {
			n, _ := cmd.Flags().GetString("notes")
			notes = &n
		}
		handlers.EditRecord(cli.GetDeps(), args[0], duration, notes)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(weekCmd)
	rootCmd.AddCommand(editCmd)

	addCmd.Flags().StringP("date", "d", "", "date of the record (YYYY-MM-DD or DD/MM/YYYY)")
	logCmd.Flags().String("from", "", "start time (e.g., 09:00, 9am)")
	logCmd.Flags().String("to", "", "end time (e.g., 17:30, 5:30pm; defaults to now)")
	weekCmd.Flags().StringP("search", "s", "", "only show records whose notes contain this text")
	weekCmd.Flags().String("kind", "", "only show records of this kind (manual, timed, clock)")
	editCmd.Flags().String("duration", "", "new duration for the record (e.g., 2h, 30m)")
	editCmd.Flags().String("notes", "", "new notes for the record")
}
