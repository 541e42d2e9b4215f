package handlers

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xolan/focus/internal/cli"
	"github.com/xolan/focus/internal/filter"
	"github.com/xolan/focus/internal/record"
	"github.com/xolan/focus/internal/service"
	"github.com/xolan/focus/internal/stats"
	"github.com/xolan/focus/internal/timeutil"
)

// AddManual records a duration such as "1h30m" for today, or for dateInput
// (YYYY-MM-DD or DD/MM/YYYY) when given.
func AddManual(deps *cli.Deps, durationInput, notes, dateInput string) {
	minutes, err := record.ParseDuration(strings.TrimSpace(durationInput))
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Usage: focus add <duration> [notes]")
		_, _ = fmt.Fprintln(deps.Stderr, "Example: focus add 1h30m reading papers")
		deps.Exit(1)
		return
	}

	var date time.Time
	if dateInput != "" {
		date, err = timeutil.ParseDate(dateInput, deps.Location)
		if err != nil {
			usageError(deps, err.Error(), "focus add <duration> [notes] --date YYYY-MM-DD")
			return
		}
	}

	svc, ok := servicesOrExit(deps)
	if !ok {
		return
	}

	r, err := svc.Record.AddManualAt(context.Background(), date, minutes, notes)
	if err != nil {
		reportError(deps, "Failed to save record", err)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Logged %s%s\n", r.DisplayTime(), notesSuffix(r.Notes))
	if !date.IsZero() {
		_, _ = fmt.Fprintf(deps.Stdout, "Date: %s\n", r.Date.Format("Mon, Jan 2, 2006"))
	}
	printWeekLine(deps, svc)
}

// LogTimed records the span between from and to on the current day.
// An empty to means now.
func LogTimed(deps *cli.Deps, from, to, notes string) {
	ref := deps.LocalNow()
	start, err := timeutil.ParseClockTime(from, ref)
	if err != nil {
		usageError(deps, err.Error(), "focus log --from 09:00 [--to 10:30] [notes]")
		return
	}
	end, err := timeutil.ParseClockTime(to, ref)
	if err != nil {
		usageError(deps, err.Error(), "focus log --from 09:00 [--to 10:30] [notes]")
		return
	}

	svc, ok := servicesOrExit(deps)
	if !ok {
		return
	}

	r, err := svc.Record.AddTimed(context.Background(), start, end, notes)
	if err != nil {
		reportError(deps, "Failed to save record", err)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Logged %s-%s (%s)%s\n",
		start.Format("15:04"), end.Format("15:04"), cli.FormatDuration(r.DurationMinutes), notesSuffix(r.Notes))
	printWeekLine(deps, svc)
}

// ListWeek prints this week's records grouped by day, newest first.
// The numbers shown are the indexes accepted by edit and delete; a filter
// hides records without renumbering the rest.
func ListWeek(deps *cli.Deps, f *filter.Filter) {
	svc, ok := servicesOrExit(deps)
	if !ok {
		return
	}

	snap := svc.State.Snapshot()
	_, _ = fmt.Fprintf(deps.Stdout, "This week: %s\n", cli.FormatCycle(snap.Cycle))
	if !f.IsEmpty() {
		_, _ = fmt.Fprintf(deps.Stdout, "Filter: %s\n", f)
	}
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	printDegraded(deps, snap)

	groups := svc.Record.WeekByDay()
	if len(groups) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No records this week")
		_, _ = fmt.Fprintln(deps.Stdout, "Log time with: focus add <duration> [notes]")
		return
	}

	index := 1
	matched, matchedMinutes := 0, 0
	for _, g := range groups {
		records := filter.FilterRecords(g.Records, f)
		minutes := stats.WeekProgressMinutes(records)
		if len(records) > 0 {
			_, _ = fmt.Fprintf(deps.Stdout, "%s  (%s)\n", g.Date.Format("Mon, Jan 2"), cli.FormatDuration(minutes))
		}
		for _, r := range g.Records {
			if f.Matches(r) {
				_, _ = fmt.Fprintf(deps.Stdout, "  %d. %s\n", index, cli.FormatRecord(r))
			}
			index++
		}
		matched += len(records)
		matchedMinutes += minutes
	}

	if matched == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No records match the filter")
	}
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	if !f.IsEmpty() {
		_, _ = fmt.Fprintf(deps.Stdout, "Matched: %s (%d %s)\n",
			cli.FormatDuration(matchedMinutes), matched, cli.Pluralize("record", matched))
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Total: %s\n", cli.FormatProgress(snap.Progress()))
}

// DeleteRecord deletes the record at the 1-based index of ListWeek.
// Unless skipConfirm is set the user is asked on Stdin first.
func DeleteRecord(deps *cli.Deps, indexArg string, skipConfirm bool) {
	svc, ok := servicesOrExit(deps)
	if !ok {
		return
	}

	r, ok := recordAt(deps, svc, indexArg, "focus delete <index>")
	if !ok {
		return
	}

	if !skipConfirm {
		_, _ = fmt.Fprintln(deps.Stdout, "Record to delete:")
		_, _ = fmt.Fprintf(deps.Stdout, "  %s  %s\n", r.Date.Format("Mon, Jan 2"), cli.FormatRecord(r))
		if !confirm(deps, "Delete this record? [y/N]: ") {
			_, _ = fmt.Fprintln(deps.Stdout, "Cancelled")
			return
		}
	}

	if err := svc.Record.Delete(context.Background(), r.ID); err != nil {
		reportError(deps, "Failed to delete record", err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Deleted: %s\n", cli.FormatRecord(r))
	printWeekLine(deps, svc)
}

// EditRecord changes the duration and/or notes of the record at the 1-based
// index of ListWeek. A nil notes leaves the notes unchanged.
func EditRecord(deps *cli.Deps, indexArg, durationInput string, notes *string) {
	if durationInput == "" && notes == nil {
		usageError(deps, "At least one of --duration or --notes is required", "focus edit <index> --duration 45m --notes 'text'")
		return
	}

	var in service.EditInput
	if durationInput != "" {
		minutes, err := record.ParseDuration(durationInput)
		if err != nil {
			usageError(deps, err.Error(), "focus edit <index> --duration 45m")
			return
		}
		in.Minutes = &minutes
	}
	in.Notes = notes

	svc, ok := servicesOrExit(deps)
	if !ok {
		return
	}

	r, ok := recordAt(deps, svc, indexArg, "focus edit <index> --duration 45m --notes 'text'")
	if !ok {
		return
	}

	updated, err := svc.Record.Edit(context.Background(), r.ID, in)
	if err != nil {
		reportError(deps, "Failed to update record", err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Updated: %s\n", cli.FormatRecord(updated))
	printWeekLine(deps, svc)
}

// weekRecords lists this week's records in ListWeek order.
func weekRecords(svc *service.Services) []record.Record {
	var out []record.Record
	for _, g := range svc.Record.WeekByDay() {
		out = append(out, g.Records...)
	}
	return out
}

func recordAt(deps *cli.Deps, svc *service.Services, indexArg, usage string) (record.Record, bool) {
	index, err := strconv.Atoi(strings.TrimSpace(indexArg))
	if err != nil || index < 1 {
		usageError(deps, fmt.Sprintf("Invalid index '%s': must be a positive number", indexArg), usage)
		return record.Record{}, false
	}

	records := weekRecords(svc)
	if len(records) == 0 {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: No records this week")
		deps.Exit(1)
		return record.Record{}, false
	}
	if index > len(records) {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Index %d out of range (this week has %d %s)\n",
			index, len(records), cli.Pluralize("record", len(records)))
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: List this week's records with 'focus week'")
		deps.Exit(1)
		return record.Record{}, false
	}
	return records[index-1], true
}

// confirm asks question and reports whether the answer was y or Y.
func confirm(deps *cli.Deps, question string) bool {
	_, _ = fmt.Fprint(deps.Stdout, question)

	scanner := bufio.NewScanner(deps.Stdin)
	if !scanner.Scan() {
		return false
	}
	response := strings.TrimSpace(scanner.Text())
	return response == "y" || response == "Y"
}

func printWeekLine(deps *cli.Deps, svc *service.Services) {
	_, _ = fmt.Fprintf(deps.Stdout, "This week: %s\n", cli.FormatProgress(svc.State.Snapshot().Progress()))
}

func notesSuffix(notes string) string {
	if notes == "" {
		return ""
	}
	return ": " + notes
}
