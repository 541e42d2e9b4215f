package handlers

import (
	"fmt"
	"strings"

	"github.com/xolan/focus/internal/cli"
	"github.com/xolan/focus/internal/timeutil"
)

const dayBarWidth = 20

// ShowWeeklyStats shows per-day totals and a summary for the current cycle.
// Day bars are scaled to an even daily share of the weekly target.
func ShowWeeklyStats(deps *cli.Deps) {
	svc, ok := servicesOrExit(deps)
	if !ok {
		return
	}

	report := svc.Stats.Weekly()
	if report.Degraded {
		printDegraded(deps, svc.State.Snapshot())
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Statistics for %s:\n", cli.FormatCycle(report.Cycle))
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))

	dailyShare := float64(report.Goal.WeeklyTargetMinutes) / timeutil.DaysPerCycle
	for i, day := range report.Daily {
		fraction := 0.0
		if dailyShare > 0 {
			fraction = float64(day.Minutes) / dailyShare
		}
		line := fmt.Sprintf("%s  %s  %s", day.Date.Format("Mon 01/02"), cli.ProgressBar(fraction, dayBarWidth), cli.FormatDuration(day.Minutes))
		if i < len(report.DailyWork) && report.DailyWork[i].Minutes > 0 {
			line += fmt.Sprintf("  (clocked %s)", cli.FormatDuration(report.DailyWork[i].Minutes))
		}
		_, _ = fmt.Fprintln(deps.Stdout, line)
	}

	s := report.Summary
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Total time:      %s\n", cli.FormatDuration(s.TotalMinutes))
	_, _ = fmt.Fprintf(deps.Stdout, "Total records:   %d %s\n", s.EntryCount, cli.Pluralize("record", s.EntryCount))
	_, _ = fmt.Fprintf(deps.Stdout, "Days with focus: %d %s\n", s.DaysWithEntries, cli.Pluralize("day", s.DaysWithEntries))
	_, _ = fmt.Fprintf(deps.Stdout, "Average per day: %s\n", cli.FormatDuration(int(s.AverageMinutesPerDay)))
	_, _ = fmt.Fprintf(deps.Stdout, "Clocked work:    %s\n", cli.FormatDuration(s.WorkMinutes))
	_, _ = fmt.Fprintf(deps.Stdout, "Today:           %s\n", cli.FormatDuration(report.TodayMinutes))
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Progress:        %s\n", cli.FormatProgress(report.Progress))
	if report.Progress.Reached {
		_, _ = fmt.Fprintln(deps.Stdout, "Remaining:       goal reached")
	} else {
		_, _ = fmt.Fprintf(deps.Stdout, "Remaining:       %s\n", cli.FormatDuration(report.Progress.Remaining))
	}
}
