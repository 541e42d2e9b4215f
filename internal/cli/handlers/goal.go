package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/xolan/focus/internal/cli"
	"github.com/xolan/focus/internal/goal"
	"github.com/xolan/focus/internal/record"
)

// ShowGoal prints the active goal
func ShowGoal(deps *cli.Deps) {
	svc, ok := servicesOrExit(deps)
	if !ok {
		return
	}

	snap := svc.State.Snapshot()
	g := snap.Goal
	_, _ = fmt.Fprintf(deps.Stdout, "Goal: %s\n", g.Title)
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Weekly target: %s\n", cli.FormatDuration(g.WeeklyTargetMinutes))
	_, _ = fmt.Fprintf(deps.Stdout, "Week starts:   %s\n", g.WeekStartDay)
	_, _ = fmt.Fprintf(deps.Stdout, "Created:       %s\n", g.CreatedAt.Format("Mon, Jan 2, 2006"))
	_, _ = fmt.Fprintf(deps.Stdout, "This week:     %s\n", cli.FormatProgress(snap.Progress()))
}

// SetGoal changes the weekly target and/or week start. Empty inputs keep
// the current value.
func SetGoal(deps *cli.Deps, targetInput, weekStartInput string) {
	const usage = "focus goal set --target 40h --start monday"
	if targetInput == "" && weekStartInput == "" {
		usageError(deps, "At least one of --target or --start is required", usage)
		return
	}

	svc, ok := servicesOrExit(deps)
	if !ok {
		return
	}
	current := svc.Goal.Current()

	target := current.WeeklyTargetMinutes
	if targetInput != "" {
		minutes, err := record.ParseTarget(strings.TrimSpace(targetInput))
		if err != nil {
			usageError(deps, err.Error(), usage)
			return
		}
		target = minutes
	}

	weekStart := current.WeekStartDay
	if weekStartInput != "" {
		day, err := goal.ParseWeekDay(weekStartInput)
		if err != nil {
			usageError(deps, err.Error(), usage)
			return
		}
		weekStart = day
	}

	g, err := svc.Goal.Update(context.Background(), target, weekStart)
	if err != nil {
		reportError(deps, "Failed to update goal", err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Goal updated: %s per week, starting %s\n", cli.FormatDuration(g.WeeklyTargetMinutes), g.WeekStartDay)
	printWeekLine(deps, svc)
}

// RenameGoal changes the title of the active goal
func RenameGoal(deps *cli.Deps, title string) {
	svc, ok := servicesOrExit(deps)
	if !ok {
		return
	}

	g, err := svc.Goal.Rename(context.Background(), title)
	if err != nil {
		reportError(deps, "Failed to rename goal", err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Goal renamed to %q\n", g.Title)
}

// ResetGoal restores the default target and week start
func ResetGoal(deps *cli.Deps) {
	svc, ok := servicesOrExit(deps)
	if !ok {
		return
	}

	g, err := svc.Goal.ResetDefaults(context.Background())
	if err != nil {
		reportError(deps, "Failed to reset goal", err)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Goal reset: %s per week, starting %s\n", cli.FormatDuration(g.WeeklyTargetMinutes), g.WeekStartDay)
}

// SetupAnswers holds the values edited by the setup form.
type SetupAnswers struct {
	Title     string
	Target    string
	WeekStart goal.WeekDay
}

// SetupPrompt asks the user for the setup answers, editing them in place.
type SetupPrompt func(answers *SetupAnswers) error

// NewSetupForm builds the interactive form bound to answers.
func NewSetupForm(answers *SetupAnswers) *huh.Form {
	days := make([]huh.Option[goal.WeekDay], 0, 7)
	for _, d := range goal.AllWeekDays() {
		days = append(days, huh.NewOption(d.String(), d))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Goal name").
				Value(&answers.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Weekly target").
				Description("Hours (40), or a duration like 37h30m").
				Value(&answers.Target).
				Validate(func(s string) error {
					_, err := record.ParseTarget(strings.TrimSpace(s))
					return err
				}),
			huh.NewSelect[goal.WeekDay]().
				Title("Week starts on").
				Options(days...).
				Value(&answers.WeekStart),
		),
	)
}

// RunHuhSetup runs the setup form in the terminal.
func RunHuhSetup(answers *SetupAnswers) error {
	return NewSetupForm(answers).Run()
}

// RunSetup walks the user through naming the goal and choosing the target
// and week start, prefilled with the current values.
func RunSetup(deps *cli.Deps, prompt SetupPrompt) {
	svc, ok := servicesOrExit(deps)
	if !ok {
		return
	}

	current := svc.Goal.Current()
	answers := SetupAnswers{
		Title:     current.Title,
		Target:    record.FormatMinutes(current.WeeklyTargetMinutes),
		WeekStart: current.WeekStartDay,
	}
	answers.Target = strings.ReplaceAll(answers.Target, " ", "")

	if err := prompt(&answers); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			_, _ = fmt.Fprintln(deps.Stdout, "Setup cancelled, nothing changed")
			return
		}
		reportError(deps, "Setup failed", err)
		return
	}

	target, err := record.ParseTarget(strings.TrimSpace(answers.Target))
	if err != nil {
		usageError(deps, err.Error(), "")
		return
	}

	ctx := context.Background()
	if strings.TrimSpace(answers.Title) != current.Title {
		if _, err := svc.Goal.Rename(ctx, answers.Title); err != nil {
			reportError(deps, "Failed to rename goal", err)
			return
		}
	}
	g, err := svc.Goal.Update(ctx, target, answers.WeekStart)
	if err != nil {
		reportError(deps, "Failed to update goal", err)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "%s: %s per week, starting %s\n", g.Title, cli.FormatDuration(g.WeeklyTargetMinutes), g.WeekStartDay)
}
