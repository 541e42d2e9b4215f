package views

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/xolan/focus/internal/cli"
	"github.com/xolan/focus/internal/goal"
	"github.com/xolan/focus/internal/record"
	"github.com/xolan/focus/internal/service"
	"github.com/xolan/focus/internal/tui/ui"
)

// RecordRenderOptions configures how records are rendered
type RecordRenderOptions struct {
	Width  int // Available width for rendering
	Cursor int // Currently selected record index (-1 for none)
	Offset int // Number shown for the first record minus one
}

// RenderRecordList renders records with aligned columns, numbered from
// opts.Offset+1.
func RenderRecordList(records []record.Record, styles ui.Styles, opts RecordRenderOptions) string {
	if len(records) == 0 {
		return ""
	}

	maxIndexWidth := 0
	maxKindWidth := 0
	maxNotesWidth := 0

	type recordData struct {
		index    string
		kind     string
		notes    string
		duration string
	}
	data := make([]recordData, len(records))

	for i, r := range records {
		indexStr := fmt.Sprintf("[%d]", opts.Offset+i+1)
		kindStr := recordKind(r)
		data[i] = recordData{
			index:    indexStr,
			kind:     kindStr,
			notes:    r.Notes,
			duration: record.FormatMinutes(r.DurationMinutes),
		}
		maxIndexWidth = max(maxIndexWidth, len(indexStr))
		maxKindWidth = max(maxKindWidth, len(kindStr))
		maxNotesWidth = max(maxNotesWidth, len([]rune(r.Notes)))
	}

	// Leave room for the duration column
	maxNotesWidth = min(maxNotesWidth, max(opts.Width-maxIndexWidth-maxKindWidth-15, 20))

	var b strings.Builder
	for i, rd := range data {
		style := styles.RecordNormal
		if i == opts.Cursor {
			style = styles.RecordSelected
		}

		notes := []rune(rd.notes)
		if len(notes) > maxNotesWidth {
			notes = append(notes[:maxNotesWidth-1], '…')
		}

		index := styles.RecordIndex.Render(fmt.Sprintf("%-*s", maxIndexWidth, rd.index))
		kind := styles.RecordKind.Render(fmt.Sprintf("%-*s", maxKindWidth, rd.kind))
		notesCol := styles.RecordNotes.Render(fmt.Sprintf("%-*s", maxNotesWidth, string(notes)))
		duration := styles.RecordDuration.Render(rd.duration)

		b.WriteString(style.Render(fmt.Sprintf("%s %s %s %s", index, kind, notesCol, duration)))
		b.WriteString("\n")
	}

	return b.String()
}

// recordKind describes how a record was logged: its clock times, its
// timed span, or "manual".
func recordKind(r record.Record) string {
	switch {
	case r.IsClockEntry():
		out := "..."
		if r.ClockOutTime != nil {
			out = r.ClockOutDisplay()
		}
		return fmt.Sprintf("clock %s-%s", r.ClockInDisplay(), out)
	case r.StartTime != nil && r.EndTime != nil:
		return fmt.Sprintf("%s-%s", r.StartTime.Format("15:04"), r.EndTime.Format("15:04"))
	default:
		return "manual"
	}
}

// RenderProgressBar renders fraction (0..1) as a bar of width cells.
func RenderProgressBar(fraction float64, width int, styles ui.Styles) string {
	if width <= 0 {
		return ""
	}
	fraction = min(max(fraction, 0), 1)
	filled := int(fraction * float64(width))
	return styles.ProgressFilled.Render(strings.Repeat("█", filled)) +
		styles.ProgressEmpty.Render(strings.Repeat("░", width-filled))
}

// renderProgress renders the goal's progress line with its remaining time.
func renderProgress(p goal.Progress, width int, styles ui.Styles) string {
	var b strings.Builder
	b.WriteString(RenderProgressBar(p.Fraction(), width, styles))
	b.WriteString("  ")
	b.WriteString(styles.StatValue.Render(cli.FormatProgress(p)))
	b.WriteString("\n")
	if p.Reached {
		b.WriteString(styles.GoalReached.Render("✓ Goal reached"))
	} else {
		b.WriteString(styles.HelpDesc.Render(cli.FormatDuration(p.Remaining) + " to go"))
	}
	return b.String()
}

// inputDuration formats minutes in the compact form accepted by
// record.ParseDuration ("1h30m").
func inputDuration(minutes int) string {
	switch {
	case minutes < 60:
		return fmt.Sprintf("%dm", minutes)
	case minutes%60 == 0:
		return fmt.Sprintf("%dh", minutes/60)
	default:
		return fmt.Sprintf("%dh%dm", minutes/60, minutes%60)
	}
}

// weekRecords flattens this week's records in the order `focus week`
// numbers them.
func weekRecords(services *service.Services) []record.Record {
	var out []record.Record
	for _, g := range services.Record.WeekByDay() {
		out = append(out, g.Records...)
	}
	return out
}

// action runs fn as a command and reports the status line it returns,
// or its error, with ui.ActionMsg.
func action(fn func(ctx context.Context) (string, error)) tea.Cmd {
	return func() tea.Msg {
		status, err := fn(context.Background())
		if err != nil {
			return ui.ActionMsg{Err: err}
		}
		return ui.ActionMsg{Status: status}
	}
}

func renderDegraded(snap service.Snapshot, styles ui.Styles) string {
	if !snap.Degraded {
		return ""
	}
	return styles.Warning.Render(fmt.Sprintf("⚠ Records could not be loaded: %v", snap.LastError)) + "\n\n"
}

func renderLine(styles ui.Styles, label, value string) string {
	return styles.StatLabel.Render(label) + " " + styles.StatValue.Render(value) + "\n"
}
