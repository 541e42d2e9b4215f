package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xolan/focus/internal/cli"
	"github.com/xolan/focus/internal/service"
	"github.com/xolan/focus/internal/timeutil"
	"github.com/xolan/focus/internal/tui/ui"
)

// dayBarWidth is the width of the longest per-day bar
const dayBarWidth = 24

// StatsModel is the model for the stats view
type StatsModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	width  int
	height int
	report service.WeeklyReport
	today  int // index of today in the cycle, -1 when outside it
}

// NewStatsModel creates a new stats view model
func NewStatsModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) StatsModel {
	m := StatsModel{
		services: services,
		styles:   styles,
		keys:     keys,
	}
	m.load(services.State.Snapshot())
	return m
}

// Init implements tea.Model
func (m StatsModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m StatsModel) Update(msg tea.Msg) (StatsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Refresh) {
			return m, refresh(m.services)
		}

	case ui.SnapshotMsg:
		m.load(msg.Snapshot)

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
	}

	return m, nil
}

func (m *StatsModel) load(snap service.Snapshot) {
	m.report = m.services.Stats.Weekly()
	m.today = -1
	for i, d := range m.report.Daily {
		if timeutil.SameDay(d.Date, snap.RefreshedAt) {
			m.today = i
		}
	}
}

// View implements tea.Model
func (m StatsModel) View() string {
	var b strings.Builder
	r := m.report

	b.WriteString(m.styles.ViewTitle.Render("Statistics for " + cli.FormatCycle(r.Cycle)))
	b.WriteString("\n\n")
	if r.Degraded {
		b.WriteString(m.styles.Warning.Render("⚠ Records could not be loaded"))
		b.WriteString("\n\n")
	}

	peak := 0
	for _, d := range r.Daily {
		peak = max(peak, d.Minutes)
	}
	for i, d := range r.Daily {
		width := 0
		if peak > 0 {
			width = d.Minutes * dayBarWidth / peak
		}
		label := d.Date.Format("Mon 01/02")
		if i == m.today {
			label = m.styles.StatusKey.Render(label)
		}
		line := fmt.Sprintf("%s  %s%s %6s",
			label,
			m.styles.StatBar.Render(strings.Repeat("█", width)),
			strings.Repeat(" ", dayBarWidth-width),
			cli.FormatDuration(d.Minutes))
		if i < len(r.DailyWork) && r.DailyWork[i].Minutes > 0 {
			line += m.styles.StatLabel.UnsetWidth().Render(fmt.Sprintf("  (clocked %s)", cli.FormatDuration(r.DailyWork[i].Minutes)))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	s := r.Summary
	b.WriteString(renderLine(m.styles, "Total time:", cli.FormatDuration(s.TotalMinutes)))
	b.WriteString(renderLine(m.styles, "Records:", fmt.Sprintf("%d %s", s.EntryCount, cli.Pluralize("record", s.EntryCount))))
	b.WriteString(renderLine(m.styles, "Days with focus:", fmt.Sprintf("%d %s", s.DaysWithEntries, cli.Pluralize("day", s.DaysWithEntries))))
	b.WriteString(renderLine(m.styles, "Average per day:", cli.FormatDuration(int(s.AverageMinutesPerDay))))
	b.WriteString(renderLine(m.styles, "Clocked:", cli.FormatDuration(s.WorkMinutes)))
	b.WriteString(renderLine(m.styles, "Today:", cli.FormatDuration(r.TodayMinutes)))
	b.WriteString("\n")
	b.WriteString(renderLine(m.styles, "Goal:", cli.FormatProgress(r.Progress)))

	return b.String()
}

// SetSize sets the view dimensions
func (m *StatsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
