package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xolan/focus/internal/cli"
	"github.com/xolan/focus/internal/record"
	"github.com/xolan/focus/internal/service"
	"github.com/xolan/focus/internal/stats"
	"github.com/xolan/focus/internal/tui/ui"
)

// progressBarWidth is the width of the goal progress bar in cells
const progressBarWidth = 30

// DashboardModel shows the goal, this week's progress and today's records
type DashboardModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap
	now      func() time.Time

	width  int
	height int
	snap   service.Snapshot
}

// NewDashboardModel creates a new dashboard view model
func NewDashboardModel(services *service.Services, styles ui.Styles, keys ui.KeyMap, now func() time.Time) DashboardModel {
	return DashboardModel{
		services: services,
		styles:   styles,
		keys:     keys,
		now:      now,
		snap:     services.State.Snapshot(),
	}
}

// Init implements tea.Model
func (m DashboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Punch):
			return m, punch(m.services, m.now())
		case key.Matches(msg, m.keys.Refresh):
			return m, refresh(m.services)
		}

	case ui.SnapshotMsg:
		m.snap = msg.Snapshot

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
	}

	return m, nil
}

// View implements tea.Model
func (m DashboardModel) View() string {
	var b strings.Builder
	snap := m.snap

	b.WriteString(m.styles.GoalTitle.Render(snap.Goal.Title))
	b.WriteString("\n")
	b.WriteString(m.styles.HelpDesc.Render(cli.FormatCycle(snap.Cycle)))
	b.WriteString("\n\n")

	b.WriteString(renderDegraded(snap, m.styles))
	b.WriteString(renderProgress(snap.Progress(), progressBarWidth, m.styles))
	b.WriteString("\n\n")

	b.WriteString(renderLine(m.styles, "Today:", cli.FormatDuration(stats.TodayMinutes(snap.TodaysRecords))))
	b.WriteString(renderLine(m.styles, "Clock:", m.clockLine()))
	b.WriteString("\n")

	b.WriteString(m.styles.ViewTitle.Render("Today's records"))
	b.WriteString("\n")
	if len(snap.TodaysRecords) == 0 {
		b.WriteString(m.styles.StatLabel.Render("Nothing logged today"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.HelpDesc.Render("Press 'p' to punch the clock or '4' to add a record"))
		return b.String()
	}
	b.WriteString(RenderRecordList(snap.TodaysRecords, m.styles, RecordRenderOptions{
		Width:  m.width,
		Cursor: -1,
	}))

	return b.String()
}

// clockLine summarizes today's clock session.
func (m DashboardModel) clockLine() string {
	r, ok := stats.ClockRecord(m.snap.TodaysRecords, m.snap.Goal.ID)
	if !ok {
		return record.NotClocked
	}
	switch r.Session() {
	case record.SessionClockedIn:
		elapsed := m.now().Sub(*r.ClockInTime)
		return fmt.Sprintf("in since %s (%s)", r.ClockInDisplay(), cli.FormatElapsedTime(elapsed))
	case record.SessionClockedOut:
		return fmt.Sprintf("%s-%s (%s)", r.ClockInDisplay(), r.ClockOutDisplay(), cli.FormatDuration(r.WorkDurationMinutes))
	}
	return record.NotClocked
}

// SetSize sets the view dimensions
func (m *DashboardModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// punch clocks in or out of today's session at now.
func punch(services *service.Services, now time.Time) tea.Cmd {
	return action(func(ctx context.Context) (string, error) {
		r, err := services.Clock.Punch(ctx, now)
		if err != nil {
			return "", err
		}
		if r.Session() == record.SessionClockedIn {
			return "Clocked in at " + r.ClockInDisplay(), nil
		}
		return fmt.Sprintf("Clocked out at %s (worked %s)", r.ClockOutDisplay(), r.WorkDurationDisplay()), nil
	})
}

// refresh re-reads the store and republishes the snapshot.
func refresh(services *service.Services) tea.Cmd {
	return action(func(ctx context.Context) (string, error) {
		if err := services.State.Refresh(ctx); err != nil {
			return "", err
		}
		return "Refreshed", nil
	})
}
