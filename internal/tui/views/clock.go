package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xolan/focus/internal/cli"
	"github.com/xolan/focus/internal/record"
	"github.com/xolan/focus/internal/service"
	"github.com/xolan/focus/internal/stats"
	"github.com/xolan/focus/internal/tui/ui"
)

// ClockModel is the model for the clock view: today's clock session and
// the stopwatch
type ClockModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap
	now      func() time.Time

	// UI state
	width  int
	height int
	snap   service.Snapshot
	status *service.TimerStatus
	err    error

	// Input state for starting the stopwatch
	inputMode bool
	input     textinput.Model
}

// NewClockModel creates a new clock view model
func NewClockModel(services *service.Services, styles ui.Styles, keys ui.KeyMap, now func() time.Time) ClockModel {
	ti := textinput.New()
	ti.Placeholder = "Notes (optional)..."
	ti.CharLimit = 200
	ti.Width = 50

	return ClockModel{
		services: services,
		styles:   styles,
		keys:     keys,
		now:      now,
		snap:     services.State.Snapshot(),
		input:    ti,
	}
}

// timerStatusMsg is sent when the stopwatch status is loaded
type timerStatusMsg struct {
	status *service.TimerStatus
	err    error
}

// Init implements tea.Model
func (m ClockModel) Init() tea.Cmd {
	return m.loadStatus()
}

// Update implements tea.Model
func (m ClockModel) Update(msg tea.Msg) (ClockModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.inputMode {
			return m.handleInputMode(msg)
		}
		return m.handleKey(msg)

	case timerStatusMsg:
		m.err = msg.err
		m.status = msg.status
		return m, nil

	case ui.TickMsg:
		if m.status != nil && m.status.Running {
			m.status.ElapsedTime = m.status.State.Elapsed(msg.Time)
		}
		return m, nil

	case ui.SnapshotMsg:
		m.snap = msg.Snapshot
		// The stopwatch file may have changed with the records
		return m, m.loadStatus()

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	if m.inputMode {
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m ClockModel) handleKey(msg tea.KeyMsg) (ClockModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ClockIn):
		return m, m.clockIn()
	case key.Matches(msg, m.keys.ClockOut):
		return m, m.clockOut()
	case key.Matches(msg, m.keys.Punch):
		return m, punch(m.services, m.now())
	case key.Matches(msg, m.keys.ResetClock):
		return m, m.resetClock()
	case key.Matches(msg, m.keys.Start):
		// Only allow starting if no stopwatch is running
		if m.status == nil || !m.status.Running {
			m.inputMode = true
			m.input.Focus()
			m.input.SetValue("")
			return m, textinput.Blink
		}
	case key.Matches(msg, m.keys.Stop):
		if m.status != nil && m.status.Running {
			return m, m.stopTimer()
		}
	case key.Matches(msg, m.keys.Cancel):
		if m.status != nil && m.status.Running {
			return m, m.cancelTimer()
		}
	case key.Matches(msg, m.keys.Refresh):
		return m, tea.Batch(m.loadStatus(), refresh(m.services))
	}
	return m, nil
}

// handleInputMode handles key events when in input mode
func (m ClockModel) handleInputMode(msg tea.KeyMsg) (ClockModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		m.inputMode = false
		m.input.Blur()
		return m, m.startTimer(strings.TrimSpace(m.input.Value()))
	case key.Matches(msg, m.keys.Back):
		m.inputMode = false
		m.input.Blur()
		m.input.SetValue("")
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m ClockModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Clock"))
	b.WriteString("\n\n")
	b.WriteString(m.renderSession())
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", min(50, max(m.width, 20))))
	b.WriteString("\n\n")
	b.WriteString(m.renderStopwatch())

	return b.String()
}

func (m ClockModel) renderSession() string {
	var b strings.Builder

	r, ok := stats.ClockRecord(m.snap.TodaysRecords, m.snap.Goal.ID)
	if !ok {
		b.WriteString(m.styles.TimerStopped.Render("Not clocked in today"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.HelpDesc.Render("Press 'i' to clock in or 'p' to punch"))
		b.WriteString("\n")
		return b.String()
	}

	switch r.Session() {
	case record.SessionClockedIn:
		b.WriteString(m.styles.ClockIn.Render("● Clocked in"))
	default:
		b.WriteString(m.styles.ClockOut.Render("○ Clocked out"))
	}
	b.WriteString("\n\n")

	b.WriteString(renderLine(m.styles, "In:", r.ClockInDisplay()))
	b.WriteString(renderLine(m.styles, "Out:", r.ClockOutDisplay()))
	if r.Session() == record.SessionClockedIn {
		elapsed := m.now().Sub(*r.ClockInTime)
		b.WriteString(m.styles.StatLabel.Render("Elapsed:"))
		b.WriteString(" ")
		b.WriteString(m.styles.TimerElapsed.Render(cli.FormatElapsedTime(elapsed)))
		b.WriteString("\n\n")
		b.WriteString(m.styles.HelpDesc.Render("Press 'o' to clock out"))
	} else {
		b.WriteString(renderLine(m.styles, "Worked:", r.WorkDurationDisplay()))
		b.WriteString("\n")
		b.WriteString(m.styles.HelpDesc.Render("Press 'R' to reset today's session"))
	}
	b.WriteString("\n")
	return b.String()
}

func (m ClockModel) renderStopwatch() string {
	var b strings.Builder

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		return b.String()
	}

	if m.inputMode {
		b.WriteString(m.styles.StatLabel.Render("Start Stopwatch"))
		b.WriteString("\n\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(m.styles.HelpDesc.Render("Enter to start, Esc to cancel"))
		return b.String()
	}

	if m.status == nil || !m.status.Running {
		b.WriteString(m.styles.TimerStopped.Render("No stopwatch running"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.HelpDesc.Render("Press 's' to start the stopwatch"))
		return b.String()
	}

	state := m.status.State
	b.WriteString(m.styles.TimerRunning.Render("● Stopwatch Running"))
	b.WriteString("\n\n")
	if state.Notes != "" {
		b.WriteString(renderLine(m.styles, "Notes:", state.Notes))
	}
	b.WriteString(renderLine(m.styles, "Started:", cli.FormatTimerStartTime(state.StartedAt, m.now())))
	b.WriteString(m.styles.StatLabel.Render("Elapsed:"))
	b.WriteString(" ")
	b.WriteString(m.styles.TimerElapsed.Render(cli.FormatElapsedTime(m.status.ElapsedTime)))
	b.WriteString("\n\n")
	b.WriteString(m.styles.HelpDesc.Render("Press 'x' to stop or 'c' to discard"))

	return b.String()
}

// SetSize sets the view dimensions
func (m *ClockModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// IsInputMode returns true when the view is capturing keyboard input
func (m ClockModel) IsInputMode() bool {
	return m.inputMode
}

// loadStatus creates a command to load the stopwatch status
func (m ClockModel) loadStatus() tea.Cmd {
	services := m.services
	return func() tea.Msg {
		status, err := services.Timer.Status()
		if err != nil {
			return timerStatusMsg{err: err}
		}
		return timerStatusMsg{status: &status}
	}
}

func (m ClockModel) clockIn() tea.Cmd {
	services, now := m.services, m.now()
	return action(func(ctx context.Context) (string, error) {
		r, err := services.Clock.CreateAndClockIn(ctx, now)
		if err != nil {
			return "", err
		}
		return "Clocked in at " + r.ClockInDisplay(), nil
	})
}

func (m ClockModel) clockOut() tea.Cmd {
	services, now := m.services, m.now()
	return action(func(ctx context.Context) (string, error) {
		r, err := services.Clock.ClockOutAt(ctx, now)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Clocked out at %s (worked %s)", r.ClockOutDisplay(), r.WorkDurationDisplay()), nil
	})
}

func (m ClockModel) resetClock() tea.Cmd {
	services, now := m.services, m.now()
	return action(func(ctx context.Context) (string, error) {
		if _, err := services.Clock.ResetDay(ctx, now); err != nil {
			return "", err
		}
		return "Clock session cleared for today", nil
	})
}

// startTimer creates a command to start the stopwatch with the given notes
func (m ClockModel) startTimer(notes string) tea.Cmd {
	services := m.services
	return action(func(ctx context.Context) (string, error) {
		if _, _, err := services.Timer.Start(ctx, notes, false); err != nil {
			return "", err
		}
		return "Stopwatch started", nil
	})
}

// stopTimer creates a command to stop the stopwatch and log its span
func (m ClockModel) stopTimer() tea.Cmd {
	services := m.services
	return action(func(ctx context.Context) (string, error) {
		r, _, err := services.Timer.Stop(ctx)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Stopped: %s (%s)", recordKind(r), cli.FormatDuration(r.DurationMinutes)), nil
	})
}

func (m ClockModel) cancelTimer() tea.Cmd {
	services := m.services
	return action(func(ctx context.Context) (string, error) {
		if _, err := services.Timer.Cancel(); err != nil {
			return "", err
		}
		return "Stopwatch discarded", nil
	})
}
