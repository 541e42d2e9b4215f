// Package tui provides the Terminal User Interface for the focus application.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xolan/focus/internal/service"
	"github.com/xolan/focus/internal/tui/ui"
	"github.com/xolan/focus/internal/tui/views"
)

// Tab represents a view tab
type Tab int

const (
	TabDashboard Tab = iota
	TabClock
	TabStats
	TabRecords
	TabConfig
)

var tabNames = []string{"Dashboard", "Clock", "Stats", "Records", "Config"}

// tickInterval drives live elapsed times and the midnight rollover
const tickInterval = time.Second

// Model is the root TUI model
type Model struct {
	services *service.Services
	now      func() time.Time

	// UI state
	activeTab Tab
	width     int
	height    int
	showHelp  bool
	status    string
	statusErr bool

	// View models
	dashboardView views.DashboardModel
	clockView     views.ClockModel
	statsView     views.StatsModel
	recordsView   views.RecordsModel
	configView    views.ConfigModel

	// Theme and styles
	themeProvider *ui.ThemeProvider
	styles        ui.Styles
	keys          ui.KeyMap
}

// New creates a new TUI model using the wall clock.
func New(services *service.Services) Model {
	return NewWithClock(services, time.Now)
}

// NewWithClock creates a new TUI model that reads the current time from now.
func NewWithClock(services *service.Services, now func() time.Time) Model {
	themeProvider := ui.NewThemeProvider(services.Config.Get().Theme)
	styles := themeProvider.Styles()
	keys := ui.DefaultKeyMap()

	return Model{
		services:      services,
		now:           now,
		activeTab:     TabDashboard,
		themeProvider: themeProvider,
		styles:        styles,
		keys:          keys,
		dashboardView: views.NewDashboardModel(services, styles, keys, now),
		clockView:     views.NewClockModel(services, styles, keys, now),
		statsView:     views.NewStatsModel(services, styles, keys),
		recordsView:   views.NewRecordsModel(services, styles, keys),
		configView:    views.NewConfigModel(services, themeProvider, styles, keys),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.clockView.Init(),
		m.configView.Init(),
		tick(),
	)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Views in input mode receive every key except ctrl+c
		if m.isModalInputMode() {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			break
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		case key.Matches(msg, m.keys.NextTab):
			return m.switchTab(Tab((int(m.activeTab) + 1) % len(tabNames)))
		case key.Matches(msg, m.keys.PrevTab):
			return m.switchTab(Tab((int(m.activeTab) - 1 + len(tabNames)) % len(tabNames)))
		case key.Matches(msg, m.keys.Tab1):
			return m.switchTab(TabDashboard)
		case key.Matches(msg, m.keys.Tab2):
			return m.switchTab(TabClock)
		case key.Matches(msg, m.keys.Tab3):
			return m.switchTab(TabStats)
		case key.Matches(msg, m.keys.Tab4):
			return m.switchTab(TabRecords)
		case key.Matches(msg, m.keys.Tab5):
			return m.switchTab(TabConfig)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		contentHeight := m.height - 4 // Account for tabs and status bar
		m.dashboardView.SetSize(m.width, contentHeight)
		m.clockView.SetSize(m.width, contentHeight)
		m.statsView.SetSize(m.width, contentHeight)
		m.recordsView.SetSize(m.width, contentHeight)
		m.configView.SetSize(m.width, contentHeight)
		return m, nil

	case ui.TickMsg:
		var cmd tea.Cmd
		m.clockView, cmd = m.clockView.Update(msg)
		return m, tea.Batch(cmd, tick(), m.rollover(msg.Time))

	case ui.SnapshotMsg:
		return m.broadcast(msg)

	case ui.ActionMsg:
		m.status = msg.Status
		m.statusErr = msg.Err != nil
		if msg.Err != nil {
			m.status = "Error: " + msg.Err.Error()
		}
		var cmd tea.Cmd
		m.recordsView, cmd = m.recordsView.Update(msg)
		next, broadcastCmd := m.broadcast(ui.SnapshotMsg{Snapshot: m.services.State.Snapshot()})
		return next, tea.Batch(cmd, broadcastCmd)

	case ui.ThemeChangeRequestMsg:
		m.themeProvider.SetTheme(msg.ThemeName)
		newTheme := m.themeProvider.CurrentName()
		m.styles = m.themeProvider.Styles()

		next, _ := m.broadcast(ui.ThemeChangedMsg{ThemeName: newTheme, Styles: m.styles})
		return next, m.saveThemeConfig(newTheme)
	}

	// Update the active view
	var cmd tea.Cmd
	switch m.activeTab {
	case TabDashboard:
		m.dashboardView, cmd = m.dashboardView.Update(msg)
	case TabClock:
		m.clockView, cmd = m.clockView.Update(msg)
	case TabStats:
		m.statsView, cmd = m.statsView.Update(msg)
	case TabRecords:
		m.recordsView, cmd = m.recordsView.Update(msg)
	case TabConfig:
		m.configView, cmd = m.configView.Update(msg)
	}
	return m, cmd
}

// broadcast delivers msg to every view.
func (m Model) broadcast(msg tea.Msg) (Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 5)
	m.dashboardView, cmds[0] = m.dashboardView.Update(msg)
	m.clockView, cmds[1] = m.clockView.Update(msg)
	m.statsView, cmds[2] = m.statsView.Update(msg)
	m.recordsView, cmds[3] = m.recordsView.Update(msg)
	m.configView, cmds[4] = m.configView.Update(msg)
	return m, tea.Batch(cmds...)
}

func (m Model) switchTab(t Tab) (Model, tea.Cmd) {
	m.activeTab = t
	m.status = ""
	return m, m.initCurrentView()
}

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	switch m.activeTab {
	case TabDashboard:
		b.WriteString(m.dashboardView.View())
	case TabClock:
		b.WriteString(m.clockView.View())
	case TabStats:
		b.WriteString(m.statsView.View())
	case TabRecords:
		b.WriteString(m.recordsView.View())
	case TabConfig:
		b.WriteString(m.configView.View())
	}

	b.WriteString("\n\n")
	b.WriteString(m.renderStatusBar())

	if m.showHelp {
		return m.renderHelpOverlay()
	}

	return m.styles.App.Render(b.String())
}

// renderTabs renders the tab bar
func (m Model) renderTabs() string {
	var tabs []string
	for i, name := range tabNames {
		if Tab(i) == m.activeTab {
			tabs = append(tabs, m.styles.TabActive.Render(name))
		} else {
			tabs = append(tabs, m.styles.TabInactive.Render(name))
		}
	}
	return m.styles.TabBar.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

// renderStatusBar renders the last action result and the key hints
func (m Model) renderStatusBar() string {
	var parts []string

	if m.status != "" {
		style := m.styles.Success
		if m.statusErr {
			style = m.styles.Error
		}
		parts = append(parts, style.Render(m.status))
	}

	if m.isModalInputMode() {
		if m.activeTab == TabRecords {
			parts = append(parts, m.renderKeyHelp("Tab", "switch field"))
		}
		parts = append(parts, m.renderKeyHelp("Enter", "confirm"))
		parts = append(parts, m.renderKeyHelp("Esc", "cancel"))
	} else {
		switch m.activeTab {
		case TabDashboard:
			parts = append(parts, m.renderKeyHelp("p", "punch"))
		case TabClock:
			parts = append(parts, m.renderKeyHelp("i/o", "in/out"))
			parts = append(parts, m.renderKeyHelp("s/x", "start/stop"))
		case TabRecords:
			parts = append(parts, m.renderKeyHelp("n", "add"))
			parts = append(parts, m.renderKeyHelp("e", "edit"))
			parts = append(parts, m.renderKeyHelp("d", "delete"))
		case TabConfig:
			parts = append(parts, m.renderKeyHelp("t", "themes"))
			parts = append(parts, m.renderKeyHelp("[/]", "cycle"))
		}

		parts = append(parts, m.renderKeyHelp("1-5", "views"))
		parts = append(parts, m.renderKeyHelp("?", "help"))
		parts = append(parts, m.renderKeyHelp("q", "quit"))
	}

	content := strings.Join(parts, "  ")
	if padding := m.width - lipgloss.Width(content); padding > 0 {
		content += strings.Repeat(" ", padding)
	}

	return m.styles.StatusBar.Render(content)
}

// renderKeyHelp renders a single key help item
func (m Model) renderKeyHelp(key, desc string) string {
	return fmt.Sprintf("%s %s",
		m.styles.StatusKey.Render(key),
		m.styles.StatusHelp.Render(desc))
}

// isModalInputMode checks if the current view is capturing keyboard input
func (m Model) isModalInputMode() bool {
	switch m.activeTab {
	case TabClock:
		return m.clockView.IsInputMode()
	case TabRecords:
		return m.recordsView.IsInputMode()
	case TabConfig:
		return m.configView.IsInputMode()
	}
	return false
}

// initCurrentView initializes the current view when switching tabs
func (m Model) initCurrentView() tea.Cmd {
	switch m.activeTab {
	case TabDashboard:
		return m.dashboardView.Init()
	case TabClock:
		return m.clockView.Init()
	case TabStats:
		return m.statsView.Init()
	case TabRecords:
		return m.recordsView.Init()
	case TabConfig:
		return m.configView.Init()
	}
	return nil
}

// saveThemeConfig saves the theme to the config file
func (m Model) saveThemeConfig(themeName string) tea.Cmd {
	services := m.services
	return func() tea.Msg {
		if err := services.Config.Set("theme", themeName); err != nil {
			return ui.ActionMsg{Err: fmt.Errorf("failed to save theme: %w", err)}
		}
		return ui.ActionMsg{Status: "Theme set to " + themeName}
	}
}

// rollover republishes the snapshot when t falls on a new day.
func (m Model) rollover(t time.Time) tea.Cmd {
	services := m.services
	return func() tea.Msg {
		refreshed, err := services.State.Tick(context.Background(), t)
		if err != nil {
			return ui.ActionMsg{Err: err}
		}
		if !refreshed {
			return nil
		}
		return ui.SnapshotMsg{Snapshot: services.State.Snapshot()}
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return ui.TickMsg{Time: t}
	})
}

// renderHelpOverlay renders the key reference for the active view
func (m Model) renderHelpOverlay() string {
	var help strings.Builder

	help.WriteString(m.styles.ViewTitle.Render("Keyboard Shortcuts"))
	help.WriteString("\n\n")

	help.WriteString(m.styles.StatLabel.Render("Global:"))
	help.WriteString("\n")
	help.WriteString("  Tab/1-5    Switch views\n")
	help.WriteString("  r          Refresh\n")
	help.WriteString("  ?          Toggle help\n")
	help.WriteString("  q          Quit\n")
	help.WriteString("\n")

	switch m.activeTab {
	case TabDashboard:
		help.WriteString(m.styles.StatLabel.Render("Dashboard:"))
		help.WriteString("\n")
		help.WriteString("  p          Punch the clock\n")
	case TabClock:
		help.WriteString(m.styles.StatLabel.Render("Clock:"))
		help.WriteString("\n")
		help.WriteString("  i          Clock in\n")
		help.WriteString("  o          Clock out\n")
		help.WriteString("  p          Punch (in or out)\n")
		help.WriteString("  R          Reset today's session\n")
		help.WriteString("  s          Start stopwatch\n")
		help.WriteString("  x          Stop stopwatch and log it\n")
		help.WriteString("  c          Discard stopwatch\n")
	case TabStats:
		help.WriteString(m.styles.StatLabel.Render("Stats:"))
		help.WriteString("\n")
		help.WriteString("  Daily totals for the current week\n")
	case TabRecords:
		help.WriteString(m.styles.StatLabel.Render("Records:"))
		help.WriteString("\n")
		help.WriteString("  j/k        Navigate up/down\n")
		help.WriteString("  n/a        Add record\n")
		help.WriteString("  e          Edit record\n")
		help.WriteString("  d          Delete record\n")
	case TabConfig:
		help.WriteString(m.styles.StatLabel.Render("Config:"))
		help.WriteString("\n")
		help.WriteString("  t/Enter    Open theme selector\n")
		help.WriteString("  [ / ]      Previous/next theme\n")
		help.WriteString("  j/k        Navigate themes\n")
		help.WriteString("  Esc        Cancel\n")
	}

	help.WriteString("\n")
	help.WriteString(m.styles.StatLabel.Render("Press ? to close"))

	return m.styles.App.Render(m.styles.Dialog.Render(help.String()))
}

// Run starts the TUI and keeps it in sync with published snapshots
// until the user quits.
func Run(services *service.Services) error {
	p := tea.NewProgram(New(services), tea.WithAltScreen())
	cancel := services.State.Subscribe(func(s service.Snapshot) {
		p.Send(ui.SnapshotMsg{Snapshot: s})
	})
	defer cancel()

	_, err := p.Run()
	return err
}
