package views

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xolan/focus/internal/cli"
	"github.com/xolan/focus/internal/config"
	"github.com/xolan/focus/internal/service"
	"github.com/xolan/focus/internal/tui/ui"
)

// ConfigModel is the model for the config view
type ConfigModel struct {
	services      *service.Services
	themeProvider *ui.ThemeProvider
	styles        ui.Styles
	keys          ui.KeyMap

	// UI state
	width     int
	height    int
	config    config.Config
	path      string
	exists    bool
	themeName string
	health    *service.StorageHealth
	healthErr error

	// Theme selector state
	selectingTheme bool
	themes         []string
	themeCursor    int
	themeOffset    int // For scrolling
}

// NewConfigModel creates a new config view model
func NewConfigModel(services *service.Services, themeProvider *ui.ThemeProvider, styles ui.Styles, keys ui.KeyMap) ConfigModel {
	m := ConfigModel{
		services:      services,
		themeProvider: themeProvider,
		styles:        styles,
		keys:          keys,
		themes:        config.Themes(),
		themeName:     themeProvider.CurrentName(),
	}
	m.resetThemeCursor()
	return m
}

// configLoadedMsg is sent when config and storage health are loaded
type configLoadedMsg struct {
	config    config.Config
	path      string
	exists    bool
	health    *service.StorageHealth
	healthErr error
}

// maxVisibleThemes is the maximum number of themes to show at once
const maxVisibleThemes = 10

// Init implements tea.Model
func (m ConfigModel) Init() tea.Cmd {
	return m.loadConfig()
}

// Update implements tea.Model
func (m ConfigModel) Update(msg tea.Msg) (ConfigModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.selectingTheme {
			return m.handleThemeSelection(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Select) || msg.String() == "t":
			m.selectingTheme = true
			m.updateThemeOffset()
			return m, nil
		case key.Matches(msg, m.keys.NextTheme):
			return m, m.requestThemeChange(m.themeProvider.Cycle(1))
		case key.Matches(msg, m.keys.PrevTheme):
			return m, m.requestThemeChange(m.themeProvider.Cycle(-1))
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadConfig()
		}

	case configLoadedMsg:
		m.config = msg.config
		m.path = msg.path
		m.exists = msg.exists
		m.health = msg.health
		m.healthErr = msg.healthErr
		m.themeName = msg.config.Theme
		if m.themeName == "" {
			m.themeName = ui.DefaultTheme
		}
		m.resetThemeCursor()

	case ui.SnapshotMsg:
		// Corrupted line counts change with every write to jsonl files
		return m, m.loadConfig()

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		m.themeName = msg.ThemeName
		m.config.Theme = msg.ThemeName
		return m, nil
	}

	return m, nil
}

// handleThemeSelection handles keys when theme selector is open
func (m ConfigModel) handleThemeSelection(msg tea.KeyMsg) (ConfigModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.themeCursor > 0 {
			m.themeCursor--
			m.updateThemeOffset()
		}
	case key.Matches(msg, m.keys.Down):
		if m.themeCursor < len(m.themes)-1 {
			m.themeCursor++
			m.updateThemeOffset()
		}
	case key.Matches(msg, m.keys.Select):
		m.selectingTheme = false
		if m.themeCursor < len(m.themes) {
			return m, m.requestThemeChange(m.themes[m.themeCursor])
		}
	case key.Matches(msg, m.keys.Back):
		m.selectingTheme = false
		m.resetThemeCursor()
	}
	return m, nil
}

func (m *ConfigModel) resetThemeCursor() {
	for i, t := range m.themes {
		if t == m.themeName {
			m.themeCursor = i
			return
		}
	}
}

// updateThemeOffset adjusts scroll offset to keep cursor visible
func (m *ConfigModel) updateThemeOffset() {
	if m.themeCursor < m.themeOffset {
		m.themeOffset = m.themeCursor
	} else if m.themeCursor >= m.themeOffset+maxVisibleThemes {
		m.themeOffset = m.themeCursor - maxVisibleThemes + 1
	}
}

// requestThemeChange creates a command to request a theme change by name
func (m ConfigModel) requestThemeChange(themeName string) tea.Cmd {
	return func() tea.Msg {
		return ui.ThemeChangeRequestMsg{ThemeName: themeName}
	}
}

// View implements tea.Model
func (m ConfigModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Configuration"))
	b.WriteString("\n\n")

	b.WriteString(renderLine(m.styles, "Config file:", m.path))
	b.WriteString(m.styles.StatLabel.Render("Status:"))
	b.WriteString(" ")
	if m.exists {
		b.WriteString(m.styles.Success.Render("File exists"))
	} else {
		b.WriteString(m.styles.Warning.Render("Using defaults (no config file)"))
	}
	b.WriteString("\n\n")

	b.WriteString(strings.Repeat("─", min(50, max(m.width, 20))))
	b.WriteString("\n\n")

	b.WriteString(renderLine(m.styles, "week_start_day:", m.config.WeekStartDay))
	b.WriteString(renderLine(m.styles, "default_target:", cli.FormatDuration(m.config.DefaultTargetMinutes)))
	b.WriteString(renderLine(m.styles, "timezone:", m.config.Timezone))
	b.WriteString(renderLine(m.styles, "storage:", m.config.Storage))
	if m.config.DataDir != "" {
		b.WriteString(renderLine(m.styles, "data_dir:", m.config.DataDir))
	}
	b.WriteString(renderLine(m.styles, "log_level:", m.config.LogLevel))

	if m.selectingTheme {
		b.WriteString(m.renderThemeSelector())
		return b.String()
	}
	theme := m.themeName
	if m.themeProvider.CurrentName() == m.themeName {
		theme += " (" + m.themeProvider.CurrentDisplayName() + ")"
	}
	b.WriteString(renderLine(m.styles, "theme:", theme))
	b.WriteString("\n")
	b.WriteString(m.renderStorage())
	b.WriteString("\n")
	b.WriteString(m.styles.HelpDesc.Render("Press Enter or 't' to change theme, '[' or ']' to cycle"))

	return b.String()
}

// renderStorage renders the backend health summary
func (m ConfigModel) renderStorage() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render("Storage"))
	b.WriteString("\n")

	if m.healthErr != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.healthErr)))
		b.WriteString("\n")
		return b.String()
	}
	if m.health == nil {
		b.WriteString("Loading...\n")
		return b.String()
	}

	h := m.health
	b.WriteString(renderLine(m.styles, "Backend:", h.Backend))
	b.WriteString(renderLine(m.styles, "Location:", h.Location))
	if h.SchemaVersion > 0 {
		b.WriteString(renderLine(m.styles, "Schema version:", strconv.Itoa(h.SchemaVersion)))
	}
	for _, f := range h.Files {
		value := fmt.Sprintf("%d valid, %d corrupted, %d %s",
			f.ValidEntries, f.CorruptedEntries, len(f.Backups), cli.Pluralize("backup", len(f.Backups)))
		b.WriteString(renderLine(m.styles, f.Name+":", value))
	}

	b.WriteString(m.styles.StatLabel.Render("Health:"))
	b.WriteString(" ")
	if h.Healthy() {
		b.WriteString(m.styles.Success.Render("✓ healthy"))
	} else {
		b.WriteString(m.styles.Warning.Render("⚠ corrupted lines found, run 'focus validate'"))
	}
	b.WriteString("\n")
	return b.String()
}

// renderThemeSelector renders the theme selection list
func (m ConfigModel) renderThemeSelector() string {
	var b strings.Builder

	b.WriteString(m.styles.StatLabel.Render("theme:"))
	b.WriteString(" ")
	b.WriteString(m.styles.StatValue.Render("Select a theme"))
	b.WriteString("\n\n")

	endIdx := min(m.themeOffset+maxVisibleThemes, len(m.themes))

	if m.themeOffset > 0 {
		b.WriteString(m.styles.HelpDesc.Render("  ↑ more themes above"))
		b.WriteString("\n")
	}

	for i := m.themeOffset; i < endIdx; i++ {
		theme := m.themes[i]
		if i == m.themeCursor {
			b.WriteString(m.styles.RecordSelected.Render("▸ " + theme))
			if theme == m.themeName {
				b.WriteString(m.styles.Success.Render(" (current)"))
			}
		} else {
			b.WriteString("  ")
			if theme == m.themeName {
				b.WriteString(m.styles.Success.Render(theme + " (current)"))
			} else {
				b.WriteString(m.styles.StatValue.Render(theme))
			}
		}
		b.WriteString("\n")
	}

	if endIdx < len(m.themes) {
		b.WriteString(m.styles.HelpDesc.Render("  ↓ more themes below"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.HelpDesc.Render("↑/↓ navigate  Enter select  Esc cancel"))

	return b.String()
}

// SetSize sets the view dimensions
func (m *ConfigModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// IsInputMode returns true while the theme selector is open
func (m ConfigModel) IsInputMode() bool {
	return m.selectingTheme
}

// loadConfig creates a command to load config and storage health
func (m ConfigModel) loadConfig() tea.Cmd {
	services := m.services
	return func() tea.Msg {
		msg := configLoadedMsg{
			config: services.Config.Get(),
			path:   services.Config.GetPath(),
			exists: services.Config.Exists(),
		}
		health, err := services.Storage.Health(context.Background())
		if err != nil {
			msg.healthErr = err
		} else {
			msg.health = &health
		}
		return msg
	}
}
