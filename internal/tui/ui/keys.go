package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap contains all key bindings for the TUI
type KeyMap struct {
	// Navigation
	Up   key.Binding
	Down key.Binding

	// Tab navigation
	NextTab key.Binding
	PrevTab key.Binding
	Tab1    key.Binding
	Tab2    key.Binding
	Tab3    key.Binding
	Tab4    key.Binding
	Tab5    key.Binding

	// Actions
	Select  key.Binding
	Back    key.Binding
	Quit    key.Binding
	Help    key.Binding
	Refresh key.Binding

	// Record-specific
	New    key.Binding
	Edit   key.Binding
	Delete key.Binding

	// Clock-specific
	ClockIn    key.Binding
	ClockOut   key.Binding
	Punch      key.Binding
	ResetClock key.Binding

	// Stopwatch-specific
	Start  key.Binding
	Stop   key.Binding
	Cancel key.Binding

	// Theme cycling
	NextTheme key.Binding
	PrevTheme key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation (vim + arrows)
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),

		// Tab navigation
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next view"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev view"),
		),
		Tab1: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "dashboard"),
		),
		Tab2: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "clock"),
		),
		Tab3: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "stats"),
		),
		Tab4: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "records"),
		),
		Tab5: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "config"),
		),

		// Actions
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),

		// Record-specific
		New: key.NewBinding(
			key.WithKeys("n", "a"),
			key.WithHelp("n", "add record"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),

		// Clock-specific
		ClockIn: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "clock in"),
		),
		ClockOut: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "clock out"),
		),
		Punch: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "punch"),
		),
		ResetClock: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reset clock"),
		),

		// Stopwatch-specific
		Start: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "start"),
		),
		Stop: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "stop"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "cancel"),
		),

		// Theme cycling
		NextTheme: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next theme"),
		),
		PrevTheme: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "previous theme"),
		),
	}
}
