package ui

import (
	"time"

	"github.com/xolan/focus/internal/service"
)

// ThemeChangeRequestMsg is sent when a theme change is requested.
type ThemeChangeRequestMsg struct {
	ThemeName string
}

// ThemeChangedMsg is broadcast to all views when the theme changes.
type ThemeChangedMsg struct {
	ThemeName string
	Styles    Styles
}

// TickMsg is sent once per second to drive live elapsed times and the
// midnight rollover.
type TickMsg struct {
	Time time.Time
}

// SnapshotMsg carries newly published state to every view.
type SnapshotMsg struct {
	Snapshot service.Snapshot
}

// ActionMsg reports the outcome of a mutation started from a view.
// Status is shown in the status bar; Err replaces it when set.
type ActionMsg struct {
	Status string
	Err    error
}
