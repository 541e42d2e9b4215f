package ui

import (
	"slices"

	tint "github.com/lrstanley/bubbletint"
	"github.com/xolan/focus/internal/config"
)

// DefaultTheme is used when no theme is configured.
const DefaultTheme = config.DefaultTheme

// ThemeProvider holds the active bubbletint theme and derives Styles from it.
type ThemeProvider struct {
	registry *tint.Registry
}

// NewThemeProvider starts on name. An empty or unknown name selects DefaultTheme.
func NewThemeProvider(name string) *ThemeProvider {
	tints := tint.DefaultTints()
	fallback := tints[0]
	if i := slices.IndexFunc(tints, func(t tint.Tint) bool { return t.ID() == DefaultTheme }); i >= 0 {
		fallback = tints[i]
	}

	tp := &ThemeProvider{registry: tint.NewRegistry(fallback, tints...)}
	if name != "" {
		tp.registry.SetTintID(name)
	}
	return tp
}

// SetTheme switches to name and reports whether it exists.
func (tp *ThemeProvider) SetTheme(name string) bool {
	return tp.registry.SetTintID(name)
}

// Cycle moves forward through the themes when step is positive and back
// otherwise, returning the new theme's name.
func (tp *ThemeProvider) Cycle(step int) string {
	if step > 0 {
		tp.registry.NextTint()
	} else {
		tp.registry.PreviousTint()
	}
	return tp.registry.ID()
}

func (tp *ThemeProvider) CurrentName() string {
	return tp.registry.ID()
}

func (tp *ThemeProvider) CurrentDisplayName() string {
	return tp.registry.DisplayName()
}

// Styles builds the styles for the current theme.
func (tp *ThemeProvider) Styles() Styles {
	return NewStylesFromRegistry(tp.registry)
}
