package tui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/xolan/focus/internal/config"
	"github.com/xolan/focus/internal/service"
	"github.com/xolan/focus/internal/storage/sqlite"
	"github.com/xolan/focus/internal/tui/ui"
)

// Saturday; the Monday cycle is Dec 8 - Dec 14.
var testNow = time.Date(2025, 12, 13, 14, 0, 0, 0, time.UTC)

func setupTestServices(t *testing.T) *service.Services {
	t.Helper()
	store, err := sqlite.Open(sqlite.MemoryPath, time.UTC)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}

	tmpDir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Timezone = "UTC"

	services := service.NewServicesWithStore(store, service.Options{
		Config:        cfg,
		ConfigPath:    filepath.Join(tmpDir, "config.toml"),
		TimerPath:     filepath.Join(tmpDir, "timer.json"),
		StoreLocation: sqlite.MemoryPath,
		Location:      time.UTC,
		Now:           func() time.Time { return testNow },
	})
	t.Cleanup(func() { _ = services.Close() })
	if _, err := services.Goal.Load(context.Background()); err != nil {
		t.Fatalf("failed to load goal: %v", err)
	}
	return services
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	services := setupTestServices(t)
	return NewWithClock(services, func() time.Time { return testNow })
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("expected Model, got %T", next)
	}
	return model, cmd
}

func TestNew(t *testing.T) {
	services := setupTestServices(t)
	model := New(services)

	if model.activeTab != TabDashboard {
		t.Errorf("expected initial tab to be Dashboard, got %d", model.activeTab)
	}
	if model.services == nil {
		t.Error("expected services to be set")
	}
	if model.showHelp {
		t.Error("expected showHelp to be false initially")
	}
	if model.themeProvider.CurrentName() != ui.DefaultTheme {
		t.Errorf("expected theme %q, got %q", ui.DefaultTheme, model.themeProvider.CurrentName())
	}
}

func TestNew_ConfiguredTheme(t *testing.T) {
	services := setupTestServices(t)
	if err := services.Config.Set("theme", "nord"); err != nil {
		t.Fatalf("Config.Set() error: %v", err)
	}

	model := New(services)
	if got := model.themeProvider.CurrentName(); got != "nord" {
		t.Errorf("expected theme nord, got %q", got)
	}
}

func TestNew_RejectedThemeKeepsCurrent(t *testing.T) {
	services := setupTestServices(t)
	if err := services.Config.Set("theme", "no-such-theme"); err == nil {
		t.Fatal("expected an unknown theme to be rejected")
	}

	model := New(services)
	if got := model.themeProvider.CurrentName(); got != ui.DefaultTheme {
		t.Errorf("expected %q, got %q", ui.DefaultTheme, got)
	}
	if model.statusErr {
		t.Errorf("unexpected status error %q", model.status)
	}
}

func TestInit(t *testing.T) {
	model := newTestModel(t)

	if cmd := model.Init(); cmd == nil {
		t.Error("expected Init to return a command")
	}
}

func TestUpdate_WindowSizeMsg(t *testing.T) {
	model := newTestModel(t)

	model, cmd := update(t, model, tea.WindowSizeMsg{Width: 100, Height: 50})
	if cmd != nil {
		t.Error("expected no command from a resize")
	}
	if model.width != 100 || model.height != 50 {
		t.Errorf("expected 100x50, got %dx%d", model.width, model.height)
	}
}

func TestUpdate_QuitKey(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
	}{
		{"q", runes("q")},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := newTestModel(t)
			_, cmd := update(t, model, tt.msg)
			if cmd == nil {
				t.Fatal("expected quit command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Error("expected tea.QuitMsg")
			}
		})
	}
}

func TestUpdate_HelpKey(t *testing.T) {
	model := newTestModel(t)
	model, _ = update(t, model, tea.WindowSizeMsg{Width: 100, Height: 50})

	model, _ = update(t, model, runes("?"))
	if !model.showHelp {
		t.Fatal("expected help to be shown")
	}
	if view := model.View(); !strings.Contains(view, "Keyboard Shortcuts") {
		t.Errorf("expected help overlay, got:\n%s", view)
	}

	model, _ = update(t, model, runes("?"))
	if model.showHelp {
		t.Error("expected help to be hidden after a second toggle")
	}
}

func TestUpdate_DirectTabKeys(t *testing.T) {
	tests := []struct {
		key  string
		want Tab
	}{
		{"1", TabDashboard},
		{"2", TabClock},
		{"3", TabStats},
		{"4", TabRecords},
		{"5", TabConfig},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			model := newTestModel(t)
			model.activeTab = TabConfig
			model, _ = update(t, model, runes(tt.key))
			if model.activeTab != tt.want {
				t.Errorf("key %q: expected tab %d, got %d", tt.key, tt.want, model.activeTab)
			}
		})
	}
}

func TestUpdate_TabCycling(t *testing.T) {
	tests := []struct {
		name  string
		start Tab
		msg   tea.KeyMsg
		want  Tab
	}{
		{"next", TabDashboard, tea.KeyMsg{Type: tea.KeyTab}, TabClock},
		{"next wraps", TabConfig, tea.KeyMsg{Type: tea.KeyTab}, TabDashboard},
		{"previous", TabStats, tea.KeyMsg{Type: tea.KeyShiftTab}, TabClock},
		{"previous wraps", TabDashboard, tea.KeyMsg{Type: tea.KeyShiftTab}, TabConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := newTestModel(t)
			model.activeTab = tt.start
			model, _ = update(t, model, tt.msg)
			if model.activeTab != tt.want {
				t.Errorf("expected tab %d, got %d", tt.want, model.activeTab)
			}
		})
	}
}

func TestUpdate_SwitchTabClearsStatus(t *testing.T) {
	model := newTestModel(t)
	model.status = "Refreshed"

	model, _ = update(t, model, runes("3"))
	if model.status != "" {
		t.Errorf("expected status to be cleared, got %q", model.status)
	}
}

func TestUpdate_ModalInputBlocksTabKeys(t *testing.T) {
	model := newTestModel(t)
	model, _ = update(t, model, runes("4"))
	model, _ = update(t, model, runes("n"))
	if !model.isModalInputMode() {
		t.Fatal("expected the records form to capture input")
	}

	for _, k := range []tea.KeyMsg{runes("1"), runes("q"), runes("?"), {Type: tea.KeyTab}} {
		model, _ = update(t, model, k)
		if model.activeTab != TabRecords {
			t.Errorf("key %q switched away from the form", k.String())
		}
		if model.showHelp {
			t.Errorf("key %q opened help in input mode", k.String())
		}
		if !model.isModalInputMode() {
			t.Errorf("key %q closed the form", k.String())
		}
	}

	// ctrl+c always quits
	_, cmd := update(t, model, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected ctrl+c to quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestUpdate_ActionMsg(t *testing.T) {
	tests := []struct {
		name    string
		msg     ui.ActionMsg
		want    string
		wantErr bool
	}{
		{"status", ui.ActionMsg{Status: "Logged 45 minutes"}, "Logged 45 minutes", false},
		{"error", ui.ActionMsg{Err: errors.New("boom")}, "Error: boom", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := newTestModel(t)
			model, _ = update(t, model, tea.WindowSizeMsg{Width: 120, Height: 40})
			model, _ = update(t, model, tt.msg)

			if model.status != tt.want {
				t.Errorf("status = %q, want %q", model.status, tt.want)
			}
			if model.statusErr != tt.wantErr {
				t.Errorf("statusErr = %v, want %v", model.statusErr, tt.wantErr)
			}
			if view := model.View(); !strings.Contains(view, tt.want) {
				t.Errorf("status bar should show %q", tt.want)
			}
		})
	}
}

func TestUpdate_ActionRefreshesViews(t *testing.T) {
	model := newTestModel(t)
	model, _ = update(t, model, tea.WindowSizeMsg{Width: 120, Height: 40})

	if _, err := model.services.Record.AddManual(context.Background(), 90, "writing"); err != nil {
		t.Fatalf("AddManual() error: %v", err)
	}
	model, _ = update(t, model, ui.ActionMsg{Status: "Logged 1 hour 30 minutes"})

	if view := model.View(); !strings.Contains(view, "1h 30m / 40h (4%)") {
		t.Errorf("dashboard should show the new progress, got:\n%s", view)
	}
}

func TestUpdate_SnapshotMsg(t *testing.T) {
	model := newTestModel(t)
	model, _ = update(t, model, tea.WindowSizeMsg{Width: 120, Height: 40})

	if _, err := model.services.Record.AddManual(context.Background(), 45, ""); err != nil {
		t.Fatalf("AddManual() error: %v", err)
	}
	model, _ = update(t, model, ui.SnapshotMsg{Snapshot: model.services.State.Snapshot()})

	if view := model.View(); !strings.Contains(view, "45m / 40h") {
		t.Errorf("dashboard should show the published snapshot, got:\n%s", view)
	}
}

func TestUpdate_ThemeChangeRequest(t *testing.T) {
	model := newTestModel(t)

	model, cmd := update(t, model, ui.ThemeChangeRequestMsg{ThemeName: "nord"})
	if got := model.themeProvider.CurrentName(); got != "nord" {
		t.Errorf("expected theme nord, got %q", got)
	}
	if cmd == nil {
		t.Fatal("expected a command saving the theme")
	}

	msg, ok := cmd().(ui.ActionMsg)
	if !ok {
		t.Fatalf("expected ui.ActionMsg, got %T", cmd())
	}
	if msg.Err != nil {
		t.Fatalf("saving the theme failed: %v", msg.Err)
	}
	if msg.Status != "Theme set to nord" {
		t.Errorf("status = %q, want %q", msg.Status, "Theme set to nord")
	}
	if got := model.services.Config.Get().Theme; got != "nord" {
		t.Errorf("saved theme = %q, want nord", got)
	}
}

func TestRollover(t *testing.T) {
	model := newTestModel(t)

	if msg := model.rollover(testNow.Add(time.Hour))(); msg != nil {
		t.Errorf("expected no refresh on the same day, got %T", msg)
	}

	msg := model.rollover(testNow.Add(12 * time.Hour))()
	snap, ok := msg.(ui.SnapshotMsg)
	if !ok {
		t.Fatalf("expected ui.SnapshotMsg after midnight, got %T", msg)
	}
	if snap.Snapshot.RefreshedAt.IsZero() {
		t.Error("expected a refreshed snapshot")
	}
}

func TestUpdate_TickMsg(t *testing.T) {
	model := newTestModel(t)

	_, cmd := update(t, model, ui.TickMsg{Time: testNow})
	if cmd == nil {
		t.Error("expected the tick to reschedule itself")
	}
}

func TestView_Loading(t *testing.T) {
	model := newTestModel(t)

	if view := model.View(); view != "Loading..." {
		t.Errorf("expected Loading..., got %q", view)
	}
}

func TestView_AllTabs(t *testing.T) {
	tests := []struct {
		tab  Tab
		want string
	}{
		{TabDashboard, "Weekly Focus"},
		{TabClock, "Not clocked in today"},
		{TabStats, "Statistics for Week 50"},
		{TabRecords, "No records this week"},
		{TabConfig, "Configuration"},
	}

	for _, tt := range tests {
		t.Run(tabNames[tt.tab], func(t *testing.T) {
			model := newTestModel(t)
			model, _ = update(t, model, tea.WindowSizeMsg{Width: 120, Height: 40})
			model.activeTab = tt.tab

			view := model.View()
			for _, name := range tabNames {
				if !strings.Contains(view, name) {
					t.Errorf("expected tab bar to contain %q", name)
				}
			}
			if !strings.Contains(view, tt.want) {
				t.Errorf("expected view to contain %q, got:\n%s", tt.want, view)
			}
		})
	}
}

func TestRenderStatusBar(t *testing.T) {
	tests := []struct {
		tab  Tab
		want []string
	}{
		{TabDashboard, []string{"punch", "views", "quit"}},
		{TabClock, []string{"in/out", "start/stop"}},
		{TabRecords, []string{"add", "edit", "delete"}},
		{TabConfig, []string{"themes", "cycle"}},
	}

	for _, tt := range tests {
		t.Run(tabNames[tt.tab], func(t *testing.T) {
			model := newTestModel(t)
			model.width = 120
			model.activeTab = tt.tab

			bar := model.renderStatusBar()
			for _, want := range tt.want {
				if !strings.Contains(bar, want) {
					t.Errorf("expected status bar to contain %q, got %q", want, bar)
				}
			}
		})
	}
}

func TestRenderStatusBar_InputMode(t *testing.T) {
	model := newTestModel(t)
	model.width = 120
	model, _ = update(t, model, runes("4"))
	model, _ = update(t, model, runes("n"))

	bar := model.renderStatusBar()
	for _, want := range []string{"switch field", "confirm", "cancel"} {
		if !strings.Contains(bar, want) {
			t.Errorf("expected status bar to contain %q, got %q", want, bar)
		}
	}
	if strings.Contains(bar, "quit") {
		t.Error("input mode should not advertise quit")
	}
}

func TestTabNames(t *testing.T) {
	if len(tabNames) != int(TabConfig)+1 {
		t.Errorf("expected %d tab names, got %d", int(TabConfig)+1, len(tabNames))
	}
}
