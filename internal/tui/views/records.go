package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xolan/focus/internal/cli"
	"github.com/xolan/focus/internal/record"
	"github.com/xolan/focus/internal/service"
	"github.com/xolan/focus/internal/tui/ui"
)

// recordMode represents the current mode of the records view
type recordMode int

const (
	recordModeNormal recordMode = iota
	recordModeAdd
	recordModeEdit
	recordModeDelete
)

// RecordsModel lists this week's records and edits them
type RecordsModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	// UI state
	width   int
	height  int
	cursor  int
	records []record.Record
	snap    service.Snapshot
	err     error

	// Input mode state
	mode          recordMode
	durationInput textinput.Model
	notesInput    textinput.Model
	focusedInput  int    // 0 = duration, 1 = notes
	editID        string // ID of the record being edited
}

// NewRecordsModel creates a new records view model
func NewRecordsModel(services *service.Services, styles ui.Styles, keys ui.KeyMap) RecordsModel {
	durationInput := textinput.New()
	durationInput.Placeholder = "Duration (e.g., 1h30m, 45m, 2h)..."
	durationInput.CharLimit = 20
	durationInput.Width = 20

	notesInput := textinput.New()
	notesInput.Placeholder = "Notes (optional)..."
	notesInput.CharLimit = 200
	notesInput.Width = 50

	m := RecordsModel{
		services:      services,
		styles:        styles,
		keys:          keys,
		durationInput: durationInput,
		notesInput:    notesInput,
	}
	m.load(services.State.Snapshot())
	return m
}

// Init implements tea.Model
func (m RecordsModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m RecordsModel) Update(msg tea.Msg) (RecordsModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case recordModeAdd, recordModeEdit:
			return m.handleInputMode(msg)
		case recordModeDelete:
			return m.handleDeleteMode(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.records)-1 {
				m.cursor++
			}
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			return m, refresh(m.services)
		case key.Matches(msg, m.keys.New):
			m.mode = recordModeAdd
			m.err = nil
			m.durationInput.SetValue("")
			m.notesInput.SetValue("")
			return m, m.focusInput(0)
		case key.Matches(msg, m.keys.Edit):
			if r, ok := m.selected(); ok {
				m.mode = recordModeEdit
				m.err = nil
				m.editID = r.ID
				m.durationInput.SetValue(inputDuration(r.DurationMinutes))
				m.notesInput.SetValue(r.Notes)
				return m, m.focusInput(0)
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if _, ok := m.selected(); ok {
				m.mode = recordModeDelete
			}
			return m, nil
		}

	case ui.SnapshotMsg:
		m.load(msg.Snapshot)
		return m, nil

	case ui.ActionMsg:
		// Keep the form open when the save failed
		if msg.Err == nil {
			m.mode = recordModeNormal
		}
		return m, nil

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
		return m, nil
	}

	if m.mode == recordModeAdd || m.mode == recordModeEdit {
		if m.focusedInput == 0 {
			m.durationInput, cmd = m.durationInput.Update(msg)
		} else {
			m.notesInput, cmd = m.notesInput.Update(msg)
		}
		return m, cmd
	}

	return m, nil
}

func (m *RecordsModel) load(snap service.Snapshot) {
	m.snap = snap
	m.records = weekRecords(m.services)
	if m.cursor >= len(m.records) {
		m.cursor = max(0, len(m.records)-1)
	}
}

func (m RecordsModel) selected() (record.Record, bool) {
	if m.cursor < len(m.records) {
		return m.records[m.cursor], true
	}
	return record.Record{}, false
}

func (m *RecordsModel) focusInput(i int) tea.Cmd {
	m.focusedInput = i
	if i == 0 {
		m.notesInput.Blur()
		m.durationInput.Focus()
	} else {
		m.durationInput.Blur()
		m.notesInput.Focus()
	}
	return textinput.Blink
}

// handleInputMode handles key events when in add/edit mode
func (m RecordsModel) handleInputMode(msg tea.KeyMsg) (RecordsModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		minutes, err := record.ParseDuration(strings.TrimSpace(m.durationInput.Value()))
		if err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		notes := strings.TrimSpace(m.notesInput.Value())
		if m.mode == recordModeAdd {
			return m, m.addRecord(minutes, notes)
		}
		return m, m.editRecord(m.editID, minutes, notes)
	case key.Matches(msg, m.keys.Back):
		m.mode = recordModeNormal
		m.err = nil
		m.durationInput.Blur()
		m.notesInput.Blur()
		return m, nil
	case msg.String() == "tab":
		return m, m.focusInput(1 - m.focusedInput)
	}

	var cmd tea.Cmd
	if m.focusedInput == 0 {
		m.durationInput, cmd = m.durationInput.Update(msg)
	} else {
		m.notesInput, cmd = m.notesInput.Update(msg)
	}
	return m, cmd
}

// handleDeleteMode handles key events when in delete confirmation mode
func (m RecordsModel) handleDeleteMode(msg tea.KeyMsg) (RecordsModel, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if r, ok := m.selected(); ok {
			m.mode = recordModeNormal
			return m, m.deleteRecord(r)
		}
	case "n", "N", "esc":
		m.mode = recordModeNormal
	}
	return m, nil
}

// View implements tea.Model
func (m RecordsModel) View() string {
	switch m.mode {
	case recordModeAdd:
		return m.renderForm("New Record")
	case recordModeEdit:
		return m.renderForm("Edit Record")
	case recordModeDelete:
		return m.renderDeleteConfirm()
	}

	var b strings.Builder
	b.WriteString(m.styles.ViewTitle.Render("Records for " + cli.FormatCycle(m.snap.Cycle)))
	b.WriteString("\n")
	b.WriteString(renderDegraded(m.snap, m.styles))

	if len(m.records) == 0 {
		b.WriteString(m.styles.StatLabel.Render("No records this week"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.HelpDesc.Render("Press 'n' to add a record"))
		return b.String()
	}

	// Group by day; numbering runs across days like `focus week`
	offset := 0
	for _, g := range m.services.Record.WeekByDay() {
		b.WriteString(m.styles.DayHeader.Render(fmt.Sprintf("%s  (%s)", g.Date.Format("Mon, Jan 2"), cli.FormatDuration(g.Minutes))))
		b.WriteString("\n")
		b.WriteString(RenderRecordList(g.Records, m.styles, RecordRenderOptions{
			Width:  m.width,
			Cursor: m.cursor - offset,
			Offset: offset,
		}))
		offset += len(g.Records)
	}

	b.WriteString(strings.Repeat("─", min(50, max(m.width, 20))))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Total: %s (%d %s)",
		cli.FormatProgress(m.snap.Progress()),
		len(m.records),
		cli.Pluralize("record", len(m.records)))

	return b.String()
}

// renderForm renders the add/edit form fields
func (m RecordsModel) renderForm(title string) string {
	var b strings.Builder
	b.WriteString(m.styles.ViewTitle.Render(title))
	b.WriteString("\n\n")

	durLabel := "Duration:"
	if m.focusedInput == 0 {
		durLabel = "▸ Duration:"
	}
	b.WriteString(m.styles.StatLabel.Render(durLabel))
	b.WriteString("\n")
	b.WriteString(m.durationInput.View())
	b.WriteString("\n\n")

	notesLabel := "Notes:"
	if m.focusedInput == 1 {
		notesLabel = "▸ Notes:"
	}
	b.WriteString(m.styles.StatLabel.Render(notesLabel))
	b.WriteString("\n")
	b.WriteString(m.notesInput.View())
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	}

	b.WriteString(m.styles.HelpDesc.Render("Tab to switch fields, Enter to save, Esc to cancel"))
	return b.String()
}

// renderDeleteConfirm renders the delete confirmation dialog
func (m RecordsModel) renderDeleteConfirm() string {
	var b strings.Builder
	b.WriteString(m.styles.ViewTitle.Render("Delete Record"))
	b.WriteString("\n\n")

	if r, ok := m.selected(); ok {
		b.WriteString(m.styles.Warning.Render("Are you sure you want to delete this record?"))
		b.WriteString("\n\n")
		b.WriteString(renderLine(m.styles, "Date:", r.Date.Format("Mon, Jan 2")))
		b.WriteString(renderLine(m.styles, "Kind:", recordKind(r)))
		b.WriteString(renderLine(m.styles, "Duration:", cli.FormatDuration(r.DurationMinutes)))
		if r.Notes != "" {
			b.WriteString(renderLine(m.styles, "Notes:", r.Notes))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.styles.HelpDesc.Render("Press Y to confirm, N or Esc to cancel"))
	return b.String()
}

// SetSize sets the view dimensions
func (m *RecordsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// IsInputMode returns true when the view is capturing keyboard input
func (m RecordsModel) IsInputMode() bool {
	return m.mode != recordModeNormal
}

func (m RecordsModel) addRecord(minutes int, notes string) tea.Cmd {
	services := m.services
	return action(func(ctx context.Context) (string, error) {
		r, err := services.Record.AddManual(ctx, minutes, notes)
		if err != nil {
			return "", err
		}
		return "Logged " + r.DisplayTime(), nil
	})
}

func (m RecordsModel) editRecord(id string, minutes int, notes string) tea.Cmd {
	services := m.services
	return action(func(ctx context.Context) (string, error) {
		r, err := services.Record.Edit(ctx, id, service.EditInput{Minutes: &minutes, Notes: &notes})
		if err != nil {
			return "", err
		}
		return "Updated: " + cli.FormatRecord(r), nil
	})
}

func (m RecordsModel) deleteRecord(r record.Record) tea.Cmd {
	services := m.services
	return action(func(ctx context.Context) (string, error) {
		if err := services.Record.Delete(ctx, r.ID); err != nil {
			return "", err
		}
		return "Deleted: " + cli.FormatRecord(r), nil
	})
}
