// Package statuspicker implements the modal status selector for a load.
// Selecting a status emits a change request immediately; the caller
// applies it optimistically and resolves the remote write afterwards.
package statuspicker

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/fleet-dispatch/internal/keys"
	"github.com/nhle/fleet-dispatch/internal/status"
	"github.com/nhle/fleet-dispatch/internal/theme"
)

// ChangeRequestedMsg is sent when the user picks a status different
// from the load's current one.
type ChangeRequestedMsg struct {
	LoadID    string
	NewStatus string
}

// ClosedMsg is sent when the picker closes without requesting a change,
// either cancelled or re-selecting the current status.
type ClosedMsg struct{}

// ResultMsg reports the outcome of the remote write for a previously
// requested change. Previous and Seq echo the optimistic edit's
// bookkeeping so the caller can match the result to the right edit.
type ResultMsg struct {
	LoadID    string
	NewStatus string
	Previous  string
	Seq       uint64
	Err       error
}

// Model is the status picker component.
type Model struct {
	loadID  string
	current string
	options []status.Option
	cursor  int
	keys    *keys.KeyMap
}

// New creates a picker for the given load. The cursor starts on the
// load's current status when it is canonical.
func New(loadID, currentStatus string, k *keys.KeyMap) Model {
	opts := status.Options()
	cursor := 0
	current := status.Normalize(currentStatus)
	for i, o := range opts {
		if o.Value == current {
			cursor = i
			break
		}
	}
	return Model{
		loadID:  loadID,
		current: current,
		options: opts,
		cursor:  cursor,
		keys:    k,
	}
}

// Update handles key input for the picker.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.Select):
		picked := m.options[m.cursor].Value
		if picked == m.current {
			// Re-selecting the current status is a no-op.
			return m, func() tea.Msg { return ClosedMsg{} }
		}
		loadID := m.loadID
		return m, func() tea.Msg {
			return ChangeRequestedMsg{LoadID: loadID, NewStatus: picked}
		}

	case key.Matches(keyMsg, m.keys.Back):
		return m, func() tea.Msg { return ClosedMsg{} }
	}

	return m, nil
}

// View renders the picker panel.
func (m Model) View() string {
	title := theme.HeaderStyle.Render("Set status: " + m.loadID)

	lines := []string{title, ""}
	for i, o := range m.options {
		label := theme.StatusStyle(o.Value).Render(o.Label)
		marker := "  "
		if o.Value == m.current {
			marker = "· "
		}
		line := marker + label
		if i == m.cursor {
			line = theme.SelectedItemStyle.Render(line)
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		lines = append(lines, line)
	}

	lines = append(lines, "", theme.HelpStyle.Render("enter select · esc cancel"))

	return theme.DetailPanelStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left, lines...),
	)
}
