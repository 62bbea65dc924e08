package detail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/fleet-dispatch/internal/keys"
	"github.com/nhle/fleet-dispatch/internal/model"
	"github.com/nhle/fleet-dispatch/internal/status"
	"github.com/nhle/fleet-dispatch/internal/theme"
)

// BackMsg signals the parent to navigate back to the list view.
type BackMsg struct{}

// NotesLoadedMsg carries the notes and delivery stops for the shown load.
type NotesLoadedMsg struct {
	LoadID  string
	Notes   []model.Note
	Stops   []model.Stop
	LoadErr error
}

// AddNoteMsg asks the parent to persist a new note for the shown load.
type AddNoteMsg struct {
	LoadID string
	Text   string
}

// ChangeStatusMsg asks the parent to open the status picker.
type ChangeStatusMsg struct {
	LoadID string
}

// EditMsg asks the parent to open the edit form.
type EditMsg struct {
	LoadID string
}

// Model is the load detail view: load fields, delivery stops, and the
// note history with an inline compose box.
type Model struct {
	load     *model.Load
	notes    []model.Note
	stops    []model.Stop
	viewport viewport.Model
	noteArea textarea.Model
	noting   bool
	keys     *keys.KeyMap
	width    int
	height   int
	loading  bool
}

// New creates a new detail view model.
func New(k *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	ta := textarea.New()
	ta.Placeholder = "Type a note..."
	ta.SetHeight(3)
	ta.SetWidth(width - 4)

	return Model{
		viewport: vp,
		noteArea: ta,
		keys:     k,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command for the detail view.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetLoad switches the view to a new load and marks notes as loading.
func (m *Model) SetLoad(ld model.Load) {
	m.load = &ld
	m.notes = nil
	m.stops = nil
	m.loading = true
	m.noting = false
	m.viewport.SetContent(m.renderContent())
	m.viewport.GotoTop()
}

// RefreshLoad updates the shown load's fields in place, keeping notes.
// Used when an optimistic status change or rollback lands while the
// detail view is open.
func (m *Model) RefreshLoad(ld model.Load) {
	if m.load == nil || m.load.LoadID != ld.LoadID {
		return
	}
	m.load = &ld
	m.viewport.SetContent(m.renderContent())
}

// Composing reports whether the note editor owns keyboard focus.
func (m Model) Composing() bool {
	return m.noting
}

// LoadID returns the currently shown load, or "".
func (m Model) LoadID() string {
	if m.load == nil {
		return ""
	}
	return m.load.LoadID
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case NotesLoadedMsg:
		if m.load == nil || msg.LoadID != m.load.LoadID {
			return m, nil
		}
		m.notes = msg.Notes
		m.stops = msg.Stops
		m.loading = false
		m.viewport.SetContent(m.renderContent())
		return m, nil

	case tea.KeyMsg:
		if m.noting {
			return m.handleNoteKeys(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg { return BackMsg{} }

		case key.Matches(msg, m.keys.AddNote):
			m.noting = true
			m.noteArea.Reset()
			return m, m.noteArea.Focus()

		case key.Matches(msg, m.keys.ChangeStatus):
			if m.load != nil {
				loadID := m.load.LoadID
				return m, func() tea.Msg { return ChangeStatusMsg{LoadID: loadID} }
			}

		case key.Matches(msg, m.keys.Edit):
			if m.load != nil {
				loadID := m.load.LoadID
				return m, func() tea.Msg { return EditMsg{LoadID: loadID} }
			}
		}
	}

	// Delegate to viewport for scrolling (j/k, up/down, pgup/pgdn)
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// handleNoteKeys processes key input while composing a note.
func (m Model) handleNoteKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.noting = false
		m.noteArea.Reset()
		return m, nil

	case tea.KeyCtrlD:
		text := strings.TrimSpace(m.noteArea.Value())
		m.noting = false
		m.noteArea.Reset()
		if text == "" || m.load == nil {
			return m, nil
		}
		loadID := m.load.LoadID
		return m, func() tea.Msg {
			return AddNoteMsg{LoadID: loadID, Text: text}
		}
	}

	var cmd tea.Cmd
	m.noteArea, cmd = m.noteArea.Update(msg)
	return m, cmd
}

// View renders the detail view.
func (m Model) View() string {
	if m.load == nil {
		emptyStyle := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		return emptyStyle.Render("No load selected")
	}

	if m.noting {
		compose := lipgloss.JoinVertical(
			lipgloss.Left,
			m.noteArea.View(),
			theme.HelpStyle.Render("ctrl+d save · esc cancel"),
		)
		return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), compose)
	}

	return m.viewport.View()
}

// renderContent builds the full detail content string for the viewport.
func (m Model) renderContent() string {
	if m.load == nil {
		return ""
	}

	ld := m.load
	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	sections = append(sections, titleStyle.Render("Load "+ld.LoadID))

	statusBadge := theme.StatusStyle(ld.Status).Render(status.Label(ld.Status))
	sections = append(sections, statusBadge)
	sections = append(sections, "")

	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	valStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)

	row := func(label, value string) {
		if value == "" {
			return
		}
		sections = append(sections, fmt.Sprintf(
			"%s %s", metaStyle.Render(label), valStyle.Render(value),
		))
	}

	row("Broker:     ", ld.BrokerName)
	row("Broker ref: ", ld.BrokerLoadNumber)
	row("Type:       ", ld.LoadType)
	if ld.Rate > 0 {
		row("Rate:       ", fmt.Sprintf("$%.2f", ld.Rate))
	}
	row("Temperature:", ld.Temperature)
	if len(m.stops) > 0 {
		row("Destination:", formatStops(m.stops))
		last := m.stops[len(m.stops)-1]
		row("Delivery:   ", fmt.Sprintf(
			"%s at %s",
			model.FormatStopDate(last.Date),
			model.FormatStopTime(last.Time),
		))
	}
	if !ld.CreatedAt.IsZero() {
		row("Booked:     ", ld.CreatedAt.Format("2006-01-02 15:04"))
	}
	if !ld.UpdatedAt.IsZero() {
		row("Updated:    ", ld.UpdatedAt.Format("2006-01-02 15:04"))
	}

	sepStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
	separator := sepStyle.Render(strings.Repeat("─", min(m.width-4, 80)))
	sections = append(sections, "", separator, "")

	noteHeaderStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)

	if m.loading {
		sections = append(sections, noteHeaderStyle.Render("Notes"))
		sections = append(sections, theme.DimmedStyle.Render("Loading notes..."))
	} else {
		sections = append(sections, noteHeaderStyle.Render(
			fmt.Sprintf("Notes (%d)", len(m.notes)),
		))
		sections = append(sections, "")

		if len(m.notes) == 0 {
			sections = append(sections, theme.DimmedStyle.Italic(true).Render("No notes yet. Press n to add one."))
		}

		typeStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorBlue)
		timeStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)

		for _, n := range m.notes {
			header := fmt.Sprintf(
				"%s  %s",
				typeStyle.Render(n.Type),
				timeStyle.Render(n.CreatedAt.Format("2006-01-02 15:04")),
			)
			sections = append(sections, header)
			sections = append(sections, n.Text)
			sections = append(sections, "")
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// formatStops renders delivery stops as "City, ST" joined by arrows.
func formatStops(stops []model.Stop) string {
	parts := make([]string, 0, len(stops))
	for _, s := range stops {
		parts = append(parts, s.Place())
	}
	return strings.Join(parts, " > ")
}

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
	m.noteArea.SetWidth(width - 4)
}
