package loadlist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/fleet-dispatch/internal/keys"
	"github.com/nhle/fleet-dispatch/internal/shadow"
	"github.com/nhle/fleet-dispatch/internal/status"
	"github.com/nhle/fleet-dispatch/internal/theme"
)

// SelectedLoadMsg is sent when the user opens a load's detail view.
type SelectedLoadMsg struct {
	LoadID string
}

// ChangeStatusMsg is sent when the user asks to change a load's status.
type ChangeStatusMsg struct {
	LoadID string
}

// EditLoadMsg is sent when the user asks to edit a load's fields.
type EditLoadMsg struct {
	LoadID string
}

// statusFilters are the Tab-cycled filter values; "" means all.
var statusFilters = append([]string{""}, status.Canonical...)

// Model is the load list view: a filterable, searchable list over the
// shadow copy of the loads table.
type Model struct {
	list        list.Model
	loads       *shadow.List
	keys        *keys.KeyMap
	filterIndex int
	searchMode  bool
	searchInput textinput.Model
	query       string
	width       int
	height      int
}

// New creates a new load list model over the given shadow list.
func New(loads *shadow.List, k *keys.KeyMap, width, height int) Model {
	delegate := ItemDelegate{}
	l := list.New([]list.Item{}, delegate, width, height-3)
	l.Title = "Loads"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "search loads..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		list:        l,
		loads:       loads,
		keys:        k,
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// Init reloads the list contents.
func (m Model) Init() tea.Cmd {
	return nil
}

// Reload re-derives the visible items from the shadow list. Call it
// after any mutation or refresh.
func (m *Model) Reload() {
	filtered := m.loads.Filter(statusFilters[m.filterIndex], m.query)
	items := make([]list.Item, len(filtered))
	for i, ld := range filtered {
		items[i] = LoadItem{Load: ld}
	}
	m.list.SetItems(items)
}

// Searching reports whether the search input owns keyboard focus.
func (m Model) Searching() bool {
	return m.searchMode
}

// SelectedLoadID returns the load under the cursor, or "".
func (m Model) SelectedLoadID() string {
	item, ok := m.list.SelectedItem().(LoadItem)
	if !ok {
		return ""
	}
	return item.Load.LoadID
}

// Update handles messages for the load list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys processes key input while in search mode.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.query = m.searchInput.Value()
		m.Reload()
		return m, nil

	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		m.query = ""
		m.Reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleNormalKeys processes key input in normal (non-search) mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		if id := m.SelectedLoadID(); id != "" {
			return m, func() tea.Msg { return SelectedLoadMsg{LoadID: id} }
		}
		return m, nil

	case key.Matches(msg, m.keys.ChangeStatus):
		if id := m.SelectedLoadID(); id != "" {
			return m, func() tea.Msg { return ChangeStatusMsg{LoadID: id} }
		}
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		if id := m.SelectedLoadID(); id != "" {
			return m, func() tea.Msg { return EditLoadMsg{LoadID: id} }
		}
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.CycleFilter):
		m.filterIndex = (m.filterIndex + 1) % len(statusFilters)
		m.Reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the load list with its filter bar and, when the counts
// disagree with the total, a data-integrity banner.
func (m Model) View() string {
	var sections []string

	counts := m.loads.Counts()
	if counts.Inconsistent {
		sections = append(sections, theme.BannerWarnStyle.Render(
			"Data integrity: status counts do not add up. Press 4 for diagnostics.",
		))
	}

	sections = append(sections, m.renderFilterBar(counts))

	if m.searchMode {
		searchBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View())
		sections = append(sections, searchBar)
	}

	if len(m.list.Items()) == 0 {
		sections = append(sections, m.renderEmptyState())
	} else {
		sections = append(sections, m.list.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderFilterBar shows each status filter with its load count,
// highlighting the active one.
func (m Model) renderFilterBar(counts shadow.Counts) string {
	var parts []string
	for i, f := range statusFilters {
		label := "All"
		count := counts.All
		if f != "" {
			label = status.Label(f)
			count = counts.ByStatus[f]
		}
		badge := fmt.Sprintf("%s (%d)", label, count)

		if i == m.filterIndex {
			parts = append(parts, theme.StatusStyle(f).Underline(true).Render(badge))
		} else {
			parts = append(parts, theme.DimmedStyle.Padding(0, 1).Render(badge))
		}
	}
	return strings.Join(parts, " ")
}

// renderEmptyState shows guidance text when no loads match.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height - 3).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.query != "" || statusFilters[m.filterIndex] != "" {
		return style.Render("No matching loads.\nTry adjusting your filters.")
	}
	return style.Render("No loads yet.\nPress r to refresh.")
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-3)
	m.searchInput.Width = width - 4
}
