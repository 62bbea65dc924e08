// Package diagnostics renders the status taxonomy inspector: every raw
// status value in the data set, what it normalizes to, and whether the
// per-status counts reconcile with the total. It also hosts the legacy
// status migration trigger.
package diagnostics

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/fleet-dispatch/internal/keys"
	"github.com/nhle/fleet-dispatch/internal/shadow"
	"github.com/nhle/fleet-dispatch/internal/status"
	"github.com/nhle/fleet-dispatch/internal/theme"
)

// MigrateRequestedMsg asks the parent to run the legacy status migration.
type MigrateRequestedMsg struct{}

// MigrationDoneMsg reports the outcome of a migration run.
type MigrationDoneMsg struct {
	Count int
	Err   error
}

// rawEntry is one row of the raw-value table.
type rawEntry struct {
	raw        string
	normalized string
	count      int
}

// Model is the diagnostics view component.
type Model struct {
	loads     *shadow.List
	keys      *keys.KeyMap
	raw       []rawEntry
	counts    shadow.Counts
	migrating bool
	lastMsg   string
	width     int
	height    int
}

// New creates a diagnostics model over the given shadow list.
func New(loads *shadow.List, k *keys.KeyMap, width, height int) Model {
	return Model{loads: loads, keys: k, width: width, height: height}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Reload re-derives the raw and normalized tallies from the shadow list.
func (m *Model) Reload() {
	m.counts = m.loads.Counts()

	tally := make(map[string]int)
	for _, ld := range m.loads.Loads() {
		tally[ld.Status]++
	}

	m.raw = m.raw[:0]
	for raw, count := range tally {
		m.raw = append(m.raw, rawEntry{
			raw:        raw,
			normalized: status.Normalize(raw),
			count:      count,
		})
	}
	sort.Slice(m.raw, func(i, j int) bool {
		if m.raw[i].count != m.raw[j].count {
			return m.raw[i].count > m.raw[j].count
		}
		return m.raw[i].raw < m.raw[j].raw
	})
}

// Update handles messages for the diagnostics view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MigrationDoneMsg:
		m.migrating = false
		if msg.Err != nil {
			m.lastMsg = "Migration failed: " + msg.Err.Error()
		} else if msg.Count == 0 {
			m.lastMsg = "No legacy Active loads found."
		} else {
			m.lastMsg = fmt.Sprintf("Migrated %d load(s) from Active to In Transit.", msg.Count)
		}
		m.Reload()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Migrate) && !m.migrating {
			m.migrating = true
			m.lastMsg = ""
			return m, func() tea.Msg { return MigrateRequestedMsg{} }
		}
	}

	return m, nil
}

// View renders the diagnostics panel.
func (m Model) View() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)

	var sections []string
	sections = append(sections, headerStyle.Render("Status Diagnostics"))
	sections = append(sections, "")

	// Raw value table.
	sections = append(sections, headerStyle.Render("Raw values"))
	if len(m.raw) == 0 {
		sections = append(sections, theme.DimmedStyle.Render("no loads"))
	}
	for _, e := range m.raw {
		rawLabel := fmt.Sprintf("%-20q", e.raw)
		norm := e.normalized
		line := fmt.Sprintf("%s -> %s (%d)", rawLabel, norm, e.count)
		if !status.IsCanonical(norm) {
			line = lipgloss.NewStyle().Foreground(theme.ColorOrange).Render(line + "  unrecognized")
		}
		sections = append(sections, line)
	}
	sections = append(sections, "")

	// Normalized tallies.
	sections = append(sections, headerStyle.Render("Normalized counts"))
	for _, s := range status.Canonical {
		badge := theme.StatusStyle(s).Render(status.Label(s))
		sections = append(sections, fmt.Sprintf("%s %d", badge, m.counts.ByStatus[s]))
	}
	if m.counts.Unrecognized > 0 {
		sections = append(sections, fmt.Sprintf("Unrecognized: %d", m.counts.Unrecognized))
	}
	sections = append(sections, fmt.Sprintf("Total: %d", m.counts.All))
	sections = append(sections, "")

	// Verdict.
	if m.counts.Inconsistent {
		sections = append(sections, theme.BannerWarnStyle.Render(
			"INCONSISTENT: per-status counts do not add up to the total.",
		))
	} else {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.ColorGreen).Bold(true).
			Render("Consistent: counts reconcile with the total."))
	}
	sections = append(sections, "")

	if m.migrating {
		sections = append(sections, theme.DimmedStyle.Render("Migrating legacy statuses..."))
	} else {
		sections = append(sections, theme.HelpStyle.Render("m: migrate legacy Active loads to In Transit"))
	}
	if m.lastMsg != "" {
		sections = append(sections, m.lastMsg)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
