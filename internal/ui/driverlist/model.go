// Package driverlist renders the driver availability table.
package driverlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/fleet-dispatch/internal/keys"
	"github.com/nhle/fleet-dispatch/internal/model"
	"github.com/nhle/fleet-dispatch/internal/theme"
)

// Model is the driver list view component.
type Model struct {
	table         table.Model
	drivers       []model.Driver
	availableOnly bool
	keys          *keys.KeyMap
	width         int
	height        int
}

// New creates a new driver list model.
func New(k *keys.KeyMap, width, height int) Model {
	t := table.New(
		table.WithColumns(columns(width)),
		table.WithFocused(true),
		table.WithHeight(height-4),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Bold(true).
		Foreground(theme.ColorWhite).
		BorderForeground(theme.ColorBorder)
	styles.Selected = styles.Selected.
		Bold(true).
		Foreground(theme.ColorBlue)
	t.SetStyles(styles)

	return Model{
		table:  t,
		keys:   k,
		width:  width,
		height: height,
	}
}

func columns(width int) []table.Column {
	name := width / 4
	if name < 16 {
		name = 16
	}
	return []table.Column{
		{Title: "Driver", Width: name},
		{Title: "Status", Width: 10},
		{Title: "Truck", Width: 8},
		{Title: "Location", Width: 20},
		{Title: "Available", Width: 16},
		{Title: "Phone", Width: 14},
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetDrivers replaces the table contents after a refresh.
func (m *Model) SetDrivers(drivers []model.Driver) {
	m.drivers = drivers
	m.rebuildRows()
}

// rebuildRows re-derives the visible table rows.
func (m *Model) rebuildRows() {
	var rows []table.Row
	for _, d := range m.drivers {
		if m.availableOnly && !d.Available() {
			continue
		}
		rows = append(rows, table.Row{
			d.Name,
			d.Status,
			d.TruckNumber,
			formatLocation(d),
			formatAvailability(d),
			d.Phone,
		})
	}
	m.table.SetRows(rows)
}

// formatLocation renders "City, ST" with graceful fallbacks for
// partially filled records.
func formatLocation(d model.Driver) string {
	switch {
	case d.CurrentLocationCity != "" && d.CurrentLocationState != "":
		return d.CurrentLocationCity + ", " + d.CurrentLocationState
	case d.CurrentLocationCity != "":
		return d.CurrentLocationCity
	case d.CurrentLocationState != "":
		return d.CurrentLocationState
	default:
		return "-"
	}
}

// formatAvailability renders when the driver is next free.
func formatAvailability(d model.Driver) string {
	if d.Available() {
		return "now"
	}
	switch {
	case d.AvailableDate != "" && d.AvailableTime != "":
		return d.AvailableDate + " " + d.AvailableTime
	case d.AvailableDate != "":
		return d.AvailableDate
	default:
		return "-"
	}
}

// Update handles messages for the driver list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		// Tab toggles between all drivers and only the available ones.
		if key.Matches(keyMsg, m.keys.CycleFilter) {
			m.availableOnly = !m.availableOnly
			m.rebuildRows()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the driver table with its availability summary line.
func (m Model) View() string {
	available := 0
	for _, d := range m.drivers {
		if d.Available() {
			available++
		}
	}

	summary := fmt.Sprintf("%d drivers, %d available", len(m.drivers), available)
	if m.availableOnly {
		summary += "  [showing available only, tab to toggle]"
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		theme.HeaderStyle.Render("Drivers"),
		theme.DimmedStyle.Padding(0, 1).Render(summary),
		m.table.View(),
	)
}

// SetSize updates the table dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetColumns(columns(width))
	m.table.SetHeight(height - 4)
}
