// Package dashboard renders the operational overview: headline metric
// cards, a booking-trend sparkline, and the recent activity feed.
package dashboard

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/fleet-dispatch/internal/model"
	"github.com/nhle/fleet-dispatch/internal/status"
	"github.com/nhle/fleet-dispatch/internal/theme"
)

// sparkRunes are the bar glyphs used for the trend sparkline, shortest
// to tallest.
var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// Model is the dashboard view component.
type Model struct {
	metrics  model.DashboardMetrics
	activity []model.Activity
	width    int
	height   int
	loaded   bool
}

// New creates a new dashboard model.
func New(width, height int) Model {
	return Model{width: width, height: height}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetData replaces the dashboard contents after a refresh.
func (m *Model) SetData(metrics model.DashboardMetrics, activity []model.Activity) {
	m.metrics = metrics
	m.activity = activity
	m.loaded = true
}

// Update handles messages for the dashboard view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if !m.loaded {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("Loading dashboard...")
	}

	cards := lipgloss.JoinHorizontal(
		lipgloss.Top,
		metricCard("Active Loads", m.metrics.ActiveLoads, theme.ColorYellow),
		metricCard("Available Drivers", m.metrics.AvailableDrivers, theme.ColorGreen),
		metricCard("Pickups Today", m.metrics.TodayPickups, theme.ColorBlue),
		metricCard("Deliveries Today", m.metrics.TodayDeliveries, theme.ColorMagenta),
	)

	sections := []string{
		cards,
		"",
		m.renderTrend(),
		"",
		m.renderActivity(),
	}

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// metricCard renders one bordered headline number.
func metricCard(label string, value int, color lipgloss.AdaptiveColor) string {
	valueStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(color)

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		valueStyle.Render(fmt.Sprintf("%d", value)),
		theme.DimmedStyle.Render(label),
	)

	return theme.BorderStyle.
		Padding(0, 2).
		MarginRight(1).
		Render(content)
}

// renderTrend draws the 7-day booking sparkline with its date range.
func (m Model) renderTrend() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)

	trend := m.metrics.Trend
	if len(trend) == 0 {
		return headerStyle.Render("Bookings (7d)") + "\n" +
			theme.DimmedStyle.Render("no data")
	}

	max := 0
	for _, p := range trend {
		if p.Count > max {
			max = p.Count
		}
	}

	var bars strings.Builder
	for _, p := range trend {
		idx := 0
		if max > 0 {
			idx = p.Count * (len(sparkRunes) - 1) / max
		}
		bars.WriteRune(sparkRunes[idx])
	}

	rangeLabel := theme.DimmedStyle.Render(
		fmt.Sprintf("  %s to %s", trend[0].Date, trend[len(trend)-1].Date),
	)

	spark := lipgloss.NewStyle().Foreground(theme.ColorBlue).Render(bars.String())

	return headerStyle.Render("Bookings (7d)") + "\n" + spark + rangeLabel
}

// renderActivity draws the recent activity feed.
func (m Model) renderActivity() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)

	lines := []string{headerStyle.Render("Recent Activity")}

	if len(m.activity) == 0 {
		lines = append(lines, theme.DimmedStyle.Render("no recent activity"))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, a := range m.activity {
		lines = append(lines, formatActivity(a))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// formatActivity renders one activity feed line.
func formatActivity(a model.Activity) string {
	when := theme.DimmedStyle.Render(relativeTime(a.CreatedAt))

	switch a.Type {
	case model.ActivityStatusChange:
		text := fmt.Sprintf(
			"Load %s changed from %s to %s",
			a.LoadID,
			status.Label(a.PreviousStatus),
			status.Label(a.NewStatus),
		)
		if a.ChangedBy != "" {
			text += " by " + a.ChangedBy
		}
		return fmt.Sprintf("%s  %s", text, when)

	case model.ActivityNote:
		text := a.NoteText
		if r := []rune(text); len(r) > 60 {
			text = string(r[:57]) + "..."
		}
		return fmt.Sprintf("Note on %s: %s  %s", a.LoadID, text, when)

	default:
		return fmt.Sprintf("Load %s activity  %s", a.LoadID, when)
	}
}

// relativeTime returns a human-friendly relative time string.
func relativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// SetSize updates the dashboard dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
