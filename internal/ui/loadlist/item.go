package loadlist

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/fleet-dispatch/internal/model"
	"github.com/nhle/fleet-dispatch/internal/status"
	"github.com/nhle/fleet-dispatch/internal/theme"
)

// LoadItem wraps a model.Load so it can be used in a bubbles/list.
type LoadItem struct {
	Load model.Load
}

// FilterValue returns the string used for fuzzy filtering.
func (i LoadItem) FilterValue() string { return i.Load.LoadID }

// ItemDelegate implements list.ItemDelegate for rendering load rows.
type ItemDelegate struct{}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single load row.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	li, ok := item.(LoadItem)
	if !ok {
		return
	}
	ld := li.Load

	statusBadge := theme.StatusStyle(ld.Status).Render(status.Label(ld.Status))

	broker := ld.BrokerName
	if ld.BrokerLoadNumber != "" {
		broker = fmt.Sprintf("%s #%s", broker, ld.BrokerLoadNumber)
	}

	rateStr := ""
	if ld.Rate > 0 {
		rateStr = lipgloss.NewStyle().
			Foreground(theme.ColorGreen).
			Render(fmt.Sprintf(" $%.2f", ld.Rate))
	}

	timeStr := theme.DimmedStyle.Render("  " + relativeTime(ld.CreatedAt))

	line := fmt.Sprintf("%s %s %s%s%s", ld.LoadID, statusBadge, broker, rateStr, timeStr)

	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
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
		mins := int(d.Minutes())
		if mins == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", mins)
	case d < 24*time.Hour:
		hrs := int(d.Hours())
		if hrs == 1 {
			return "1h ago"
		}
		return fmt.Sprintf("%dh ago", hrs)
	case d < 7*24*time.Hour:
		days := int(d.Hours() / 24)
		if days == 1 {
			return "1d ago"
		}
		return fmt.Sprintf("%dd ago", days)
	default:
		weeks := int(d.Hours() / 24 / 7)
		if weeks == 1 {
			return "1w ago"
		}
		return fmt.Sprintf("%dw ago", weeks)
	}
}
