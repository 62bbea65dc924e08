package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/fleet-dispatch/internal/theme"
)

// Layout carves the terminal into the dashboard's three bands: a header
// line (title plus sync state), the active view, and the status bar
// that alternates between key hints and toasts.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	StatusBarHeight int
}

// NewLayout sizes a layout for the given terminal dimensions. Header
// and status bar are one row each.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		StatusBarHeight: 1,
	}
}

// ContentWidth returns the width available to the active view.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight returns the rows left for the active view once the
// header and status bar have taken theirs.
func (l Layout) ContentHeight() int {
	return l.Height - l.HeaderHeight - l.StatusBarHeight
}

// RenderHeader lays the app title flush left and the sync state flush
// right on a single header-styled row.
func (l Layout) RenderHeader(title string, syncStatus string) string {
	left := theme.HeaderStyle.Render(title)
	right := theme.HeaderStyle.Align(lipgloss.Right).Render(syncStatus)

	gap := l.Width - lipgloss.Width(left) - lipgloss.Width(right)
	filler := fillRow(theme.HeaderStyle, gap)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, filler, right)
}

// RenderStatusBar stretches the hint (or toast) text across a full
// status-bar row.
func (l Layout) RenderStatusBar(hints string) string {
	rendered := theme.StatusBarStyle.Render(hints)
	filler := fillRow(theme.StatusBarStyle, l.Width-lipgloss.Width(rendered))

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered, filler)
}

// RenderWithFrame stacks header, content, and status bar into the final
// frame handed to Bubble Tea.
func (l Layout) RenderWithFrame(
	header string,
	content string,
	statusBar string,
) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		content,
		statusBar,
	)
}

// fillRow paints width cells of a bar's background so partial rows
// extend edge to edge.
func fillRow(barStyle lipgloss.Style, width int) string {
	if width < 0 {
		width = 0
	}
	return barStyle.Render(
		lipgloss.NewStyle().
			Width(width).
			Background(barStyle.GetBackground()).
			Render(""),
	)
}
