package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/fleet-dispatch/internal/theme"
)

// ToastLevel selects the toast's color treatment.
type ToastLevel int

const (
	ToastInfo ToastLevel = iota
	ToastSuccess
	ToastWarn
	ToastError
)

// Toast is a transient one-line message rendered above the status bar.
// Success toasts expire on their own; warnings and errors stay until
// replaced or dismissed.
type Toast struct {
	Level   ToastLevel
	Message string
	ShownAt time.Time
}

// toastTTL is how long auto-expiring toasts stay visible.
const toastTTL = 2 * time.Second

// ToastExpiredMsg asks the root model to clear a toast shown at ShownAt.
type ToastExpiredMsg struct {
	ShownAt time.Time
}

// NewToast creates a toast stamped with the current time.
func NewToast(level ToastLevel, message string) Toast {
	return Toast{Level: level, Message: message, ShownAt: time.Now()}
}

// Expire returns a command that fires when this toast should be
// cleared, or nil for levels that stick around.
func (t Toast) Expire() tea.Cmd {
	if t.Level == ToastWarn || t.Level == ToastError {
		return nil
	}
	shownAt := t.ShownAt
	return tea.Tick(toastTTL, func(time.Time) tea.Msg {
		return ToastExpiredMsg{ShownAt: shownAt}
	})
}

// View renders the toast line, or "" when there is no message.
func (t Toast) View() string {
	if t.Message == "" {
		return ""
	}
	switch t.Level {
	case ToastSuccess:
		return theme.ToastSuccessStyle.Render(t.Message)
	case ToastWarn:
		return theme.ToastWarnStyle.Render(t.Message)
	case ToastError:
		return theme.ToastErrorStyle.Render(t.Message)
	default:
		return theme.ToastInfoStyle.Render(t.Message)
	}
}
