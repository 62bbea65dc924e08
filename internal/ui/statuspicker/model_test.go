package statuspicker

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/fleet-dispatch/internal/keys"
	"github.com/nhle/fleet-dispatch/internal/status"
)

func keyMsg(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	if s == "esc" {
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestCursorStartsOnCurrentStatus(t *testing.T) {
	m := New("L-100", "In Transit", keys.DefaultKeyMap())
	if m.options[m.cursor].Value != status.InTransit {
		t.Fatalf("cursor on %q, want %q", m.options[m.cursor].Value, status.InTransit)
	}
}

func TestSelectDifferentStatusEmitsChangeRequest(t *testing.T) {
	m := New("L-100", "booked", keys.DefaultKeyMap())

	// Move off booked (index 0) to in_transit (index 1).
	m, _ = m.Update(keyMsg("j"))
	m, cmd := m.Update(keyMsg("enter"))
	if cmd == nil {
		t.Fatal("enter produced no command")
	}

	msg, ok := cmd().(ChangeRequestedMsg)
	if !ok {
		t.Fatalf("got %T, want ChangeRequestedMsg", cmd())
	}
	if msg.LoadID != "L-100" || msg.NewStatus != status.InTransit {
		t.Fatalf("request = %+v", msg)
	}
}

func TestReselectingCurrentStatusIsNoOp(t *testing.T) {
	m := New("L-100", "Active", keys.DefaultKeyMap())

	// Cursor starts on in_transit, the normalized current status.
	m, cmd := m.Update(keyMsg("enter"))
	if cmd == nil {
		t.Fatal("enter produced no command")
	}
	if _, ok := cmd().(ClosedMsg); !ok {
		t.Fatalf("got %T, want ClosedMsg (no write for a no-op reselect)", cmd())
	}
}

func TestEscCloses(t *testing.T) {
	m := New("L-100", "booked", keys.DefaultKeyMap())

	m, cmd := m.Update(keyMsg("esc"))
	if cmd == nil {
		t.Fatal("esc produced no command")
	}
	if _, ok := cmd().(ClosedMsg); !ok {
		t.Fatalf("got %T, want ClosedMsg", cmd())
	}
}

func TestCursorStaysInBounds(t *testing.T) {
	m := New("L-100", "booked", keys.DefaultKeyMap())

	m, _ = m.Update(keyMsg("k"))
	if m.cursor != 0 {
		t.Fatalf("cursor = %d, want 0 at top", m.cursor)
	}

	for i := 0; i < 20; i++ {
		m, _ = m.Update(keyMsg("j"))
	}
	if m.cursor != len(m.options)-1 {
		t.Fatalf("cursor = %d, want %d at bottom", m.cursor, len(m.options)-1)
	}
}
