package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/fleet-dispatch/internal/model"
	"github.com/nhle/fleet-dispatch/internal/ui/detail"
	"github.com/nhle/fleet-dispatch/internal/ui/diagnostics"
	"github.com/nhle/fleet-dispatch/internal/ui/statuspicker"
)

// actionTimeout bounds backend calls triggered by user actions.
const actionTimeout = 15 * time.Second

// noteAddedMsg reports the outcome of persisting a note.
type noteAddedMsg struct {
	loadID string
	err    error
}

// loadUpdatedMsg reports the outcome of saving a load edit.
type loadUpdatedMsg struct {
	loadID string
	err    error
}

// loadCachedSnapshot reads the local cache for a warm start.
func (m Model) loadCachedSnapshot() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()

		snap, err := s.LoadSnapshot(ctx)
		if err != nil {
			// A broken cache only costs the warm start.
			return cachedSnapshotMsg{}
		}
		return cachedSnapshotMsg{snap: snap}
	}
}

// writeStatus persists an optimistic status change remotely. The
// previous value and write sequence ride along so the resolution can be
// matched back to the edit that issued it.
func (m Model) writeStatus(loadID, newStatus, previous string, seq uint64) tea.Cmd {
	b := m.backend
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()

		err := b.UpdateLoadStatus(ctx, loadID, newStatus)
		return statuspicker.ResultMsg{
			LoadID:    loadID,
			NewStatus: newStatus,
			Previous:  previous,
			Seq:       seq,
			Err:       err,
		}
	}
}

// updateLoad persists a load edit.
func (m Model) updateLoad(loadID string, edit model.LoadEdit) tea.Cmd {
	b := m.backend
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()

		err := b.UpdateLoad(ctx, loadID, edit)
		return loadUpdatedMsg{loadID: loadID, err: err}
	}
}

// fetchLoadDetail loads the notes and delivery stops for a load.
func (m Model) fetchLoadDetail(loadID string) tea.Cmd {
	b := m.backend
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()

		notes, err := b.ListNotes(ctx, loadID)
		stops, stopsErr := b.DeliveriesForLoad(ctx, loadID)
		if err == nil {
			err = stopsErr
		}
		return detail.NotesLoadedMsg{
			LoadID:  loadID,
			Notes:   notes,
			Stops:   stops,
			LoadErr: err,
		}
	}
}

// addNote persists a new note for a load.
func (m Model) addNote(loadID, text string) tea.Cmd {
	b := m.backend
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()

		err := b.AddNote(ctx, loadID, text, "general")
		return noteAddedMsg{loadID: loadID, err: err}
	}
}

// runMigration rewrites legacy Active statuses remotely.
func (m Model) runMigration() tea.Cmd {
	b := m.backend
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()

		count, err := b.MigrateLegacyActive(ctx)
		return diagnostics.MigrationDoneMsg{Count: count, Err: err}
	}
}

// fetchUnreadCount queries the store for unread notifications.
func (m Model) fetchUnreadCount() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		notifications, err := s.GetUnreadNotifications(context.Background())
		if err != nil {
			return unreadCountMsg{count: 0}
		}
		return unreadCountMsg{count: len(notifications)}
	}
}
