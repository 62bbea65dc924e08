package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nhle/fleet-dispatch/internal/model"
	"github.com/nhle/fleet-dispatch/internal/status"
	appsync "github.com/nhle/fleet-dispatch/internal/sync"
	"github.com/nhle/fleet-dispatch/internal/ui"
	"github.com/nhle/fleet-dispatch/internal/ui/statuspicker"
	"github.com/nhle/fleet-dispatch/tests/testutil"
)

// stubBackend satisfies Backend without reaching any remote service.
// The tests drive resolutions by feeding ResultMsg values directly.
type stubBackend struct{}

func (stubBackend) UpdateLoadStatus(context.Context, string, string) error { return nil }
func (stubBackend) UpdateLoad(context.Context, string, model.LoadEdit) error {
	return nil
}
func (stubBackend) MigrateLegacyActive(context.Context) (int, error) { return 0, nil }
func (stubBackend) ListNotes(context.Context, string) ([]model.Note, error) {
	return nil, nil
}
func (stubBackend) AddNote(context.Context, string, string, string) error { return nil }
func (stubBackend) DeliveriesForLoad(context.Context, string) ([]model.Stop, error) {
	return nil, nil
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	st := testutil.NewTestStore(t)
	p := appsync.New(nil, st, time.Minute, 10, nil)
	return New(stubBackend{}, st, p, nil)
}

// requestChange drives one optimistic edit through Update and returns
// the updated model plus the pending record the edit registered.
func requestChange(t *testing.T, m Model, loadID, newStatus string) (Model, pendingChange) {
	t.Helper()
	next, _ := m.Update(statuspicker.ChangeRequestedMsg{LoadID: loadID, NewStatus: newStatus})
	nm := next.(Model)
	pc, ok := nm.pending[loadID]
	if !ok {
		t.Fatalf("no pending record after requesting %s -> %s", loadID, newStatus)
	}
	return nm, pc
}

func TestStaleWriteFailureDoesNotClobberNewerEdit(t *testing.T) {
	m := newTestModel(t)
	m.loads.Replace([]model.Load{{ID: 1, LoadID: "L-1", Status: "booked"}})

	m, first := requestChange(t, m, "L-1", status.InTransit)
	m, second := requestChange(t, m, "L-1", status.Delivered)

	// The first write fails after the second edit superseded it.
	next, _ := m.Update(statuspicker.ResultMsg{
		LoadID:    "L-1",
		NewStatus: status.InTransit,
		Previous:  first.previous,
		Seq:       first.seq,
		Err:       errors.New("write timed out"),
	})
	m = next.(Model)

	if ld, _ := m.loads.Get("L-1"); ld.Status != status.Delivered {
		t.Fatalf("status = %q, want %q (the newer edit)", ld.Status, status.Delivered)
	}
	if _, ok := m.pending["L-1"]; !ok {
		t.Fatal("newer edit's rollback record was discarded")
	}

	// The second write fails too; the rollback must land on the value
	// the backend actually holds, not the first edit's optimistic one.
	next, _ = m.Update(statuspicker.ResultMsg{
		LoadID:    "L-1",
		NewStatus: status.Delivered,
		Previous:  second.previous,
		Seq:       second.seq,
		Err:       errors.New("write timed out"),
	})
	m = next.(Model)

	if ld, _ := m.loads.Get("L-1"); ld.Status != "booked" {
		t.Fatalf("status after both failures = %q, want booked", ld.Status)
	}
	if _, ok := m.pending["L-1"]; ok {
		t.Fatal("pending record not cleared after resolution")
	}
}

func TestStaleWriteSuccessIsDiscarded(t *testing.T) {
	m := newTestModel(t)
	m.loads.Replace([]model.Load{{ID: 1, LoadID: "L-1", Status: "booked"}})

	m, first := requestChange(t, m, "L-1", status.InTransit)
	m, _ = requestChange(t, m, "L-1", status.Delivered)

	next, _ := m.Update(statuspicker.ResultMsg{
		LoadID:    "L-1",
		NewStatus: status.InTransit,
		Previous:  first.previous,
		Seq:       first.seq,
	})
	m = next.(Model)

	if ld, _ := m.loads.Get("L-1"); ld.Status != status.Delivered {
		t.Fatalf("status = %q, want %q", ld.Status, status.Delivered)
	}
	if m.toast.Message != "" {
		t.Fatalf("superseded success raised a toast: %q", m.toast.Message)
	}
	if _, ok := m.pending["L-1"]; !ok {
		t.Fatal("newer edit's rollback record was discarded")
	}
}

func TestFailedWriteRollsBackAndToasts(t *testing.T) {
	m := newTestModel(t)
	m.loads.Replace([]model.Load{{ID: 1, LoadID: "L-1", Status: "booked"}})

	m, pc := requestChange(t, m, "L-1", status.InTransit)

	next, _ := m.Update(statuspicker.ResultMsg{
		LoadID:    "L-1",
		NewStatus: status.InTransit,
		Previous:  pc.previous,
		Seq:       pc.seq,
		Err:       errors.New("row locked"),
	})
	m = next.(Model)

	if ld, _ := m.loads.Get("L-1"); ld.Status != "booked" {
		t.Fatalf("status = %q, want booked after rollback", ld.Status)
	}
	if m.toast.Level != ui.ToastError {
		t.Fatalf("toast level = %d, want error", m.toast.Level)
	}
}

func TestRefreshFailureRaisesErrorToast(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(appsync.RefreshResultMsg{Error: errors.New("connection refused")})
	m = next.(Model)

	if m.toast.Level != ui.ToastError || m.toast.Message == "" {
		t.Fatalf("refresh failure toast = %+v, want error toast", m.toast)
	}
}

func TestAuthFailureSetsBanner(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(appsync.RefreshResultMsg{
		Error:     errors.New("401"),
		AuthError: &appsync.AuthErrorMsg{Message: "authentication failed"},
	})
	m = next.(Model)

	if m.authError == "" {
		t.Fatal("auth failure did not set the banner message")
	}
}
