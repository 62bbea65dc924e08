package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/nhle/fleet-dispatch/internal/model"
	"github.com/nhle/fleet-dispatch/internal/store"
	"github.com/nhle/fleet-dispatch/tests/testutil"
)

func sampleSnapshot() store.Snapshot {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return store.Snapshot{
		Loads: []model.Load{
			{
				ID: 1, LoadID: "L-100", BrokerName: "Acme Logistics",
				BrokerLoadNumber: "AC-9", Status: "booked",
				LoadType: "reefer", Rate: 2450.50, Temperature: "-10F",
				CreatedAt: created, UpdatedAt: created,
			},
			{
				ID: 2, LoadID: "L-101", BrokerName: "TransCo",
				Status:    "Active",
				CreatedAt: created.Add(time.Hour), UpdatedAt: created.Add(time.Hour),
			},
		},
		Drivers: []model.Driver{
			{ID: 1, Name: "Pat Doyle", Status: "Active", TruckNumber: "T-7"},
		},
		Activity: []model.Activity{
			{
				Type: model.ActivityStatusChange, ActivityID: 1,
				LoadID: "L-100", PreviousStatus: "booked",
				NewStatus: "in_transit", CreatedAt: created,
			},
		},
		FetchedAt: created.Add(2 * time.Hour),
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	if err := s.SaveSnapshot(ctx, sampleSnapshot()); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	snap, err := s.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}

	if len(snap.Loads) != 2 {
		t.Fatalf("got %d loads, want 2", len(snap.Loads))
	}
	// Ordered newest first.
	if snap.Loads[0].LoadID != "L-101" {
		t.Errorf("first load = %s, want L-101", snap.Loads[0].LoadID)
	}
	if snap.Loads[1].BrokerName != "Acme Logistics" {
		t.Errorf("broker = %q, want Acme Logistics", snap.Loads[1].BrokerName)
	}
	if snap.Loads[1].Rate != 2450.50 {
		t.Errorf("rate = %v, want 2450.50", snap.Loads[1].Rate)
	}
	// Raw status survives the cache untouched.
	if snap.Loads[0].Status != "Active" {
		t.Errorf("status = %q, want the raw Active value", snap.Loads[0].Status)
	}

	if len(snap.Drivers) != 1 || snap.Drivers[0].Name != "Pat Doyle" {
		t.Fatalf("drivers = %+v, want Pat Doyle", snap.Drivers)
	}

	if len(snap.Activity) != 1 {
		t.Fatalf("got %d activity entries, want 1", len(snap.Activity))
	}
	if snap.Activity[0].NewStatus != "in_transit" {
		t.Errorf("activity new status = %q", snap.Activity[0].NewStatus)
	}

	if snap.FetchedAt.IsZero() {
		t.Error("FetchedAt not persisted")
	}
}

func TestSaveSnapshotReplacesPrevious(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	if err := s.SaveSnapshot(ctx, sampleSnapshot()); err != nil {
		t.Fatalf("first SaveSnapshot: %v", err)
	}

	second := sampleSnapshot()
	second.Loads = second.Loads[:1]
	second.Drivers = nil
	if err := s.SaveSnapshot(ctx, second); err != nil {
		t.Fatalf("second SaveSnapshot: %v", err)
	}

	snap, err := s.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if len(snap.Loads) != 1 {
		t.Errorf("got %d loads, want 1 after replacement", len(snap.Loads))
	}
	if len(snap.Drivers) != 0 {
		t.Errorf("got %d drivers, want 0 after replacement", len(snap.Drivers))
	}
}

func TestLoadSnapshotEmptyCache(t *testing.T) {
	s := testutil.NewTestStore(t)

	snap, err := s.LoadSnapshot(context.Background())
	if err != nil {
		t.Fatalf("LoadSnapshot on empty cache: %v", err)
	}
	if !snap.FetchedAt.IsZero() {
		t.Error("empty cache should report a zero FetchedAt")
	}
}

func TestNotificationLifecycle(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	n := model.Notification{
		LoadID:    "L-100",
		Message:   "New load: L-100 (Acme Logistics)",
		CreatedAt: time.Now(),
	}
	if err := s.CreateNotification(ctx, n); err != nil {
		t.Fatalf("CreateNotification: %v", err)
	}

	unread, err := s.GetUnreadNotifications(ctx)
	if err != nil {
		t.Fatalf("GetUnreadNotifications: %v", err)
	}
	if len(unread) != 1 {
		t.Fatalf("got %d unread, want 1", len(unread))
	}
	if unread[0].ID == "" {
		t.Error("notification ID was not generated")
	}

	if err := s.MarkNotificationRead(ctx, unread[0].ID); err != nil {
		t.Fatalf("MarkNotificationRead: %v", err)
	}

	unread, err = s.GetUnreadNotifications(ctx)
	if err != nil {
		t.Fatalf("GetUnreadNotifications after read: %v", err)
	}
	if len(unread) != 0 {
		t.Fatalf("got %d unread after marking read, want 0", len(unread))
	}
}
