package shadow

import (
	"testing"

	"github.com/nhle/fleet-dispatch/internal/model"
	"github.com/nhle/fleet-dispatch/internal/status"
)

func sampleLoads() []model.Load {
	return []model.Load{
		{ID: 1, LoadID: "L-100", BrokerName: "Acme Logistics", Status: "booked"},
		{ID: 2, LoadID: "L-101", BrokerName: "TransCo", Status: "Active"},
		{ID: 3, LoadID: "L-102", BrokerName: "Acme Logistics", Status: "delivered"},
		{ID: 4, LoadID: "L-103", BrokerName: "Western Freight", Status: "In Transit"},
	}
}

func TestBeginAndRollback(t *testing.T) {
	l := NewList()
	l.Replace(sampleLoads())

	prev, seq, ok := l.BeginStatusChange("L-100", status.InTransit)
	if !ok {
		t.Fatal("BeginStatusChange failed for known load")
	}
	if prev != "booked" {
		t.Fatalf("previous = %q, want booked", prev)
	}

	if ld, _ := l.Get("L-100"); ld.Status != status.InTransit {
		t.Fatalf("optimistic status = %q, want %q", ld.Status, status.InTransit)
	}

	if !l.Rollback("L-100", prev, seq) {
		t.Fatal("Rollback refused the latest sequence")
	}
	if ld, _ := l.Get("L-100"); ld.Status != "booked" {
		t.Fatalf("status after rollback = %q, want booked", ld.Status)
	}
}

func TestStaleRollbackDoesNotClobberNewerEdit(t *testing.T) {
	l := NewList()
	l.Replace(sampleLoads())

	prev1, seq1, _ := l.BeginStatusChange("L-100", status.InTransit)
	_, _, _ = l.BeginStatusChange("L-100", status.Delivered)

	if l.Rollback("L-100", prev1, seq1) {
		t.Fatal("stale rollback was applied over a newer edit")
	}
	if ld, _ := l.Get("L-100"); ld.Status != status.Delivered {
		t.Fatalf("status = %q, want %q (the newer edit)", ld.Status, status.Delivered)
	}
}

func TestBeginStatusChangeUnknownLoad(t *testing.T) {
	l := NewList()
	l.Replace(sampleLoads())

	if _, _, ok := l.BeginStatusChange("L-999", status.Booked); ok {
		t.Fatal("BeginStatusChange succeeded for unknown load")
	}
}

func TestApplyStatusUnknownLoadIsNoOp(t *testing.T) {
	l := NewList()
	l.Replace(sampleLoads())

	l.ApplyStatus("L-999", status.Cancelled)
	if got := len(l.Loads()); got != 4 {
		t.Fatalf("load count changed to %d", got)
	}
}

func TestCounts(t *testing.T) {
	l := NewList()
	l.Replace(append(sampleLoads(), model.Load{
		ID: 5, LoadID: "L-104", Status: "pending review",
	}))

	c := l.Counts()
	if c.All != 5 {
		t.Fatalf("All = %d, want 5", c.All)
	}
	if c.ByStatus[status.Booked] != 1 {
		t.Errorf("booked = %d, want 1", c.ByStatus[status.Booked])
	}
	// "Active" and "In Transit" both normalize to in_transit.
	if c.ByStatus[status.InTransit] != 2 {
		t.Errorf("in_transit = %d, want 2", c.ByStatus[status.InTransit])
	}
	if c.ByStatus[status.Delivered] != 1 {
		t.Errorf("delivered = %d, want 1", c.ByStatus[status.Delivered])
	}
	if c.Unrecognized != 1 {
		t.Errorf("unrecognized = %d, want 1", c.Unrecognized)
	}
	if !c.Inconsistent {
		t.Error("unrecognized status should flag the counts inconsistent")
	}

	for _, s := range status.Canonical {
		if _, ok := c.ByStatus[s]; !ok {
			t.Errorf("ByStatus missing canonical key %q", s)
		}
	}
}

func TestCountsFlagsUnrecognizedStatus(t *testing.T) {
	l := NewList()
	l.Replace([]model.Load{
		{ID: 1, LoadID: "L-1", Status: "booked"},
		{ID: 2, LoadID: "L-2", Status: "pending_review"},
	})

	c := l.Counts()
	if c.Unrecognized != 1 {
		t.Fatalf("unrecognized = %d, want 1", c.Unrecognized)
	}
	if !c.Inconsistent {
		t.Error("integrity flag not set despite unrecognized status")
	}
}

func TestCountsAllCanonicalIsConsistent(t *testing.T) {
	l := NewList()
	l.Replace(sampleLoads())

	if c := l.Counts(); c.Inconsistent {
		t.Error("counts flagged inconsistent with only recognized statuses")
	}
}

func TestCountsFlagsEmptyStatus(t *testing.T) {
	l := NewList()
	l.Replace([]model.Load{{ID: 1, LoadID: "L-1", Status: ""}})

	if c := l.Counts(); !c.Inconsistent {
		t.Error("empty status should flag the counts inconsistent")
	}
}

func TestFilter(t *testing.T) {
	l := NewList()
	l.Replace(sampleLoads())

	if got := l.Filter(status.InTransit, ""); len(got) != 2 {
		t.Fatalf("in_transit filter matched %d loads, want 2", len(got))
	}

	got := l.Filter("", "acme")
	if len(got) != 2 {
		t.Fatalf("query filter matched %d loads, want 2", len(got))
	}

	got = l.Filter(status.Delivered, "acme")
	if len(got) != 1 || got[0].LoadID != "L-102" {
		t.Fatalf("combined filter = %v, want just L-102", got)
	}

	if got := l.Filter(status.Cancelled, ""); len(got) != 0 {
		t.Fatalf("cancelled filter matched %d loads, want 0", len(got))
	}
}

func TestReplaceCopiesInput(t *testing.T) {
	l := NewList()
	in := sampleLoads()
	l.Replace(in)

	in[0].Status = "mutated"
	if ld, _ := l.Get("L-100"); ld.Status == "mutated" {
		t.Fatal("Replace aliased the caller's slice")
	}
}
