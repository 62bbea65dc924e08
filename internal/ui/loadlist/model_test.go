package loadlist

import (
	"strings"
	"testing"

	"github.com/nhle/fleet-dispatch/internal/keys"
	"github.com/nhle/fleet-dispatch/internal/model"
	"github.com/nhle/fleet-dispatch/internal/shadow"
)

func TestIntegrityBannerShowsForUnrecognizedStatus(t *testing.T) {
	loads := shadow.NewList()
	loads.Replace([]model.Load{
		{ID: 1, LoadID: "L-1", Status: "booked"},
		{ID: 2, LoadID: "L-2", Status: "pending_review"},
	})

	m := New(loads, keys.DefaultKeyMap(), 80, 24)
	m.Reload()

	if !strings.Contains(m.View(), "Data integrity") {
		t.Error("no integrity banner despite unrecognized status")
	}
}

func TestNoIntegrityBannerWhenCountsReconcile(t *testing.T) {
	loads := shadow.NewList()
	loads.Replace([]model.Load{
		{ID: 1, LoadID: "L-1", Status: "booked"},
		{ID: 2, LoadID: "L-2", Status: "In Transit"},
	})

	m := New(loads, keys.DefaultKeyMap(), 80, 24)
	m.Reload()

	if strings.Contains(m.View(), "Data integrity") {
		t.Error("integrity banner shown though counts reconcile")
	}
}
