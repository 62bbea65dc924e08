package metrics

import (
	"testing"
	"time"

	"github.com/nhle/fleet-dispatch/internal/model"
)

func TestActiveLoads(t *testing.T) {
	loads := []model.Load{
		{Status: "booked"},
		{Status: "Active"},
		{Status: "In Transit"},
		{Status: "delivered"},
		{Status: "cancelled"},
		{Status: "issues"},
	}
	if got := ActiveLoads(loads); got != 3 {
		t.Fatalf("ActiveLoads = %d, want 3", got)
	}
}

func TestAvailableDrivers(t *testing.T) {
	drivers := []model.Driver{
		{Name: "A", Status: "Active"},
		{Name: "B", Status: "active"},
		{Name: "C", Status: "inactive"},
		{Name: "D", Status: ""},
	}
	if got := AvailableDrivers(drivers); got != 2 {
		t.Fatalf("AvailableDrivers = %d, want 2", got)
	}
}

func TestBookingTrend(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)
	loads := []model.Load{
		{CreatedAt: time.Date(2024, 3, 10, 1, 0, 0, 0, time.UTC)},
		{CreatedAt: time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC)},
		{CreatedAt: time.Date(2024, 3, 8, 12, 0, 0, 0, time.UTC)},
		// Outside the trailing week, must not be counted.
		{CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)},
	}

	trend := BookingTrend(loads, now)
	if len(trend) != 7 {
		t.Fatalf("trend has %d points, want 7", len(trend))
	}
	if trend[0].Date != "2024-03-04" || trend[6].Date != "2024-03-10" {
		t.Fatalf("trend window = %s..%s, want 2024-03-04..2024-03-10", trend[0].Date, trend[6].Date)
	}
	for i := 1; i < len(trend); i++ {
		if trend[i-1].Date >= trend[i].Date {
			t.Fatalf("trend not sorted ascending at %d", i)
		}
	}

	counts := map[string]int{}
	for _, p := range trend {
		counts[p.Date] = p.Count
	}
	if counts["2024-03-10"] != 2 {
		t.Errorf("count on 2024-03-10 = %d, want 2", counts["2024-03-10"])
	}
	if counts["2024-03-08"] != 1 {
		t.Errorf("count on 2024-03-08 = %d, want 1", counts["2024-03-08"])
	}
	if counts["2024-03-05"] != 0 {
		t.Errorf("empty day = %d, want 0", counts["2024-03-05"])
	}
}

func TestCompute(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	got := Compute(
		[]model.Load{{Status: "booked", CreatedAt: now}},
		[]model.Driver{{Status: "Active"}},
		[]model.Stop{{LoadID: "L-1"}, {LoadID: "L-2"}},
		[]model.Stop{{LoadID: "L-3"}},
		now,
	)

	if got.ActiveLoads != 1 {
		t.Errorf("ActiveLoads = %d, want 1", got.ActiveLoads)
	}
	if got.AvailableDrivers != 1 {
		t.Errorf("AvailableDrivers = %d, want 1", got.AvailableDrivers)
	}
	if got.TodayPickups != 2 || got.TodayDeliveries != 1 {
		t.Errorf("pickups/deliveries = %d/%d, want 2/1", got.TodayPickups, got.TodayDeliveries)
	}
	if len(got.Trend) != 7 {
		t.Errorf("trend has %d points, want 7", len(got.Trend))
	}
}
