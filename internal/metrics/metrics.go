// Package metrics derives the dashboard's operational numbers from the
// raw load and driver records.
package metrics

import (
	"sort"
	"time"

	"github.com/nhle/fleet-dispatch/internal/model"
	"github.com/nhle/fleet-dispatch/internal/status"
)

// ActiveLoads counts the loads that are booked or moving.
func ActiveLoads(loads []model.Load) int {
	n := 0
	for _, ld := range loads {
		if status.IsActive(ld.Status) {
			n++
		}
	}
	return n
}

// AvailableDrivers counts the drivers marked available for dispatch.
func AvailableDrivers(drivers []model.Driver) int {
	n := 0
	for _, d := range drivers {
		if d.Available() {
			n++
		}
	}
	return n
}

// BookingTrend buckets load creation times into daily counts over the
// trailing week ending at now, in UTC. Days with no bookings appear
// with a zero count so the sparkline has a fixed width.
func BookingTrend(loads []model.Load, now time.Time) []model.TrendPoint {
	const days = 7

	today := now.UTC().Truncate(24 * time.Hour)
	start := today.AddDate(0, 0, -(days - 1))

	buckets := make(map[string]int, days)
	for i := 0; i < days; i++ {
		buckets[start.AddDate(0, 0, i).Format("2006-01-02")] = 0
	}

	for _, ld := range loads {
		day := ld.CreatedAt.UTC().Format("2006-01-02")
		if _, ok := buckets[day]; ok {
			buckets[day]++
		}
	}

	points := make([]model.TrendPoint, 0, days)
	for date, count := range buckets {
		points = append(points, model.TrendPoint{Date: date, Count: count})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})
	return points
}

// Compute assembles the dashboard metrics from a fetched snapshot.
// Pickup and delivery counts come pre-filtered to today by the caller.
func Compute(
	loads []model.Load,
	drivers []model.Driver,
	todayPickups, todayDeliveries []model.Stop,
	now time.Time,
) model.DashboardMetrics {
	return model.DashboardMetrics{
		ActiveLoads:      ActiveLoads(loads),
		AvailableDrivers: AvailableDrivers(drivers),
		TodayPickups:     len(todayPickups),
		TodayDeliveries:  len(todayDeliveries),
		Trend:            BookingTrend(loads, now),
	}
}
