package model

// TrendPoint is one day of the booking trend.
type TrendPoint struct {
	// Date is the day in "YYYY-MM-DD" form.
	Date string `json:"date"`

	// Count is the number of loads booked that day.
	Count int `json:"count"`
}

// DashboardMetrics holds the headline numbers shown on the dashboard.
type DashboardMetrics struct {
	ActiveLoads      int          `json:"active_loads"`
	AvailableDrivers int          `json:"available_drivers"`
	TodayPickups     int          `json:"today_pickups"`
	TodayDeliveries  int          `json:"today_deliveries"`
	Trend            []TrendPoint `json:"trend"`
}
