package model

import "strings"

// DriverStatusActive marks a driver as available for dispatch. Driver
// status is a simpler taxonomy than load status: "active" vs anything else.
const DriverStatusActive = "active"

// Driver is a driver/truck record. Read-only in this app.
type Driver struct {
	ID int64 `json:"id" db:"id"`

	// Name is the driver's display name.
	Name string `json:"name" db:"name"`

	// Status is "active" when the driver is available.
	Status string `json:"status" db:"status"`

	// TruckNumber identifies the assigned truck.
	TruckNumber string `json:"truck_number" db:"truck_number"`

	// Current location, split as stored upstream.
	CurrentLocationCity  string `json:"current_location_city" db:"current_location_city"`
	CurrentLocationState string `json:"current_location_state" db:"current_location_state"`

	Phone string `json:"phone" db:"phone"`
	Email string `json:"email" db:"email"`

	// AvailableDate/AvailableTime are when the driver is next free,
	// as "YYYY-MM-DD" and "HH:MM" strings (empty when available now).
	AvailableDate string `json:"available_date" db:"available_date"`
	AvailableTime string `json:"available_time" db:"available_time"`
}

// Available reports whether the driver counts as available for dispatch.
func (d Driver) Available() bool {
	return strings.EqualFold(d.Status, DriverStatusActive)
}
