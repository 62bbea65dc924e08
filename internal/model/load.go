package model

import "time"

// Load is a shipment record tracked through its dispatch lifecycle.
// Loads are created upstream (not by this app); we read them, change
// their status, and edit a small set of broker fields.
type Load struct {
	// ID is the row identifier assigned by the backend.
	ID int64 `json:"id" db:"id"`

	// LoadID is the human-readable load identifier (e.g. "L-1042"),
	// unique across the system and used to key every mutation.
	LoadID string `json:"load_id" db:"load_id"`

	// BrokerName is the broker this load was booked with.
	BrokerName string `json:"broker_name" db:"broker_name"`

	// BrokerLoadNumber is the broker's own reference number.
	BrokerLoadNumber string `json:"broker_load_number" db:"broker_load_number"`

	// DriverID references the assigned driver, if any.
	DriverID *int64 `json:"driver_id,omitempty" db:"driver_id"`

	// Status is the raw stored status value. Historical rows carry
	// legacy spellings ("Active", "in transit", ...); display and
	// filtering always go through status.Normalize first.
	Status string `json:"status" db:"status"`

	// LoadType is the equipment/freight type (e.g. "reefer", "dry van").
	LoadType string `json:"load_type" db:"load_type"`

	// Rate is the agreed rate in dollars.
	Rate float64 `json:"rate" db:"rate"`

	// Temperature is the temperature requirement, when applicable.
	Temperature string `json:"temperature" db:"temperature"`

	// CreatedAt is when the load was booked.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is when the load was last modified.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// LoadEdit carries the mutable load fields collected by the edit form.
type LoadEdit struct {
	BrokerName       string
	BrokerLoadNumber string
	LoadType         string
	Rate             float64
	Temperature      string
}
