package model

import "time"

// Notification is an alert surfaced to the user about fleet activity,
// such as a newly booked load appearing in a refresh.
type Notification struct {
	// ID is the unique identifier for this notification.
	ID string `json:"id"`

	// LoadID links this notification to the originating load.
	LoadID string `json:"load_id"`

	// Message is the human-readable notification text.
	Message string `json:"message"`

	// Read indicates whether the user has seen this notification.
	Read bool `json:"read"`

	// CreatedAt is when this notification was generated.
	CreatedAt time.Time `json:"created_at"`
}
