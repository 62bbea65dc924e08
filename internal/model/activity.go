package model

import "time"

// Activity types as emitted by the backend's combined activity view.
const (
	ActivityStatusChange = "status_change"
	ActivityNote         = "note"
)

// Activity is one entry of the combined activity feed: either a load
// status change or a note. It is derived server-side and read-only here.
type Activity struct {
	// Type is one of the Activity* constants.
	Type string `json:"activity_type"`

	ActivityID int64  `json:"activity_id"`
	NoteID     int64  `json:"note_id"`
	LoadID     string `json:"load_id"`

	// Note fields (Type == ActivityNote).
	NoteText string `json:"note_text"`
	NoteType string `json:"note_type"`

	// Status-change fields (Type == ActivityStatusChange).
	PreviousStatus string `json:"previous_status"`
	NewStatus      string `json:"new_status"`
	ChangedBy      string `json:"changed_by"`

	CreatedAt time.Time `json:"created_at"`
}
