package model

import "time"

// Note is a free-text note attached to a load. Notes are append-only:
// the app can add them but never edits or deletes them.
type Note struct {
	ID int64 `json:"id" db:"id"`

	// LoadID is the load identifier this note belongs to.
	LoadID string `json:"load_id" db:"load_id"`

	// Text is the note body.
	Text string `json:"note_text" db:"note_text"`

	// Type is an optional tag ("dispatch", "billing", ...).
	Type string `json:"note_type" db:"note_type"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
