package backend

import (
	"context"
	"fmt"
	"net/url"

	"github.com/nhle/fleet-dispatch/internal/model"
)

// ListNotes fetches the notes attached to a load, newest first.
func (c *Client) ListNotes(ctx context.Context, loadID string) ([]model.Note, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("load_id", "eq."+loadID)
	query.Set("order", "created_at.desc")

	var notes []model.Note
	if err := c.get(ctx, "load_notes", query, &notes); err != nil {
		return nil, fmt.Errorf("listing notes for load %s: %w", loadID, err)
	}
	return notes, nil
}

// AddNote attaches a note to a load.
func (c *Client) AddNote(ctx context.Context, loadID, text, noteType string) error {
	if text == "" {
		return fmt.Errorf("adding note to load %s: empty note text", loadID)
	}
	if noteType == "" {
		noteType = "general"
	}

	body := map[string]string{
		"load_id":   loadID,
		"note_text": text,
		"note_type": noteType,
	}
	if err := c.post(ctx, "load_notes", body); err != nil {
		return fmt.Errorf("adding note to load %s: %w", loadID, err)
	}
	return nil
}
