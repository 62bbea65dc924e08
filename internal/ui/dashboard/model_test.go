package dashboard

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/nhle/fleet-dispatch/internal/model"
)

func TestFormatActivityStatusChange(t *testing.T) {
	got := formatActivity(model.Activity{
		Type:           model.ActivityStatusChange,
		LoadID:         "L-1001",
		PreviousStatus: "booked",
		NewStatus:      "Active",
		ChangedBy:      "dispatch",
	})

	if !strings.Contains(got, "Load L-1001 changed from Booked to In Transit") {
		t.Errorf("formatActivity = %q", got)
	}
	if !strings.Contains(got, "by dispatch") {
		t.Errorf("formatActivity dropped the author: %q", got)
	}
}

func TestFormatActivityTruncatesLongNoteOnRunes(t *testing.T) {
	note := strings.Repeat("é", 80)
	got := formatActivity(model.Activity{
		Type:     model.ActivityNote,
		LoadID:   "L-1",
		NoteText: note,
	})

	if !utf8.ValidString(got) {
		t.Fatalf("truncation produced invalid UTF-8: %q", got)
	}
	if !strings.Contains(got, strings.Repeat("é", 57)+"...") {
		t.Errorf("note not truncated at 57 runes: %q", got)
	}
	if strings.Contains(got, strings.Repeat("é", 58)) {
		t.Errorf("note truncated too late: %q", got)
	}
}
