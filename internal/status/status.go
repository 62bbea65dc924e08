package status

import "strings"

// Canonical load status values. The backend stores raw strings that may
// carry legacy spellings ("Active", "in transit", "In-Transit", ...);
// every display and filtering decision goes through Normalize first.
const (
	Booked    = "booked"
	InTransit = "in_transit"
	Issues    = "issues"
	Delivered = "delivered"
	Completed = "completed"
	Cancelled = "cancelled"
)

// Canonical lists every canonical status in display order.
var Canonical = []string{
	Booked,
	InTransit,
	Issues,
	Delivered,
	Completed,
	Cancelled,
}

// Option pairs a canonical status with its display label, for pickers.
type Option struct {
	Value string
	Label string
}

// Options returns the selectable status choices in display order.
func Options() []Option {
	opts := make([]Option, len(Canonical))
	for i, s := range Canonical {
		opts[i] = Option{Value: s, Label: Label(s)}
	}
	return opts
}

// Normalize maps any raw status string onto the canonical set. It is
// total (never fails), deterministic, idempotent, and insensitive to
// case and whitespace. Empty input yields "" (unclassified).
//
// Collapse rules, applied to the input with separators removed:
//   - any spelling of "in transit" ("_", " ", "-", or no separator)
//     maps to in_transit
//   - legacy "active" maps to in_transit ("Active" was a deprecated
//     synonym for a moving truck)
//   - "canceled" and "cancelled" map to cancelled
//   - "issue"/"issues"/"problem"/"problems" map to issues
//
// Anything else passes through lower-cased with internal spaces removed,
// so unrecognized values survive for the diagnostics view to report.
func Normalize(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}

	compact := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, s)

	switch compact {
	case "intransit", "active":
		return InTransit
	case "cancelled", "canceled":
		return Cancelled
	case "issues", "issue", "problems", "problem":
		return Issues
	}

	return strings.ReplaceAll(s, " ", "")
}

// Label returns the display label for a raw status. The value is
// normalized first; in_transit renders as "In Transit" rather than the
// mechanical capitalization of the stored token.
func Label(raw string) string {
	n := Normalize(raw)
	switch n {
	case "":
		return ""
	case InTransit:
		return "In Transit"
	}
	return strings.ToUpper(n[:1]) + n[1:]
}

// IsCanonical reports whether s is exactly one of the canonical values.
func IsCanonical(s string) bool {
	for _, c := range Canonical {
		if s == c {
			return true
		}
	}
	return false
}

// IsInTransit reports whether raw normalizes to in_transit.
func IsInTransit(raw string) bool {
	return Normalize(raw) == InTransit
}

// IsActive reports whether raw counts toward the active-loads metric:
// a load that is booked or moving, but not yet delivered or closed out.
func IsActive(raw string) bool {
	switch Normalize(raw) {
	case Booked, InTransit:
		return true
	}
	return false
}
