package model

import "testing"

func TestStopPlace(t *testing.T) {
	tests := []struct {
		name string
		stop Stop
		want string
	}{
		{"both fields", Stop{City: "fort worth", State: "tx"}, "Fort Worth, TX"},
		{"shouting input", Stop{City: "DALLAS", State: "TX"}, "Dallas, TX"},
		{"city only", Stop{City: "Chicago"}, "Chicago"},
		{"state only", Stop{State: "il"}, "IL"},
		{"empty", Stop{}, "TBD"},
		{"long city truncated", Stop{City: "Rancho Cucamonga Heights", State: "CA"}, "Rancho Cucamong..., CA"},
		{"accented city truncated on runes", Stop{City: "ciudad juárez estación norte", State: "mx"}, "Ciudad Juárez E..., MX"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.stop.Place(); got != tt.want {
				t.Errorf("Place() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatStopDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2026-08-31", "08/31/26"},
		{"2026-01-05", "01/05/26"},
		{"", "TBD"},
		{"not-a-date", "TBD"},
	}

	for _, tt := range tests {
		if got := FormatStopDate(tt.in); got != tt.want {
			t.Errorf("FormatStopDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatStopTime(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"14:30", "2:30 PM"},
		{"00:05", "12:05 AM"},
		{"12:00", "12:00 PM"},
		{"", "TBD"},
		{"25:99", "TBD"},
	}

	for _, tt := range tests {
		if got := FormatStopTime(tt.in); got != tt.want {
			t.Errorf("FormatStopTime(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
