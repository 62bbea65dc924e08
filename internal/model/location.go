package model

import (
	"strings"
	"time"
)

// Stop is a pickup or delivery location entry for a load. Dates and
// times stay strings ("YYYY-MM-DD", "HH:MM") as the backend stores them.
type Stop struct {
	ID     int64  `json:"id"`
	LoadID string `json:"load_id"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
	Date   string `json:"date"`
	Time   string `json:"time"`
}

// maxCityLen bounds city names in list columns.
const maxCityLen = 18

// Place renders "City, ST" with title-cased city and upper-cased state.
// Partial records degrade to whatever is present; fully empty yields "TBD".
func (s Stop) Place() string {
	city := titleCase(s.City)
	if r := []rune(city); len(r) > maxCityLen {
		city = string(r[:maxCityLen-3]) + "..."
	}
	state := strings.ToUpper(strings.TrimSpace(s.State))

	switch {
	case city != "" && state != "":
		return city + ", " + state
	case city != "":
		return city
	case state != "":
		return state
	default:
		return "TBD"
	}
}

// FormatStopDate renders a stored "YYYY-MM-DD" date as "MM/DD/YY".
// Empty or unparseable input yields "TBD".
func FormatStopDate(date string) string {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(date))
	if err != nil {
		return "TBD"
	}
	return t.Format("01/02/06")
}

// FormatStopTime renders a stored "HH:MM" time in 12-hour form, e.g.
// "2:30 PM". Empty or unparseable input yields "TBD".
func FormatStopTime(clock string) string {
	t, err := time.Parse("15:04", strings.TrimSpace(clock))
	if err != nil {
		return "TBD"
	}
	return t.Format("3:04 PM")
}

// titleCase upper-cases the first letter of each word, lower-casing the
// rest, so "fort worth" and "FORT WORTH" both render "Fort Worth".
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(s)))
	for i, w := range words {
		r := []rune(w)
		words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
	}
	return strings.Join(words, " ")
}
