package domain

import (
	"fmt"
	"strings"
	"time"
)

// CivilDate drops the time of day and zone from t, keeping its calendar date.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// InclusiveDays counts the days from today through deadline, both ends
// included. A deadline of today yields 1; a past deadline yields 0 or less.
// Counting runs on Unix seconds, since a time.Duration overflows past ~292 years.
func InclusiveDays(today, deadline time.Time) int {
	const secondsPerDay = 24 * 60 * 60
	diff := CivilDate(deadline).Unix() - CivilDate(today).Unix()
	return int(diff/secondsPerDay) + 1
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("use YYYY-MM-DD format")
	}
	return t, nil
}
