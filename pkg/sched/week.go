// Package sched maps the configured backup week onto the calendar.
package sched

import (
	"fmt"
	"strings"
	"time"
)

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// DayOfWeek converts an English weekday name to a time.Weekday.
func DayOfWeek(name string) (time.Weekday, error) {
	day, ok := weekdays[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("unknown weekday %q", name)
	}
	return day, nil
}

// IsStartOfWeek reports whether t falls on the configured starting day
// of the backup week.
func IsStartOfWeek(startingDay string, t time.Time) (bool, error) {
	day, err := DayOfWeek(startingDay)
	if err != nil {
		return false, err
	}
	return t.Weekday() == day, nil
}
