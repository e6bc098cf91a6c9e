package domain

import (
	"errors"
	"time"
)

// Weekday is a canonical weekday identifier used as the schedule key.
// It is derived from time.Weekday, never from a locale-rendered string, so
// matching is stable across runtimes.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// AllWeekdays in calendar order, Monday first.
var AllWeekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ErrUnknownWeekday возвращается при неизвестном названии дня недели
var ErrUnknownWeekday = errors.New("unknown weekday")

var weekdayFromTime = map[time.Weekday]Weekday{
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
	time.Saturday:  Saturday,
	time.Sunday:    Sunday,
}

// WeekdayOf returns the canonical weekday of a calendar date.
func WeekdayOf(date time.Time) Weekday {
	return weekdayFromTime[date.Weekday()]
}

// ParseWeekday validates a client-supplied weekday name.
func ParseWeekday(s string) (Weekday, error) {
	for _, wd := range AllWeekdays {
		if string(wd) == s {
			return wd, nil
		}
	}
	return "", ErrUnknownWeekday
}
