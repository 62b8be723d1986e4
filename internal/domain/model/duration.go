package model

import (
	"errors"
	"fmt"
	"time"
)

// Duration is one of the fixed internship lengths offered on the intake form.
type Duration string

const (
	Duration4Weeks  Duration = "4w"
	Duration6Weeks  Duration = "6w"
	Duration8Weeks  Duration = "8w"
	Duration6Months Duration = "6m"
)

// ErrInvalidDuration is returned for unknown duration codes.
var ErrInvalidDuration = errors.New("invalid duration")

// ErrInvalidDate is returned when a date is not in DateLayout.
var ErrInvalidDate = errors.New("invalid date")

// Durations lists the accepted codes in display order.
func Durations() []Duration {
	return []Duration{Duration4Weeks, Duration6Weeks, Duration8Weeks, Duration6Months}
}

// Label returns a human readable label.
func (d Duration) Label() string {
	switch d {
	case Duration4Weeks:
		return "4 Weeks"
	case Duration6Weeks:
		return "6 Weeks"
	case Duration8Weeks:
		return "8 Weeks"
	case Duration6Months:
		return "6 Months"
	default:
		return string(d)
	}
}

// Valid reports whether d is a known code.
func (d Duration) Valid() bool {
	switch d {
	case Duration4Weeks, Duration6Weeks, Duration8Weeks, Duration6Months:
		return true
	}
	return false
}

// EndDate adds the duration to start. Week durations add whole days;
// 6m adds calendar months, so Aug 31 + 6m normalizes to Mar 3 (or Mar 2 in a
// leap year) the way time.AddDate does.
func (d Duration) EndDate(start time.Time) (time.Time, error) {
	switch d {
	case Duration4Weeks:
		return start.AddDate(0, 0, 4*7), nil
	case Duration6Weeks:
		return start.AddDate(0, 0, 6*7), nil
	case Duration8Weeks:
		return start.AddDate(0, 0, 8*7), nil
	case Duration6Months:
		return start.AddDate(0, 6, 0), nil
	default:
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDuration, string(d))
	}
}

// EndDateString parses start in DateLayout and formats the end date the same way.
func (d Duration) EndDateString(start string) (string, error) {
	t, err := time.Parse(DateLayout, start)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, start)
	}
	end, err := d.EndDate(t)
	if err != nil {
		return "", err
	}
	return end.Format(DateLayout), nil
}
