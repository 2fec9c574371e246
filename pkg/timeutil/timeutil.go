package timeutil

import (
	"errors"
	"fmt"
	"time"
)

const (
	// DateLayout is the calendar date format accepted from users
	DateLayout = "2006-01-02"
	// ClockLayout is the wall-clock time format accepted from users
	ClockLayout = "15:04"
)

var (
	// ErrInvalidFormat indicates a date or time string that does not match the expected layout
	ErrInvalidFormat = errors.New("invalid date/time format")
	// ErrUnknownTimezone indicates an unresolvable IANA timezone identifier
	ErrUnknownTimezone = errors.New("unknown timezone")
)

// ToUTC normalizes any instant to UTC. Instants without an explicit offset
// already carry the UTC location in Go, so the conversion is idempotent.
func ToUTC(t time.Time) time.Time {
	return t.UTC()
}

// NowUTC returns the current instant in UTC
func NowUTC() time.Time {
	return time.Now().UTC()
}

// LocalToUTC parses a calendar date and a wall-clock time as they would read
// on a clock in the given timezone and resolves the single corresponding UTC
// instant, honoring the zone's DST rules.
func LocalToUTC(dateStr, timeStr, tzName string) (time.Time, error) {
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", ErrUnknownTimezone, tzName)
	}

	local, err := time.ParseInLocation(DateLayout+" "+ClockLayout, dateStr+" "+timeStr, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q %q", ErrInvalidFormat, dateStr, timeStr)
	}

	return local.UTC(), nil
}

// FormatInTimezone renders a UTC instant in the given timezone for display,
// including the numeric UTC offset, e.g. "2024-11-29 14:30 (UTC+3)".
// An unresolvable timezone falls back to UTC so the display path never fails.
func FormatInTimezone(t time.Time, tzName string) string {
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		loc = time.UTC
	}

	local := ToUTC(t).In(loc)
	_, offsetSeconds := local.Zone()

	// Floor division so fractional negative offsets round down, not toward zero
	offsetHours := offsetSeconds / 3600
	if offsetSeconds < 0 && offsetSeconds%3600 != 0 {
		offsetHours--
	}

	return local.Format(DateLayout+" "+ClockLayout) + fmt.Sprintf(" (UTC%+d)", offsetHours)
}

// InferCheckpointTime resolves a time-of-day entered for a checkpoint into a
// full UTC instant. The calendar date is taken from the reference instant
// (previous checkpoint or departure) converted into the user's timezone; when
// the resulting candidate would not be after the reference, the date advances
// by one day. This handles checkpoints logged shortly after local midnight,
// e.g. departure 20:00 on Nov 27 with checkpoint "01:43" resolving to Nov 28.
// The result is always strictly after the reference.
func InferCheckpointTime(timeStr string, reference time.Time, tzName string) (time.Time, error) {
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", ErrUnknownTimezone, tzName)
	}

	clock, err := time.Parse(ClockLayout, timeStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidFormat, timeStr)
	}

	refLocal := ToUTC(reference).In(loc)
	candidate := time.Date(refLocal.Year(), refLocal.Month(), refLocal.Day(),
		clock.Hour(), clock.Minute(), 0, 0, loc)

	// Same or earlier wall clock means the checkpoint is on the next day
	if !candidate.After(refLocal) {
		candidate = candidate.AddDate(0, 0, 1)
	}

	return candidate.UTC(), nil
}
