// Package validation holds the pure domain rules: calendar-date checks,
// age calculation and the per-platform channel URL patterns. No I/O, no
// clock reads — "today" is always passed in by the caller.
package validation

import "time"

const dateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date. Malformed input yields
// ok=false rather than an error; callers treat it as a validation failure.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// DateOnly truncates a timestamp to its calendar day.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfDay and EndOfDay give the inclusive full-day recruitment window
// bounds for a calendar date.
func StartOfDay(t time.Time) time.Time {
	return DateOnly(t)
}

func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// IsDateRangeValid reports whether start is strictly before end, comparing
// calendar days.
func IsDateRangeValid(start, end time.Time) bool {
	return DateOnly(start).Before(DateOnly(end))
}

// IsRecruitmentWindowOpen reports whether today falls inside [start, end],
// inclusive on both ends, comparing calendar days.
func IsRecruitmentWindowOpen(start, end, today time.Time) bool {
	d := DateOnly(today)
	return !d.Before(DateOnly(start)) && !d.After(DateOnly(end))
}

// IsFutureOrToday reports whether date is today or later.
func IsFutureOrToday(date, today time.Time) bool {
	return !DateOnly(date).Before(DateOnly(today))
}

// Age returns the full-years age at today for the given birth date: the
// year difference, minus one if today's month/day precedes the birthday.
func Age(birth, today time.Time) int {
	age := today.Year() - birth.Year()
	if today.Month() < birth.Month() ||
		(today.Month() == birth.Month() && today.Day() < birth.Day()) {
		age--
	}
	return age
}
