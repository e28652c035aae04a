package scraper

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var dateRegex = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// ParseTimeRange parses a textual "HH:MM - HH:MM" range. It returns the
// start minute-of-day, the duration in minutes, and whether the start token
// was usable at all. The duration is nil when the text does not split into
// exactly two parseable clock tokens; callers treat that as "duration
// unknown", not as a bad row. An unusable start token (ok == false)
// invalidates the whole row.
func ParseTimeRange(text string) (startMin int, durationMin *int, ok bool) {
	parts := strings.Split(text, "-")

	if len(parts) == 2 {
		start, startOK := parseClock(parts[0])
		end, endOK := parseClock(parts[1])
		if startOK && endOK {
			d := end - start
			durationMin = &d
		}
	}

	startMin, ok = parseClock(parts[0])
	return startMin, durationMin, ok
}

// parseClock converts a "HH:MM" token into a minute-of-day count.
func parseClock(s string) (int, bool) {
	pieces := strings.Split(strings.TrimSpace(s), ":")
	if len(pieces) != 2 {
		return 0, false
	}
	hour, err := strconv.Atoi(pieces[0])
	if err != nil {
		return 0, false
	}
	minute, err := strconv.Atoi(pieces[1])
	if err != nil {
		return 0, false
	}
	return hour*60 + minute, true
}

// ParseAgendaDate extracts the first ISO date (YYYY-MM-DD) from a label such
// as "Pn, 2025-11-24" and parses it. The locale weekday prefix and any other
// surrounding text are ignored.
func ParseAgendaDate(text string) (time.Time, bool) {
	match := dateRegex.FindString(text)
	if match == "" {
		return time.Time{}, false
	}
	d, err := time.Parse("2006-01-02", match)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// ValidMonday resolves the Monday anchoring a requested week. With a nil
// target it returns the Monday of the week containing today. A non-nil
// target must itself be a Monday and no more than 14 days before today.
// The current day is injected so the function stays deterministic.
func ValidMonday(target *time.Time, today time.Time) (time.Time, error) {
	if target == nil {
		return MondayOf(today), nil
	}
	if target.Weekday() != time.Monday {
		return time.Time{}, ErrNotMonday
	}
	if target.Before(today.AddDate(0, 0, -14)) {
		return time.Time{}, ErrTooOld
	}
	return *target, nil
}

// MondayOf returns the Monday of the week containing d.
func MondayOf(d time.Time) time.Time {
	daysFromMonday := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -daysFromMonday)
}
