// Package timeutil is the single place where stored timestamps are parsed and
// formatted. Stored values are ISO-8601 UTC strings with a trailing "Z".
package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// Layout is the at-rest representation of every timestamp.
const Layout = "2006-01-02T15:04:05Z"

// DateLayout is the layout of calendar dates in requests and reports.
const DateLayout = "2006-01-02"

var parseLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// ParseUTC parses a timestamp written either with a "Z" marker or an explicit
// "+00:00" offset, including the doubled "+00:00Z" form older clients send.
// Values without any zone are read as UTC. The result is always in UTC.
func ParseUTC(value string) (time.Time, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	if strings.HasSuffix(s, "+00:00Z") {
		s = strings.TrimSuffix(s, "Z")
	}
	if strings.HasSuffix(s, "z") {
		s = strings.TrimSuffix(s, "z") + "Z"
	}

	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", value)
}

// FormatUTC renders t in the at-rest layout, truncated to whole seconds.
func FormatUTC(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(Layout)
}

// FormatPtr formats an optional timestamp, returning nil for nil.
func FormatPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatUTC(*t)
	return &s
}

// ParseDate parses a YYYY-MM-DD calendar date as UTC midnight.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", value)
	}
	return t, nil
}

// DateOf returns the UTC calendar date of t as YYYY-MM-DD.
func DateOf(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// SameDate reports whether a and b fall on the same UTC calendar date.
func SameDate(a, b time.Time) bool {
	return DateOf(a) == DateOf(b)
}

// StartOfDay returns UTC midnight of t's UTC date.
func StartOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// StartOfWeek returns UTC midnight of the Monday of t's ISO week.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
