package recon

import (
	"strings"
	"time"
)

// Date layouts accepted by the combiner, in probe order. Day-first layouts
// come before month-first ones because the source reports use them.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"02/01/2006",
	"02/01/2006 15:04:05",
	"02-01-2006",
	"2/1/2006",
}

// Clock layouts accepted for the time-of-day component.
var clockLayouts = []string{
	"15:04:05",
	"15:04",
	"3:04:05 PM",
	"3:04 PM",
}

// CombineDateTime merges a date-like value and an optional time-of-day value
// into a single point in time. The date is parsed permissively; any time
// carried inside the date value itself is discarded. A missing or unparsable
// clock defaults to midnight. An unparsable date yields ok=false; parsing
// failures never propagate as errors.
func CombineDateTime(date, clock string) (time.Time, bool) {
	d, ok := parseDate(strings.TrimSpace(date))
	if !ok {
		return time.Time{}, false
	}
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)

	h, m, s, ok := parseClock(strings.TrimSpace(clock))
	if !ok {
		return day, true
	}
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second), true
}

// ParseTimestamp parses a full point-in-time value such as a ticket's START
// TIME cell, probing the same permissive layout list as the combiner but
// keeping any time-of-day the value carries.
func ParseTimestamp(v string) (time.Time, bool) {
	return parseDate(strings.TrimSpace(v))
}

func parseDate(v string) (time.Time, bool) {
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseClock(v string) (h, m, s int, ok bool) {
	if v == "" {
		return 0, 0, 0, false
	}
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			h, m, s = t.Clock()
			return h, m, s, true
		}
	}
	return 0, 0, 0, false
}
