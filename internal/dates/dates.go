// Package dates resolves the heterogeneous date strings scraped off review
// pages, both absolute calendar dates in several formats and relative
// elapsed expressions like "3 months ago", and answers inclusive
// range-membership queries over them.
package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	yearMonthDayRe = regexp.MustCompile(`^\s*(\d{4})/(\d{1,2})/(\d{1,2})\s*$`)
	monthDayYearRe = regexp.MustCompile(`^\s*(\d{1,2})/(\d{1,2})/(\d{4})\s*$`)
	relativeRe     = regexp.MustCompile(`(?i)(\d+)\s*(year|month|week|day)s?`)
)

// Layouts tried, in order, when a string matches none of the explicit
// slash-separated patterns. Last-resort parsing; failure yields a zero date.
var fallbackLayouts = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"2006-01-02",
	"January 2006",
	"Jan 2006",
}

// ResolveAbsolute parses an absolute date string. Recognizes YYYY/MM/DD and
// MM/DD/YYYY explicitly, then falls through to a general layout list.
func ResolveAbsolute(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if m := yearMonthDayRe.FindStringSubmatch(s); m != nil {
		return dateFromParts(m[1], m[2], m[3])
	}
	if m := monthDayYearRe.FindStringSubmatch(s); m != nil {
		return dateFromParts(m[3], m[1], m[2])
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return truncate(t), true
		}
	}
	return time.Time{}, false
}

// ResolveRelative parses an elapsed-time expression ("2 months ago",
// "1 year ago") against the given reference instant. Month subtraction
// borrows twelve months per negative overflow so that, e.g., "14 months ago"
// from 2024-03-15 resolves to 2023-01-15.
func ResolveRelative(s string, now time.Time) (time.Time, bool) {
	m := relativeRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return time.Time{}, false
	}

	now = truncate(now)
	switch strings.ToLower(m[2]) {
	case "year":
		return time.Date(now.Year()-n, now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), true
	case "month":
		year, month := now.Year(), int(now.Month())-n
		for month <= 0 {
			month += 12
			year--
		}
		return time.Date(year, time.Month(month), now.Day(), 0, 0, 0, 0, time.UTC), true
	case "week":
		return now.AddDate(0, 0, -7*n), true
	case "day":
		return now.AddDate(0, 0, -n), true
	}
	return time.Time{}, false
}

// Resolve picks the resolution path by inspecting the string: expressions
// containing a relative unit keyword take the relative path, everything else
// the absolute one. An unresolvable string yields (zero, false) and is
// treated as out-of-range by callers.
func Resolve(s string, now time.Time) (time.Time, bool) {
	if relativeRe.MatchString(s) && containsUnitWord(s) {
		return ResolveRelative(s, now)
	}
	return ResolveAbsolute(s)
}

// InRange reports start <= d <= end, inclusive at both endpoints, comparing
// calendar dates only.
func InRange(d, start, end time.Time) bool {
	d, start, end = truncate(d), truncate(start), truncate(end)
	return !d.Before(start) && !d.After(end)
}

func containsUnitWord(s string) bool {
	lower := strings.ToLower(s)
	for _, unit := range []string{"year", "month", "week", "day"} {
		if strings.Contains(lower, unit) {
			return true
		}
	}
	return false
}

func dateFromParts(year, month, day string) (time.Time, bool) {
	y, _ := strconv.Atoi(year)
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, false
	}
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC), true
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
