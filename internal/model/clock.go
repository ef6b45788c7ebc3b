package model

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	clockPattern    = regexp.MustCompile(`(?i)^(\d{1,2})(?::(\d{2}))?\s*(am|pm)?$`)
	durationPattern = regexp.MustCompile(`(?i)^(\d+(?:\.\d+)?)\s+([a-z]+)$`)
)

// ClockOn resolves a time token such as "2:30 PM" or "14" against day. The
// token is taken as typed by the planner, so anything out of range reports
// false instead of guessing.
func ClockOn(token string, day time.Time) (time.Time, bool) {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(token))
	if m == nil {
		return time.Time{}, false
	}
	hour, _ := strconv.Atoi(m[1])
	minute := 0
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	if minute > 59 {
		return time.Time{}, false
	}
	switch strings.ToLower(m[3]) {
	case "am":
		if hour < 1 || hour > 12 {
			return time.Time{}, false
		}
		if hour == 12 {
			hour = 0
		}
	case "pm":
		if hour < 1 || hour > 12 {
			return time.Time{}, false
		}
		if hour != 12 {
			hour += 12
		}
	default:
		if hour > 23 {
			return time.Time{}, false
		}
	}
	y, mo, d := day.Date()
	return time.Date(y, mo, d, hour, minute, 0, 0, day.Location()), true
}

// SpanOf converts a duration string produced by the scratchpad parser
// ("1.5 hours", "45 min") into a time.Duration.
func SpanOf(duration string) (time.Duration, bool) {
	m := durationPattern.FindStringSubmatch(strings.TrimSpace(duration))
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	switch strings.ToLower(m[2]) {
	case "hour", "hours", "hr", "hrs":
		return time.Duration(n * float64(time.Hour)), true
	case "min", "mins", "minute", "minutes":
		return time.Duration(n * float64(time.Minute)), true
	default:
		return 0, false
	}
}
