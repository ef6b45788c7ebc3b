package model

import (
	"fmt"
	"time"
)

const dateKeyLayout = "2006-01-02"

// DateKey formats the local wall-clock date as YYYY-MM-DD. Keys compare in
// calendar order as plain strings.
func DateKey(t time.Time) string {
	y, m, d := t.Date()
	return fmt.Sprintf("%04d-%02d-%02d", y, int(m), d)
}

func ParseDateKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(dateKeyLayout, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("model: invalid date key %q: %w", key, err)
	}
	return t, nil
}

// StartOfDay drops the clock part while keeping the location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func SameDay(a, b time.Time) bool {
	return DateKey(a) == DateKey(b)
}

// MondayOfWeek returns the Monday that starts the week containing t. Sunday
// belongs to the week that started six days earlier.
func MondayOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	offset := int(day.Weekday()) - int(time.Monday)
	if day.Weekday() == time.Sunday {
		offset = 6
	}
	return day.AddDate(0, 0, -offset)
}

func WeekDays(monday time.Time) []time.Time {
	out := make([]time.Time, 0, 7)
	for i := 0; i < 7; i++ {
		out = append(out, monday.AddDate(0, 0, i))
	}
	return out
}

// FormatLongDate renders "October 15, 2026".
func FormatLongDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

// FormatWeekRange renders "Oct 12 - Oct 18" for the week starting at monday.
func FormatWeekRange(monday time.Time) string {
	end := monday.AddDate(0, 0, 6)
	return fmt.Sprintf("%s %d - %s %d", monday.Format("Jan"), monday.Day(), end.Format("Jan"), end.Day())
}

// FormatTimer renders seconds as m:ss.
func FormatTimer(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
