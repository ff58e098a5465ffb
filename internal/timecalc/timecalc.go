package timecalc

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ISODate is the date layout used throughout the grid (YYYY-MM-DD).
const ISODate = "2006-01-02"

// WeekStart returns the Monday of the ISO week containing t, at midnight.
func WeekStart(t time.Time) time.Time {
	// Go's weekday: Sunday=0, Monday=1, …, Saturday=6
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7 // treat Sunday as 7 (ISO)
	}
	monday := t.AddDate(0, 0, -(wd - 1))
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, t.Location())
}

// WeekDates returns the seven ISO date strings Monday through Sunday for the
// week starting at monday.
func WeekDates(monday time.Time) []string {
	dates := make([]string, 7)
	for i := 0; i < 7; i++ {
		dates[i] = monday.AddDate(0, 0, i).Format(ISODate)
	}
	return dates
}

// WeekEnd returns the Sunday of the week starting at monday, as an ISO date.
func WeekEnd(monday time.Time) string {
	return monday.AddDate(0, 0, 6).Format(ISODate)
}

// ParseDate parses an ISO date string (YYYY-MM-DD).
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(ISODate, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// IsWeekend reports whether the ISO date falls on Saturday or Sunday.
// Unparseable dates are treated as weekdays.
func IsWeekend(date string) bool {
	t, err := ParseDate(date)
	if err != nil {
		return false
	}
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Year returns the four-digit year of an ISO date string.
func Year(date string) string {
	if len(date) < 4 {
		return date
	}
	return date[:4]
}

// WeekLabel returns a label like "2026-W09" for the ISO week containing t.
func WeekLabel(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// FormatHours renders an hour count compactly: "8" rather than "8.00",
// "7.5" rather than "7.50".
func FormatHours(h float64) string {
	s := strconv.FormatFloat(h, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// Weekday returns the short weekday name ("Mon") for an ISO date.
func Weekday(date string) string {
	t, err := ParseDate(date)
	if err != nil {
		return "?"
	}
	return t.Format("Mon")
}
