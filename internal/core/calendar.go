package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDate parses "D/M/Y" text. Day, month and year must be present, numeric
// and non-zero; calendar correctness is not checked, so 31/4/2026 rolls over
// to 1 May. Parts after the year are ignored.
func ParseDate(text string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(text), "/")
	if len(parts) < 3 {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, text)
	}
	var dmy [3]int
	for i := range dmy {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || n == 0 {
			return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, text)
		}
		dmy[i] = n
	}
	return NewDate(dmy[2], dmy[1], dmy[0]), nil
}

// StartOfWeek floors the date to the Monday of its week.
func StartOfWeek(d Date) Date {
	return d.AddDays(-WeekdayIndex(d))
}

// EndOfWeek returns Sunday 23:59:59.999 of the date's week.
func EndOfWeek(d Date) time.Time {
	return StartOfWeek(d).AddDays(6).Add(24*time.Hour - time.Millisecond)
}

// WeekOf returns the Monday-start week containing d.
func WeekOf(d Date) Week {
	return Week{Start: StartOfWeek(d).Time, End: EndOfWeek(d)}
}

// WeeksOverlappingMonth lists the weeks that share at least one day with the month.
func WeeksOverlappingMonth(year int, month time.Month) []Week {
	first := NewDate(year, int(month), 1)
	last := NewDate(year, int(month)+1, 0)

	var weeks []Week
	for cursor := StartOfWeek(first); !cursor.After(last.Time); cursor = cursor.AddDays(7) {
		w := WeekOf(cursor)
		if !w.End.Before(first.Time) && !w.Start.After(last.Time) {
			weeks = append(weeks, w)
		}
	}
	return weeks
}

// WeeksOfYear lists every week touched by the year, including the leading and
// trailing days that belong to the neighbouring years.
func WeeksOfYear(year int) []Week {
	last := NewDate(year, 12, 31)

	var weeks []Week
	for cursor := StartOfWeek(NewDate(year, 1, 1)); !cursor.After(last.Time); cursor = cursor.AddDays(7) {
		weeks = append(weeks, WeekOf(cursor))
	}
	return weeks
}

// DaysInMonth returns the number of days of the month.
func DaysInMonth(year int, month time.Month) int {
	return NewDate(year, int(month)+1, 0).Day()
}

// DaysInYear returns 366 for leap years and 365 otherwise.
func DaysInYear(year int) int {
	return NewDate(year, 12, 31).YearDay()
}
