package core

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want Date
		ok   bool
	}{
		{"5/1/2026", NewDate(2026, 1, 5), true},
		{"05/01/2026", NewDate(2026, 1, 5), true},
		{" 31/12/2026 ", NewDate(2026, 12, 31), true},
		{"31/4/2026", NewDate(2026, 5, 1), true},  // rollover
		{"30/2/2026", NewDate(2026, 3, 2), true},  // rollover
		{"1/13/2026", NewDate(2027, 1, 1), true},  // month rollover
		{"1/1/2026/extra", NewDate(2026, 1, 1), true},
		{"0/1/2026", Date{}, false},
		{"1/0/2026", Date{}, false},
		{"1/1/0", Date{}, false},
		{"1/1", Date{}, false},
		{"a/1/2026", Date{}, false},
		{"", Date{}, false},
		{"//", Date{}, false},
	}
	for _, tc := range cases {
		got, err := ParseDate(tc.in)
		if tc.ok {
			if err != nil || !got.Equal(tc.want) {
				t.Fatalf("%q expected %v, got %v (err=%v)", tc.in, tc.want, got, err)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("%q expected ErrInvalidDate, got %v", tc.in, err)
		}
	}
}

func TestParseDateRolloverGrid(t *testing.T) {
	for m := 1; m <= 12; m++ {
		for d := 1; d <= 31; d++ {
			got, err := ParseDate(fmt.Sprintf("%d/%d/2026", d, m))
			if err != nil {
				t.Fatalf("%d/%d: %v", d, m, err)
			}
			want := time.Date(2026, time.Month(m), d, 0, 0, 0, 0, time.UTC)
			if !got.Time.Equal(want) {
				t.Fatalf("%d/%d: got %v want %v", d, m, got.Time, want)
			}
		}
	}
}

func TestStartAndEndOfWeek(t *testing.T) {
	// Sunday 2026-03-01 belongs to the week starting Monday 2026-02-23.
	sun := NewDate(2026, 3, 1)
	if got := StartOfWeek(sun); !got.Equal(NewDate(2026, 2, 23)) {
		t.Fatalf("StartOfWeek(sun) = %v", got)
	}
	end := EndOfWeek(sun)
	want := time.Date(2026, 3, 1, 23, 59, 59, int(999*time.Millisecond), time.UTC)
	if !end.Equal(want) {
		t.Fatalf("EndOfWeek(sun) = %v, want %v", end, want)
	}

	mon := NewDate(2026, 3, 2)
	if got := StartOfWeek(mon); !got.Equal(mon) {
		t.Fatalf("Monday should be its own week start, got %v", got)
	}
}

func TestWeekContainsBounds(t *testing.T) {
	w := WeekOf(NewDate(2026, 1, 7))
	if !w.Contains(NewDate(2026, 1, 5)) || !w.Contains(NewDate(2026, 1, 11)) {
		t.Fatalf("week should include Monday and Sunday")
	}
	if w.Contains(NewDate(2026, 1, 4)) || w.Contains(NewDate(2026, 1, 12)) {
		t.Fatalf("week should exclude neighbouring days")
	}
}

func TestWeeksOverlappingMonth(t *testing.T) {
	cases := []struct {
		year      int
		month     time.Month
		count     int
		firstFrom Date
		lastFrom  Date
	}{
		// January 2026 starts on Thursday and ends on Saturday.
		{2026, time.January, 5, NewDate(2025, 12, 29), NewDate(2026, 1, 26)},
		// February 2026 starts on Sunday and ends on Saturday.
		{2026, time.February, 5, NewDate(2026, 1, 26), NewDate(2026, 2, 23)},
		// February 2021 starts on Monday and ends on Sunday: exactly four weeks.
		{2021, time.February, 4, NewDate(2021, 2, 1), NewDate(2021, 2, 22)},
		// March 2026 starts on Sunday and ends on Tuesday.
		{2026, time.March, 6, NewDate(2026, 2, 23), NewDate(2026, 3, 30)},
	}
	for _, tc := range cases {
		weeks := WeeksOverlappingMonth(tc.year, tc.month)
		if len(weeks) != tc.count {
			t.Fatalf("%d-%02d: expected %d weeks, got %d", tc.year, tc.month, tc.count, len(weeks))
		}
		if !weeks[0].Start.Equal(tc.firstFrom.Time) {
			t.Fatalf("%d-%02d: first week starts %v", tc.year, tc.month, weeks[0].Start)
		}
		if !weeks[len(weeks)-1].Start.Equal(tc.lastFrom.Time) {
			t.Fatalf("%d-%02d: last week starts %v", tc.year, tc.month, weeks[len(weeks)-1].Start)
		}
	}
}

func TestWeeksOfYear(t *testing.T) {
	weeks := WeeksOfYear(2026)
	if len(weeks) != 53 {
		t.Fatalf("expected 53 weeks touching 2026, got %d", len(weeks))
	}
	if !weeks[0].Start.Equal(NewDate(2025, 12, 29).Time) {
		t.Fatalf("first week should start in 2025, got %v", weeks[0].Start)
	}
	if !weeks[len(weeks)-1].Contains(NewDate(2026, 12, 31)) {
		t.Fatalf("last week should contain Dec 31")
	}
	for i := 1; i < len(weeks); i++ {
		if got := weeks[i].Start.Sub(weeks[i-1].Start); got != 7*24*time.Hour {
			t.Fatalf("weeks %d and %d are %v apart", i-1, i, got)
		}
	}
}

func TestDaysInYearAndMonth(t *testing.T) {
	if DaysInYear(2026) != 365 || DaysInYear(2028) != 366 || DaysInYear(2100) != 365 {
		t.Fatalf("unexpected DaysInYear")
	}
	if DaysInMonth(2028, time.February) != 29 || DaysInMonth(2026, time.February) != 28 {
		t.Fatalf("unexpected February length")
	}
	if DaysInMonth(2026, time.December) != 31 {
		t.Fatalf("unexpected December length")
	}
}
