package core

import (
	"errors"
	"time"
)

type (
	// Date is a naive calendar date. The wrapped time is always midnight UTC.
	Date struct {
		time.Time
	}

	// DayRecord is the normalized view of one timesheet row.
	DayRecord struct {
		Date    Date
		Weekday int // Monday = 0

		HasShift    bool
		StartMinute int
		EndMinute   int

		RawHours       float64 // informational only
		LunchHours     float64 // 0 or 1
		EffectiveHours float64 // the figure every aggregate uses

		Note  string
		Label string
	}

	// Week spans Monday 00:00:00.000 through Sunday 23:59:59.999, inclusive.
	Week struct {
		Start time.Time
		End   time.Time
	}
)

var (
	ErrInvalidDate = errors.New("invalid date")
	ErrNoTime      = errors.New("no time")
	ErrInvalidTime = errors.New("invalid time")
)

// LunchThresholdHours is the raw shift length above which one hour of lunch is deducted.
const LunchThresholdHours = 6.0

// NewDate creates a Date from year, month, day. Out-of-range values roll over
// to adjacent months the way time.Date normalizes them.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, int(m), d)
}

// Day returns the day of the month
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month (1-12)
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

// AddDays returns the date n days later (earlier for negative n).
func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

// Key is a compact yyyymmdd value usable as a map key.
func (d Date) Key() int {
	return d.Year()*10000 + d.Month()*100 + d.Day()
}

// Equal reports whether both values denote the same calendar date.
func (d Date) Equal(o Date) bool {
	return d.Key() == o.Key()
}

// WeekdayIndex maps the date to 0-6 with Monday = 0.
func WeekdayIndex(d Date) int {
	return (int(d.Weekday()) + 6) % 7
}

// LunchDeduction returns the lunch hours removed from a shift of rawHours.
// It is a step function: 6.00h keeps everything, 6.01h loses a full hour.
func LunchDeduction(rawHours float64) float64 {
	if rawHours > LunchThresholdHours {
		return 1
	}
	return 0
}

// EffectiveHours applies the lunch deduction and floors the result at zero.
func EffectiveHours(rawHours float64) float64 {
	return max(0, rawHours-LunchDeduction(rawHours))
}

// NewShiftDay builds the record of a day with a recognized start/end pair.
func NewShiftDay(date Date, startMinute, endMinute int, note string) DayRecord {
	raw := max(0, float64(endMinute-startMinute)/60)
	return DayRecord{
		Date:           date,
		Weekday:        WeekdayIndex(date),
		HasShift:       true,
		StartMinute:    startMinute,
		EndMinute:      endMinute,
		RawHours:       raw,
		LunchHours:     LunchDeduction(raw),
		EffectiveHours: EffectiveHours(raw),
		Note:           note,
		Label:          FormatClock(startMinute) + " – " + FormatClock(endMinute),
	}
}

// NewRestDay builds the record of a day without a shift. The label falls back
// to placeholder when the note is empty.
func NewRestDay(date Date, note, placeholder string) DayRecord {
	label := note
	if label == "" {
		label = placeholder
	}
	return DayRecord{
		Date:    date,
		Weekday: WeekdayIndex(date),
		Note:    note,
		Label:   label,
	}
}

// Contains reports whether the date falls inside the week, bounds included.
func (w Week) Contains(d Date) bool {
	return !d.Before(w.Start) && !d.After(w.End)
}
