package services

import (
	"sort"
	"time"

	"horas/internal/core"
)

// CalendarCells is the size of the month grid: six Monday-first weeks.
const CalendarCells = 42

// CalendarCell is one slot of the month grid. Cells outside the month have
// Day == 0 and no record.
type CalendarCell struct {
	Day    int
	Date   core.Date
	Record *core.DayRecord
}

// InMonth reports whether the cell belongs to the displayed month.
func (c CalendarCell) InMonth() bool {
	return c.Day > 0
}

// WeekView is the selected week with its per-weekday totals across the whole
// week, including days of the neighbouring months.
type WeekView struct {
	Index         int
	Week          core.Week
	WeekdayTotals [7]float64
}

// MonthSummary holds every aggregate shown for one month.
type MonthSummary struct {
	Year  int
	Month time.Month

	WeekdayTotals [7]float64
	Weeks         []core.Week
	WeekTotals    []float64

	Total         float64
	RawTotal      float64
	LunchTotal    float64
	DaysWithShift int

	BusiestDay     *core.DayRecord
	BusiestWeek    int
	WeeklyAverage  float64
	BusiestWeekday int

	LunchDays []core.DayRecord

	SelectedWeek WeekView
	Calendar     [CalendarCells]CalendarCell
}

// YearSummary holds the yearly aggregates.
type YearSummary struct {
	Year int

	Total      float64
	RawTotal   float64
	LunchTotal float64

	MonthTotals      [12]float64
	MonthRawTotals   [12]float64
	MonthLunchTotals [12]float64
	MonthlyAverage   float64
	BusiestMonth     time.Month

	Weeks       []core.Week
	WeekTotals  []float64
	BusiestWeek int

	WeekdayTotals  [7]float64
	BusiestWeekday int

	DaysWithShift    int
	DaysWithoutShift int
	DaysInYear       int
}

// SummarizeMonth aggregates the shift days of one month. weekIndex selects the
// week shown in detail and is clamped to the weeks of the month.
//
// Week totals only count days of the month itself, so the weekday totals, the
// week totals and Total all add up to the same figure. At month edges this
// makes BusiestWeek and WeeklyAverage differ from a whole-week rollup, which
// would also count the neighbouring month's days.
func SummarizeMonth(ts *core.Timesheet, month time.Month, weekIndex int) MonthSummary {
	year := 0
	if ts != nil {
		year = ts.Year
	}
	s := MonthSummary{
		Year:  year,
		Month: month,
		Weeks: core.WeeksOverlappingMonth(year, month),
	}
	s.WeekTotals = make([]float64, len(s.Weeks))

	for _, d := range ts.ShiftDays(core.InMonth(month)) {
		s.WeekdayTotals[d.Weekday] += d.EffectiveHours
		s.Total += d.EffectiveHours
		s.RawTotal += d.RawHours
		s.LunchTotal += d.LunchHours
		s.DaysWithShift++

		if s.BusiestDay == nil || d.EffectiveHours > s.BusiestDay.EffectiveHours {
			day := d
			s.BusiestDay = &day
		}
		if d.LunchHours > 0 {
			s.LunchDays = append(s.LunchDays, d)
		}
		for i, w := range s.Weeks {
			if w.Contains(d.Date) {
				s.WeekTotals[i] += d.EffectiveHours
				break
			}
		}
	}

	sort.SliceStable(s.LunchDays, func(i, j int) bool {
		return s.LunchDays[i].Date.Before(s.LunchDays[j].Date.Time)
	})

	s.BusiestWeek = argmax(s.WeekTotals)
	s.BusiestWeekday = argmax(s.WeekdayTotals[:])
	if len(s.Weeks) > 0 {
		s.WeeklyAverage = sum(s.WeekTotals) / float64(len(s.Weeks))
	}

	s.SelectedWeek = selectWeek(ts, s.Weeks, weekIndex)
	s.Calendar = monthCalendar(ts, year, month)
	return s
}

// SummarizeYear aggregates every shift day of the timesheet year.
func SummarizeYear(ts *core.Timesheet) YearSummary {
	year := 0
	if ts != nil {
		year = ts.Year
	}
	s := YearSummary{
		Year:       year,
		Weeks:      core.WeeksOfYear(year),
		DaysInYear: core.DaysInYear(year),
	}
	s.WeekTotals = make([]float64, len(s.Weeks))

	for _, d := range ts.ShiftDays(func(d core.DayRecord) bool { return d.Date.Year() == year }) {
		m := d.Date.Month() - 1
		s.Total += d.EffectiveHours
		s.RawTotal += d.RawHours
		s.LunchTotal += d.LunchHours
		s.MonthTotals[m] += d.EffectiveHours
		s.MonthRawTotals[m] += d.RawHours
		s.MonthLunchTotals[m] += d.LunchHours
		s.WeekdayTotals[d.Weekday] += d.EffectiveHours

		for i, w := range s.Weeks {
			if w.Contains(d.Date) {
				s.WeekTotals[i] += d.EffectiveHours
				break
			}
		}
	}

	s.MonthlyAverage = sum(s.MonthTotals[:]) / 12
	s.BusiestMonth = time.Month(argmax(s.MonthTotals[:]) + 1)
	s.BusiestWeek = argmax(s.WeekTotals)
	s.BusiestWeekday = argmax(s.WeekdayTotals[:])

	// Every calendar day counts, including those without a source row.
	for d := core.NewDate(year, 1, 1); d.Year() == year; d = d.AddDays(1) {
		if rec, ok := ts.Lookup(d); ok && rec.HasShift {
			s.DaysWithShift++
		} else {
			s.DaysWithoutShift++
		}
	}
	return s
}

func selectWeek(ts *core.Timesheet, weeks []core.Week, index int) WeekView {
	if len(weeks) == 0 {
		return WeekView{}
	}
	index = ClampWeek(index, len(weeks))
	v := WeekView{Index: index, Week: weeks[index]}
	for _, d := range ts.ShiftDays(func(d core.DayRecord) bool { return v.Week.Contains(d.Date) }) {
		v.WeekdayTotals[d.Weekday] += d.EffectiveHours
	}
	return v
}

func monthCalendar(ts *core.Timesheet, year int, month time.Month) [CalendarCells]CalendarCell {
	var cells [CalendarCells]CalendarCell
	first := core.NewDate(year, int(month), 1)
	offset := core.WeekdayIndex(first)
	days := core.DaysInMonth(year, month)

	for i := range cells {
		n := i - offset + 1
		if n < 1 || n > days {
			continue
		}
		date := core.NewDate(year, int(month), n)
		cells[i] = CalendarCell{Day: n, Date: date}
		if rec, ok := ts.Lookup(date); ok {
			cells[i].Record = &rec
		}
	}
	return cells
}

// argmax returns the index of the largest value; the first one wins ties.
func argmax(values []float64) int {
	best := 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[best] {
			best = i
		}
	}
	return best
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}
