package services

import (
	"math"
	"reflect"
	"testing"
	"time"

	"horas/internal/core"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

// januaryRows yields effective week totals of [8, 40, 32, 40, 0] for
// January 2026. Every shift is 08:00-17:00, i.e. 9h raw and 8h effective.
func januaryRows() [][]string {
	rows := [][]string{{"Día", "Fecha", "Inicio", "Fin"}}
	add := func(days ...int) {
		for _, d := range days {
			rows = append(rows, row(core.FormatDate(core.NewDate(2026, 1, d).Time), "08:00", "17:00"))
		}
	}
	add(2)                  // week 1: Friday
	add(5, 6, 7, 8, 9)      // week 2
	add(12, 13, 14, 15)     // week 3
	add(19, 20, 21, 22, 23) // week 4
	rows = append(rows, row("31/1/2026", "-", "-", "Libre"))
	return rows
}

func TestSummarizeMonthWeekTotals(t *testing.T) {
	ts := BuildRecords(januaryRows(), 2026).Timesheet
	s := SummarizeMonth(ts, time.January, 0)

	want := []float64{8, 40, 32, 40, 0}
	if !reflect.DeepEqual(s.WeekTotals, want) {
		t.Fatalf("WeekTotals = %v, want %v", s.WeekTotals, want)
	}
	if !approx(s.Total, 120) || !approx(s.WeeklyAverage, 24) {
		t.Fatalf("Total = %v, WeeklyAverage = %v", s.Total, s.WeeklyAverage)
	}
	if s.BusiestWeek != 1 {
		t.Fatalf("BusiestWeek = %d, want 1 (first of the tie)", s.BusiestWeek)
	}
	if !approx(s.RawTotal, 135) || !approx(s.LunchTotal, 15) {
		t.Fatalf("RawTotal = %v, LunchTotal = %v", s.RawTotal, s.LunchTotal)
	}
	if s.DaysWithShift != 15 || len(s.LunchDays) != 15 {
		t.Fatalf("DaysWithShift = %d, LunchDays = %d", s.DaysWithShift, len(s.LunchDays))
	}
	if s.BusiestDay == nil || s.BusiestDay.Date.Day() != 2 {
		t.Fatalf("BusiestDay should be the first encountered maximum, got %+v", s.BusiestDay)
	}
	if s.BusiestWeekday != 0 {
		t.Fatalf("BusiestWeekday = %d, want 0 on an all-equal tie", s.BusiestWeekday)
	}
}

func TestSummarizeMonthSumProperties(t *testing.T) {
	rows := januaryRows()
	rows = append(rows,
		row("30/1/2026", "07:00", "19:15"),
		row("1/2/2026", "10:00", "14:00"),
		row("2/2/2026", "09:00", "15:00"),
		row("28/2/2026", "09:00", "15:01"),
		row("1/3/2026", "09:00", "18:00"),
	)
	ts := BuildRecords(rows, 2026).Timesheet

	for m := time.January; m <= time.December; m++ {
		s := SummarizeMonth(ts, m, 0)
		weekdaySum := sum(s.WeekdayTotals[:])
		weekSum := sum(s.WeekTotals)
		if !approx(weekdaySum, s.Total) || !approx(weekSum, s.Total) {
			t.Fatalf("%v: weekday sum %v, week sum %v, total %v", m, weekdaySum, weekSum, s.Total)
		}
		if !approx(s.WeeklyAverage*float64(len(s.Weeks)), s.Total) {
			t.Fatalf("%v: average %v x %d weeks != %v", m, s.WeeklyAverage, len(s.Weeks), s.Total)
		}
		if s.RawTotal+eps < s.Total {
			t.Fatalf("%v: raw total below effective total", m)
		}
	}
}

func TestSummarizeMonthClipsWeeksToMonth(t *testing.T) {
	rows := [][]string{
		row("30/1/2026", "08:00", "17:00"), // Friday, 8h effective
		row("1/2/2026", "10:00", "14:00"),  // Sunday, 4h
	}
	ts := BuildRecords(rows, 2026).Timesheet
	s := SummarizeMonth(ts, time.February, 0)

	if !approx(s.WeekTotals[0], 4) || !approx(s.Total, 4) {
		t.Fatalf("first week should only count February: %v total %v", s.WeekTotals, s.Total)
	}
	sel := s.SelectedWeek
	if sel.Index != 0 || !approx(sel.WeekdayTotals[4], 8) || !approx(sel.WeekdayTotals[6], 4) {
		t.Fatalf("selected week should cover the whole week: %+v", sel)
	}
}

func TestSummarizeMonthEmpty(t *testing.T) {
	ts := BuildRecords(nil, 2026).Timesheet
	s := SummarizeMonth(ts, time.March, 99)

	if s.BusiestDay != nil || s.Total != 0 || s.WeeklyAverage != 0 || s.BusiestWeek != 0 {
		t.Fatalf("unexpected empty summary: %+v", s)
	}
	if s.SelectedWeek.Index != len(s.Weeks)-1 {
		t.Fatalf("week index should clamp to the last week, got %d", s.SelectedWeek.Index)
	}
	kpis := MonthKPIs(s, core.MustLocale("es"))
	if kpis[0].Value != "--" || kpis[0].Hint != "No hay jornadas en este mes" {
		t.Fatalf("unexpected top day KPI: %+v", kpis[0])
	}
}

func TestSummarizeMonthLunchDaysSorted(t *testing.T) {
	rows := [][]string{
		row("20/1/2026", "08:00", "17:00"),
		row("10/1/2026", "08:00", "17:00"),
		row("15/1/2026", "08:00", "12:00"),
	}
	s := SummarizeMonth(BuildRecords(rows, 2026).Timesheet, time.January, 0)
	if len(s.LunchDays) != 2 || s.LunchDays[0].Date.Day() != 10 || s.LunchDays[1].Date.Day() != 20 {
		t.Fatalf("lunch days not sorted by date: %+v", s.LunchDays)
	}
}

func TestSummarizeMonthCalendar(t *testing.T) {
	ts := BuildRecords(januaryRows(), 2026).Timesheet
	s := SummarizeMonth(ts, time.January, 0)
	l := core.MustLocale("es")

	// January 2026 starts on a Thursday.
	for i := 0; i < 3; i++ {
		if s.Calendar[i].InMonth() {
			t.Fatalf("cell %d should be outside the month", i)
		}
	}
	if c := s.Calendar[3]; c.Day != 1 || c.Record != nil || CellText(c, l) != "Sin jornada" {
		t.Fatalf("unexpected cell for Jan 1: %+v", c)
	}
	if c := s.Calendar[4]; c.Day != 2 || CellText(c, l) != "8.0h · 08:00 – 17:00 🍽️" {
		t.Fatalf("unexpected cell for Jan 2: %q", CellText(c, l))
	}
	if c := s.Calendar[33]; c.Day != 31 || CellText(c, l) != "Libre" {
		t.Fatalf("unexpected cell for Jan 31: %+v", c)
	}
	if s.Calendar[34].InMonth() || s.Calendar[41].InMonth() {
		t.Fatalf("trailing cells should be outside the month")
	}
}

func TestSummarizeYear(t *testing.T) {
	rows := januaryRows()
	rows = append(rows,
		row("3/3/2026", "08:00", "20:00"), // 12h raw, 11h effective
		row("4/3/2026", "08:00", "20:00"),
		row("31/12/2026", "08:00", "10:00"),
	)
	ts := BuildRecords(rows, 2026).Timesheet
	s := SummarizeYear(ts)

	if !approx(s.Total, 120+22+2) {
		t.Fatalf("Total = %v", s.Total)
	}
	if !approx(s.MonthlyAverage, s.Total/12) {
		t.Fatalf("MonthlyAverage = %v", s.MonthlyAverage)
	}
	if s.BusiestMonth != time.January {
		t.Fatalf("BusiestMonth = %v", s.BusiestMonth)
	}
	if !approx(s.MonthTotals[2], 22) || !approx(s.MonthRawTotals[2], 24) || !approx(s.MonthLunchTotals[2], 2) {
		t.Fatalf("unexpected March totals: %v %v %v", s.MonthTotals[2], s.MonthRawTotals[2], s.MonthLunchTotals[2])
	}
	if !approx(sum(s.WeekTotals), s.Total) || !approx(sum(s.WeekdayTotals[:]), s.Total) {
		t.Fatalf("week/weekday sums do not match the total")
	}
	if s.DaysWithShift != 18 || s.DaysWithShift+s.DaysWithoutShift != 365 || s.DaysInYear != 365 {
		t.Fatalf("days with %d, without %d, in year %d", s.DaysWithShift, s.DaysWithoutShift, s.DaysInYear)
	}
	if len(s.Weeks) != 53 {
		t.Fatalf("expected 53 weeks, got %d", len(s.Weeks))
	}
	// Two January weeks tie at 40h; the earlier one wins.
	if !s.Weeks[s.BusiestWeek].Contains(core.NewDate(2026, 1, 5)) {
		t.Fatalf("BusiestWeek = %d", s.BusiestWeek)
	}
}

func TestSummarizeYearLeap(t *testing.T) {
	ts := BuildRecords([][]string{row("29/2/2028", "08:00", "12:00")}, 2028).Timesheet
	s := SummarizeYear(ts)
	if s.DaysInYear != 366 || s.DaysWithShift != 1 || s.DaysWithoutShift != 365 {
		t.Fatalf("unexpected leap year counts: %+v", s)
	}
}

func TestSummariesAreIdempotent(t *testing.T) {
	ts := BuildRecords(januaryRows(), 2026).Timesheet
	if !reflect.DeepEqual(SummarizeMonth(ts, time.January, 2), SummarizeMonth(ts, time.January, 2)) {
		t.Fatalf("month summary differs between runs")
	}
	if !reflect.DeepEqual(SummarizeYear(ts), SummarizeYear(ts)) {
		t.Fatalf("year summary differs between runs")
	}
}

func TestArgmaxFirstWins(t *testing.T) {
	cases := []struct {
		in   []float64
		want int
	}{
		{nil, 0},
		{[]float64{0, 0, 0}, 0},
		{[]float64{1, 3, 3}, 1},
		{[]float64{5, 1, 5}, 0},
	}
	for _, tc := range cases {
		if got := argmax(tc.in); got != tc.want {
			t.Fatalf("argmax(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
