package services

import (
	"fmt"
	"strconv"

	"horas/internal/core"
)

// KPI identifiers, stable across locales.
const (
	KPITopDay          = "top_day"
	KPITopWeek         = "top_week"
	KPIMonthTotal      = "month_total"
	KPIWeekAverage     = "week_average"
	KPITopWeekday      = "top_weekday"
	KPIDaysWithShift   = "days_with_shift"
	KPILunchDays       = "lunch_days"
	KPILunchHours      = "lunch_hours"
	KPIRawTotal        = "raw_total"
	KPIYearTotal       = "year_total"
	KPIMonthAverage    = "month_average"
	KPITopMonth        = "top_month"
	KPIYearTopWeek     = "year_top_week"
	KPIYearTopWeekday  = "year_top_weekday"
	KPIYearLunchHours  = "year_lunch_hours"
	KPIYearDaysWith    = "year_days_with_shift"
	KPIYearDaysWithout = "year_days_without_shift"
	KPIYearRawTotal    = "year_raw_total"
)

// KPI is one headline figure with its explanatory hint.
type KPI struct {
	ID    string `json:"id" yaml:"id"`
	Value string `json:"value" yaml:"value"`
	Hint  string `json:"hint" yaml:"hint"`
}

// MonthKPIs renders the monthly headline figures.
func MonthKPIs(s MonthSummary, l core.Locale) []KPI {
	topDay := KPI{ID: KPITopDay, Value: "--", Hint: l.NoShiftsInMonth}
	if s.BusiestDay != nil {
		topDay.Value = core.FormatDayMonth(s.BusiestDay.Date.Time)
		topDay.Hint = ShiftText(*s.BusiestDay, l)
	}

	topWeek := KPI{ID: KPITopWeek, Value: l.WeekName(s.BusiestWeek)}
	if s.BusiestWeek < len(s.Weeks) {
		topWeek.Hint = fmt.Sprintf("%s · %s",
			core.FormatHours(s.WeekTotals[s.BusiestWeek]), l.WeekRange(s.Weeks[s.BusiestWeek]))
	} else {
		topWeek.Hint = core.FormatHours(0)
	}

	return []KPI{
		topDay,
		topWeek,
		{ID: KPIMonthTotal, Value: core.FormatHours(s.Total), Hint: l.MonthTotalHint},
		{ID: KPIWeekAverage, Value: core.FormatHours(s.WeeklyAverage), Hint: l.WeekAverageHint},
		{
			ID:    KPITopWeekday,
			Value: l.WeekdayName(s.BusiestWeekday),
			Hint:  fmt.Sprintf(l.Accumulated, core.FormatHours(s.WeekdayTotals[s.BusiestWeekday])),
		},
		{ID: KPIDaysWithShift, Value: strconv.Itoa(s.DaysWithShift), Hint: fmt.Sprintf(l.DaysWithHint, l.MonthName(s.Month))},
		{ID: KPILunchDays, Value: strconv.Itoa(len(s.LunchDays)), Hint: l.LunchDaysHint},
		{ID: KPILunchHours, Value: core.FormatHours(s.LunchTotal), Hint: l.LunchHoursHint},
		{ID: KPIRawTotal, Value: core.FormatHours(s.RawTotal), Hint: l.RawTotalHint},
	}
}

// YearKPIs renders the yearly headline figures.
func YearKPIs(s YearSummary, l core.Locale) []KPI {
	m := s.BusiestMonth - 1
	topWeek := KPI{ID: KPIYearTopWeek, Value: l.WeekName(s.BusiestWeek), Hint: core.FormatHours(0)}
	if s.BusiestWeek < len(s.Weeks) {
		topWeek.Hint = fmt.Sprintf("%s · %s",
			core.FormatHours(s.WeekTotals[s.BusiestWeek]), l.WeekRange(s.Weeks[s.BusiestWeek]))
	}

	return []KPI{
		{ID: KPIYearTotal, Value: core.FormatHours(s.Total), Hint: l.YearTotalHint},
		{ID: KPIMonthAverage, Value: core.FormatHours(s.MonthlyAverage), Hint: l.MonthAverageHint},
		{
			ID:    KPITopMonth,
			Value: l.MonthName(s.BusiestMonth),
			Hint:  fmt.Sprintf(l.TopMonthHint, core.FormatHours(s.MonthTotals[m]), core.FormatHours(s.MonthRawTotals[m])),
		},
		topWeek,
		{
			ID:    KPIYearTopWeekday,
			Value: l.WeekdayName(s.BusiestWeekday),
			Hint:  fmt.Sprintf(l.Accumulated, core.FormatHours(s.WeekdayTotals[s.BusiestWeekday])),
		},
		{ID: KPIYearLunchHours, Value: core.FormatHours(s.LunchTotal), Hint: l.YearLunchHint},
		{ID: KPIYearDaysWith, Value: strconv.Itoa(s.DaysWithShift), Hint: l.YearDaysWithHint},
		{ID: KPIYearDaysWithout, Value: strconv.Itoa(s.DaysWithoutShift), Hint: l.YearDaysWithout},
		{ID: KPIYearRawTotal, Value: core.FormatHours(s.RawTotal), Hint: l.YearRawTotalHint},
	}
}

// ShiftText renders a shift day as "8.5h · 08:00 – 17:30", adding the lunch
// marker when an hour was deducted.
func ShiftText(d core.DayRecord, l core.Locale) string {
	text := fmt.Sprintf("%s · %s", core.FormatHours(d.EffectiveHours), d.Label)
	if d.LunchHours > 0 {
		text += " " + l.LunchMarker
	}
	return text
}

// CellText is the calendar cell caption: the shift, the day's note or the
// no-shift placeholder when the date has no row at all.
func CellText(c CalendarCell, l core.Locale) string {
	switch {
	case !c.InMonth():
		return ""
	case c.Record == nil:
		return l.NoShift
	case c.Record.HasShift:
		return ShiftText(*c.Record, l)
	default:
		return c.Record.Label
	}
}

// LunchDayText renders an entry of the lunch-days list, e.g.
// "Lun 05/01 · 8.5h (−1h 🍽️)".
func LunchDayText(d core.DayRecord, l core.Locale) string {
	return fmt.Sprintf("%s %s · %s (−%gh %s)",
		l.WeekdayName(d.Weekday), core.FormatDayMonth(d.Date.Time),
		core.FormatHours(d.EffectiveHours), d.LunchHours, l.LunchMarker)
}
