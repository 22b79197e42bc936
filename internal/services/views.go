package services

import (
	"horas/internal/core"
)

// The view types below are the serializable form of the summaries, shared by
// the JSON API and the report command. Week and day indexes are 1-based.

type DayView struct {
	Date           string  `json:"date" yaml:"date"`
	Weekday        string  `json:"weekday" yaml:"weekday"`
	HasShift       bool    `json:"has_shift" yaml:"has_shift"`
	Start          string  `json:"start,omitempty" yaml:"start,omitempty"`
	End            string  `json:"end,omitempty" yaml:"end,omitempty"`
	RawHours       float64 `json:"raw_hours" yaml:"raw_hours"`
	LunchHours     float64 `json:"lunch_hours" yaml:"lunch_hours"`
	EffectiveHours float64 `json:"effective_hours" yaml:"effective_hours"`
	Label          string  `json:"label" yaml:"label"`
	Note           string  `json:"note,omitempty" yaml:"note,omitempty"`
}

type NamedHours struct {
	Name  string  `json:"name" yaml:"name"`
	Hours float64 `json:"hours" yaml:"hours"`
}

type WeekTotalView struct {
	Index int     `json:"index" yaml:"index"`
	Name  string  `json:"name" yaml:"name"`
	Range string  `json:"range" yaml:"range"`
	Hours float64 `json:"hours" yaml:"hours"`
}

type SelectedWeekView struct {
	Index         int          `json:"index" yaml:"index"`
	Name          string       `json:"name" yaml:"name"`
	Range         string       `json:"range" yaml:"range"`
	WeekdayTotals []NamedHours `json:"weekday_totals" yaml:"weekday_totals"`
	Total         float64      `json:"total" yaml:"total"`
}

type CalendarCellView struct {
	Day      int     `json:"day" yaml:"day"` // 0 outside the month
	Date     string  `json:"date,omitempty" yaml:"date,omitempty"`
	HasShift bool    `json:"has_shift" yaml:"has_shift"`
	Hours    float64 `json:"hours" yaml:"hours"`
	Text     string  `json:"text" yaml:"text"`
}

type MonthView struct {
	Year           int                `json:"year" yaml:"year"`
	Month          int                `json:"month" yaml:"month"`
	Label          string             `json:"label" yaml:"label"`
	KPIs           []KPI              `json:"kpis" yaml:"kpis"`
	Total          float64            `json:"total" yaml:"total"`
	RawTotal       float64            `json:"raw_total" yaml:"raw_total"`
	LunchTotal     float64            `json:"lunch_total" yaml:"lunch_total"`
	WeeklyAverage  float64            `json:"weekly_average" yaml:"weekly_average"`
	DaysWithShift  int                `json:"days_with_shift" yaml:"days_with_shift"`
	BusiestDay     *DayView           `json:"busiest_day,omitempty" yaml:"busiest_day,omitempty"`
	BusiestWeek    int                `json:"busiest_week" yaml:"busiest_week"`
	BusiestWeekday string             `json:"busiest_weekday" yaml:"busiest_weekday"`
	WeekdayTotals  []NamedHours       `json:"weekday_totals" yaml:"weekday_totals"`
	Weeks          []WeekTotalView    `json:"weeks" yaml:"weeks"`
	SelectedWeek   SelectedWeekView   `json:"selected_week" yaml:"selected_week"`
	LunchDays      []DayView          `json:"lunch_days" yaml:"lunch_days"`
	Calendar       []CalendarCellView `json:"calendar,omitempty" yaml:"calendar,omitempty"`
}

type YearView struct {
	Year             int             `json:"year" yaml:"year"`
	KPIs             []KPI           `json:"kpis" yaml:"kpis"`
	Total            float64         `json:"total" yaml:"total"`
	RawTotal         float64         `json:"raw_total" yaml:"raw_total"`
	LunchTotal       float64         `json:"lunch_total" yaml:"lunch_total"`
	MonthlyAverage   float64         `json:"monthly_average" yaml:"monthly_average"`
	BusiestMonth     string          `json:"busiest_month" yaml:"busiest_month"`
	BusiestWeek      int             `json:"busiest_week" yaml:"busiest_week"`
	BusiestWeekday   string          `json:"busiest_weekday" yaml:"busiest_weekday"`
	DaysWithShift    int             `json:"days_with_shift" yaml:"days_with_shift"`
	DaysWithoutShift int             `json:"days_without_shift" yaml:"days_without_shift"`
	DaysInYear       int             `json:"days_in_year" yaml:"days_in_year"`
	Months           []MonthTotals   `json:"months" yaml:"months"`
	WeekdayTotals    []NamedHours    `json:"weekday_totals" yaml:"weekday_totals"`
	Weeks            []WeekTotalView `json:"weeks" yaml:"weeks"`
}

type MonthTotals struct {
	Month     int     `json:"month" yaml:"month"`
	Name      string  `json:"name" yaml:"name"`
	Effective float64 `json:"effective" yaml:"effective"`
	Raw       float64 `json:"raw" yaml:"raw"`
	Lunch     float64 `json:"lunch" yaml:"lunch"`
}

// NewDayView flattens a DayRecord.
func NewDayView(d core.DayRecord, l core.Locale) DayView {
	v := DayView{
		Date:           core.FormatDate(d.Date.Time),
		Weekday:        l.WeekdayName(d.Weekday),
		HasShift:       d.HasShift,
		RawHours:       d.RawHours,
		LunchHours:     d.LunchHours,
		EffectiveHours: d.EffectiveHours,
		Label:          d.Label,
		Note:           d.Note,
	}
	if d.HasShift {
		v.Start = core.FormatClock(d.StartMinute)
		v.End = core.FormatClock(d.EndMinute)
	}
	return v
}

// NewMonthView flattens a MonthSummary. withCalendar adds the 42 grid cells.
func NewMonthView(s MonthSummary, l core.Locale, withCalendar bool) MonthView {
	v := MonthView{
		Year:           s.Year,
		Month:          int(s.Month),
		Label:          l.MonthLabel(s.Year, s.Month),
		KPIs:           MonthKPIs(s, l),
		Total:          s.Total,
		RawTotal:       s.RawTotal,
		LunchTotal:     s.LunchTotal,
		WeeklyAverage:  s.WeeklyAverage,
		DaysWithShift:  s.DaysWithShift,
		BusiestWeek:    s.BusiestWeek + 1,
		BusiestWeekday: l.WeekdayName(s.BusiestWeekday),
		WeekdayTotals:  weekdayHours(s.WeekdayTotals, l),
		Weeks:          weekTotals(s.Weeks, s.WeekTotals, l),
		LunchDays:      make([]DayView, 0, len(s.LunchDays)),
	}
	if s.BusiestDay != nil {
		d := NewDayView(*s.BusiestDay, l)
		v.BusiestDay = &d
	}
	for _, d := range s.LunchDays {
		v.LunchDays = append(v.LunchDays, NewDayView(d, l))
	}

	sw := s.SelectedWeek
	v.SelectedWeek = SelectedWeekView{
		Index:         sw.Index + 1,
		Name:          l.WeekName(sw.Index),
		WeekdayTotals: weekdayHours(sw.WeekdayTotals, l),
		Total:         sum(sw.WeekdayTotals[:]),
	}
	if len(s.Weeks) > 0 {
		v.SelectedWeek.Range = l.WeekRange(sw.Week)
	}

	if withCalendar {
		v.Calendar = make([]CalendarCellView, 0, CalendarCells)
		for _, c := range s.Calendar {
			cell := CalendarCellView{Day: c.Day, Text: CellText(c, l)}
			if c.InMonth() {
				cell.Date = core.FormatDate(c.Date.Time)
			}
			if c.Record != nil && c.Record.HasShift {
				cell.HasShift = true
				cell.Hours = c.Record.EffectiveHours
			}
			v.Calendar = append(v.Calendar, cell)
		}
	}
	return v
}

// NewYearView flattens a YearSummary.
func NewYearView(s YearSummary, l core.Locale) YearView {
	v := YearView{
		Year:             s.Year,
		KPIs:             YearKPIs(s, l),
		Total:            s.Total,
		RawTotal:         s.RawTotal,
		LunchTotal:       s.LunchTotal,
		MonthlyAverage:   s.MonthlyAverage,
		BusiestMonth:     l.MonthName(s.BusiestMonth),
		BusiestWeek:      s.BusiestWeek + 1,
		BusiestWeekday:   l.WeekdayName(s.BusiestWeekday),
		DaysWithShift:    s.DaysWithShift,
		DaysWithoutShift: s.DaysWithoutShift,
		DaysInYear:       s.DaysInYear,
		WeekdayTotals:    weekdayHours(s.WeekdayTotals, l),
		Weeks:            weekTotals(s.Weeks, s.WeekTotals, l),
		Months:           make([]MonthTotals, 12),
	}
	for i := range v.Months {
		v.Months[i] = MonthTotals{
			Month:     i + 1,
			Name:      l.Months[i],
			Effective: s.MonthTotals[i],
			Raw:       s.MonthRawTotals[i],
			Lunch:     s.MonthLunchTotals[i],
		}
	}
	return v
}

func weekdayHours(totals [7]float64, l core.Locale) []NamedHours {
	out := make([]NamedHours, len(totals))
	for i, h := range totals {
		out[i] = NamedHours{Name: l.WeekdayName(i), Hours: h}
	}
	return out
}

func weekTotals(weeks []core.Week, totals []float64, l core.Locale) []WeekTotalView {
	out := make([]WeekTotalView, len(weeks))
	for i, w := range weeks {
		out[i] = WeekTotalView{Index: i + 1, Name: l.WeekName(i), Range: l.WeekRange(w), Hours: totals[i]}
	}
	return out
}
