package http

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"horas/internal/core"
	applog "horas/internal/log"
	"horas/internal/services"
)

type kpiView struct {
	Title string
	services.KPI
}

type calendarCellView struct {
	Day      int
	Text     string
	HasShift bool
	Lunch    bool
	Today    bool
}

type dashboardView struct {
	Locale core.Locale
	Year   int

	// Notice is the load error banner; Issues the row-problem summary.
	Notice string
	Issues string

	Ready      bool
	MonthLabel string
	Selection  services.Selection

	PrevMonthURL string
	NextMonthURL string
	PrevWeekURL  string
	NextWeekURL  string

	MonthKPIs []kpiView
	YearKPIs  []kpiView

	WeekdayChart      template.HTML
	WeekChart         template.HTML
	SelectedWeekChart template.HTML
	MonthChart        template.HTML

	WeekName  string
	WeekRange string

	Weekdays  [7]string
	Calendar  [][]calendarCellView
	LunchDays []string

	YearHeading string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := applog.FromContext(ctx)
	if s.templates == nil {
		logger.ErrorContext(ctx, "Templates not loaded", applog.FieldPath, r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	l := s.dashboard.Locale()
	view := dashboardView{
		Locale:   l,
		Year:     s.dashboard.TargetYear(),
		Weekdays: l.Weekdays,
	}
	if report, ok := s.dashboard.LastReport(); ok {
		if report.Failed() {
			view.Notice = l.LoadError
		}
		if len(report.Issues) > 0 {
			view.Issues = fmt.Sprintf(l.Issues, len(report.Issues), report.Dropped())
		}
	}

	sel := parseSelection(r.URL.Query(), s.dashboard.InitialSelection())
	month, sel, err := s.dashboard.Month(sel)
	switch {
	case errors.Is(err, services.ErrNotLoaded):
		if view.Notice == "" {
			view.Notice = l.LoadError
		}
	case err != nil:
		logger.ErrorContext(ctx, "Month summary failed", applog.FieldError, err)
		view.Notice = l.LoadError
	default:
		view.Ready = true
		s.fillMonth(&view, month, sel)
		logger.DebugContext(ctx, "Rendering dashboard", applog.FieldMonth, int(sel.Month), applog.FieldWeek, sel.WeekIndex+1)
	}

	if view.Ready {
		if year, err := s.dashboard.Year(); err == nil {
			s.fillYear(&view, year)
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "dashboard.html", view); err != nil {
		logger.ErrorContext(ctx, "Dashboard template execution failed", applog.FieldError, err, "template", "dashboard.html")
	}
}

func (s *Server) fillMonth(v *dashboardView, m services.MonthSummary, sel services.Selection) {
	l := v.Locale
	year := s.dashboard.TargetYear()

	v.Selection = sel
	v.MonthLabel = l.MonthLabel(year, sel.Month)
	v.PrevMonthURL = selectionURL(sel.PrevMonth())
	v.NextMonthURL = selectionURL(sel.NextMonth())
	v.PrevWeekURL = selectionURL(sel.PrevWeek(year))
	v.NextWeekURL = selectionURL(sel.NextWeek(year))

	for _, k := range services.MonthKPIs(m, l) {
		v.MonthKPIs = append(v.MonthKPIs, kpiView{Title: l.Title(k.ID), KPI: k})
	}

	weekNames := make([]string, len(m.Weeks))
	for i := range m.Weeks {
		weekNames[i] = l.WeekName(i)
	}
	v.WeekdayChart = barChart(l.WeekdayTotals, l.Weekdays[:], m.WeekdayTotals[:], m.BusiestWeekday)
	v.WeekChart = barChart(l.WeekTotals, weekNames, m.WeekTotals, m.BusiestWeek)
	v.SelectedWeekChart = barChart(l.SelectedWeek, l.Weekdays[:], m.SelectedWeek.WeekdayTotals[:], -1)
	if len(m.Weeks) > 0 {
		v.WeekName = l.WeekName(m.SelectedWeek.Index)
		v.WeekRange = l.WeekRange(m.SelectedWeek.Week)
	}

	today := core.DateOf(s.now())
	for i := 0; i < services.CalendarCells; i += 7 {
		row := make([]calendarCellView, 7)
		for j, c := range m.Calendar[i : i+7] {
			row[j] = calendarCellView{Day: c.Day, Text: services.CellText(c, l)}
			if c.InMonth() {
				row[j].Today = c.Date.Equal(today)
			}
			if c.Record != nil {
				row[j].HasShift = c.Record.HasShift
				row[j].Lunch = c.Record.LunchHours > 0
			}
		}
		v.Calendar = append(v.Calendar, row)
	}

	for _, d := range m.LunchDays {
		v.LunchDays = append(v.LunchDays, services.LunchDayText(d, l))
	}
}

func (s *Server) fillYear(v *dashboardView, y services.YearSummary) {
	l := v.Locale
	v.YearHeading = fmt.Sprintf(l.YearHeading, y.Year)
	for _, k := range services.YearKPIs(y, l) {
		v.YearKPIs = append(v.YearKPIs, kpiView{Title: l.Title(k.ID), KPI: k})
	}
	v.MonthChart = barChart(l.MonthTotals, shortMonths(l), y.MonthTotals[:], int(y.BusiestMonth)-1)
}

// handleReload fetches the timesheet again. Browsers are redirected back to
// the month they were looking at; JSON clients get the load report.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), s.reloadTimeout)
	defer cancel()

	report, err := s.dashboard.Load(ctx)
	if err != nil {
		applog.FromContext(ctx).ErrorContext(ctx, "Reload failed", applog.FieldError, err)
	}

	if wantsJSON(r) {
		status := http.StatusOK
		if err != nil {
			status = http.StatusBadGateway
		}
		writeJSON(w, r, status, report)
		return
	}

	_ = r.ParseForm()
	sel := parseSelection(r.Form, s.dashboard.InitialSelection())
	http.Redirect(w, r, selectionURL(sel.Normalize(s.dashboard.TargetYear())), http.StatusSeeOther)
}

func shortMonths(l core.Locale) []string {
	out := make([]string, 12)
	for i, m := range l.Months {
		r := []rune(m)
		out[i] = string(r[:min(3, len(r))])
	}
	return out
}
