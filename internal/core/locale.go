package core

import (
	"fmt"
	"strings"
	"time"
)

// Locale carries every user-facing label. Format strings take the arguments
// named in their comments.
type Locale struct {
	Code     string
	Weekdays [7]string  // Monday first
	Months   [12]string // January first

	NoShift     string
	LunchMarker string
	Week        string // %d: 1-based week number
	Range       string // %s, %s: "DD/MM" start and end
	Accumulated string // %s: hours

	NoShiftsInMonth  string
	MonthTotalHint   string
	WeekAverageHint  string
	DaysWithHint     string // %s: month name
	LunchDaysHint    string
	LunchHoursHint   string
	RawTotalHint     string
	NoLunchDays      string
	WeekdayTotals    string
	WeekTotals       string
	MonthTotal       string
	YearTotalHint    string
	MonthAverageHint string
	TopMonthHint     string // %s, %s: effective and raw hours
	YearLunchHint    string
	YearDaysWithHint string
	YearDaysWithout  string
	YearRawTotalHint string
	LoadError        string

	// Headings for the dashboard and the report. Titles is keyed by KPI id.
	Titles       map[string]string
	YearHeading  string
	Calendar     string
	SelectedWeek string
	LunchDays    string
	MonthTotals  string
	Reload       string
	Issues       string // %d: issue count, %d: dropped rows
}

var locales = map[string]Locale{
	"es": {
		Code:     "es",
		Weekdays: [7]string{"Lun", "Mar", "Mié", "Jue", "Vie", "Sáb", "Dom"},
		Months: [12]string{
			"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
			"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
		},
		NoShift:          "Sin jornada",
		LunchMarker:      "🍽️",
		Week:             "Semana %d",
		Range:            "Del %s al %s",
		Accumulated:      "%s acumuladas",
		NoShiftsInMonth:  "No hay jornadas en este mes",
		MonthTotalHint:   "Horas efectivas (almuerzo ya descontado)",
		WeekAverageHint:  "Promedio semanal efectivo",
		DaysWithHint:     "Días con horario asignado en %s",
		LunchDaysHint:    "Jornadas > 6h (se descuenta 1h)",
		LunchHoursHint:   "Horas descontadas (NO suman a nada)",
		RawTotalHint:     "Informativo: horas sin descuento",
		NoLunchDays:      "Este mes no hay días que requieran almuerzo según la regla (> 6h).",
		WeekdayTotals:    "Totales por día (mes) · efectivas",
		WeekTotals:       "Totales por semana (mes) · efectivas",
		MonthTotal:       "Total mes",
		YearTotalHint:    "Horas efectivas del año (almuerzo ya descontado)",
		MonthAverageHint: "Promedio mensual efectivo (12 meses)",
		TopMonthHint:     "%s efectivas · (%s sin descuento)",
		YearLunchHint:    "Total de horas descontadas por la regla (>6h) en el año",
		YearDaysWithHint: "Días con horario asignado en el año",
		YearDaysWithout:  "Días sin jornada (incluye días sin registro)",
		YearRawTotalHint: "Informativo: horas del año sin descuento de almuerzo",
		LoadError:        "Error cargando datos. Revisa la URL TSV o permisos del Sheet.",
		Titles: map[string]string{
			"top_day":                 "Día con más horas",
			"top_week":                "Semana con más horas",
			"month_total":             "Total del mes",
			"week_average":            "Promedio semanal",
			"top_weekday":             "Día de la semana más cargado",
			"days_with_shift":         "Días con jornada",
			"lunch_days":              "Días con almuerzo",
			"lunch_hours":             "Horas de almuerzo",
			"raw_total":               "Total sin descuento",
			"year_total":              "Total del año",
			"month_average":           "Promedio mensual",
			"top_month":               "Mes con más horas",
			"year_top_week":           "Semana con más horas del año",
			"year_top_weekday":        "Día de la semana más cargado del año",
			"year_lunch_hours":        "Horas de almuerzo del año",
			"year_days_with_shift":    "Días con jornada en el año",
			"year_days_without_shift": "Días sin jornada en el año",
			"year_raw_total":          "Total del año sin descuento",
		},
		YearHeading:  "Resumen del año %d",
		Calendar:     "Calendario",
		SelectedWeek: "Detalle semanal",
		LunchDays:    "Días con descuento de almuerzo",
		MonthTotals:  "Totales por mes · efectivas",
		Reload:       "Recargar datos",
		Issues:       "%d filas con problemas (%d descartadas)",
	},
	"en": {
		Code:     "en",
		Weekdays: [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
		Months: [12]string{
			"January", "February", "March", "April", "May", "June",
			"July", "August", "September", "October", "November", "December",
		},
		NoShift:          "No shift",
		LunchMarker:      "🍽️",
		Week:             "Week %d",
		Range:            "From %s to %s",
		Accumulated:      "%s accumulated",
		NoShiftsInMonth:  "No shifts this month",
		MonthTotalHint:   "Effective hours (lunch already deducted)",
		WeekAverageHint:  "Effective weekly average",
		DaysWithHint:     "Days with a shift in %s",
		LunchDaysHint:    "Shifts > 6h (1h deducted)",
		LunchHoursHint:   "Deducted hours (not counted anywhere)",
		RawTotalHint:     "Informational: hours before deduction",
		NoLunchDays:      "No day this month required a lunch break under the rule (> 6h).",
		WeekdayTotals:    "Totals by weekday (month) · effective",
		WeekTotals:       "Totals by week (month) · effective",
		MonthTotal:       "Month total",
		YearTotalHint:    "Effective hours this year (lunch already deducted)",
		MonthAverageHint: "Effective monthly average (12 months)",
		TopMonthHint:     "%s effective · (%s before deduction)",
		YearLunchHint:    "Hours deducted by the rule (>6h) this year",
		YearDaysWithHint: "Days with a shift this year",
		YearDaysWithout:  "Days without a shift (including days with no row)",
		YearRawTotalHint: "Informational: yearly hours before lunch deduction",
		LoadError:        "Could not load data. Check the TSV URL or the sheet permissions.",
		Titles: map[string]string{
			"top_day":                 "Busiest day",
			"top_week":                "Busiest week",
			"month_total":             "Month total",
			"week_average":            "Weekly average",
			"top_weekday":             "Busiest weekday",
			"days_with_shift":         "Days with a shift",
			"lunch_days":              "Lunch days",
			"lunch_hours":             "Lunch hours",
			"raw_total":               "Total before deduction",
			"year_total":              "Year total",
			"month_average":           "Monthly average",
			"top_month":               "Busiest month",
			"year_top_week":           "Busiest week of the year",
			"year_top_weekday":        "Busiest weekday of the year",
			"year_lunch_hours":        "Lunch hours this year",
			"year_days_with_shift":    "Days with a shift this year",
			"year_days_without_shift": "Days without a shift this year",
			"year_raw_total":          "Year total before deduction",
		},
		YearHeading:  "%d at a glance",
		Calendar:     "Calendar",
		SelectedWeek: "Week detail",
		LunchDays:    "Days with lunch deducted",
		MonthTotals:  "Totals by month · effective",
		Reload:       "Reload data",
		Issues:       "%d rows with problems (%d dropped)",
	},
}

// DefaultLocale is the locale used when none is configured.
const DefaultLocale = "es"

// LookupLocale returns the locale registered under code.
func LookupLocale(code string) (Locale, bool) {
	l, ok := locales[strings.ToLower(strings.TrimSpace(code))]
	return l, ok
}

// MustLocale returns the locale for code, falling back to DefaultLocale.
func MustLocale(code string) Locale {
	if l, ok := LookupLocale(code); ok {
		return l
	}
	return locales[DefaultLocale]
}

// LocaleCodes lists the supported locale codes.
func LocaleCodes() []string {
	return []string{"es", "en"}
}

func (l Locale) MonthName(m time.Month) string {
	return l.Months[int(m)-1]
}

func (l Locale) WeekdayName(i int) string {
	return l.Weekdays[i]
}

func (l Locale) WeekName(index int) string {
	return fmt.Sprintf(l.Week, index+1)
}

func (l Locale) WeekRange(w Week) string {
	return fmt.Sprintf(l.Range, FormatDayMonth(w.Start), FormatDayMonth(w.End))
}

// Title is the display title of a KPI, or its id when none is registered.
func (l Locale) Title(id string) string {
	if t, ok := l.Titles[id]; ok {
		return t
	}
	return id
}

// MonthLabel renders "Marzo 2026".
func (l Locale) MonthLabel(year int, m time.Month) string {
	return fmt.Sprintf("%s %d", l.MonthName(m), year)
}
