package core

import (
	"fmt"
	"time"
)

// FormatDayMonth renders a date as "DD/MM".
func FormatDayMonth(t time.Time) string {
	return t.Format("02/01")
}

// FormatDate renders a date as "DD/MM/YYYY".
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// FormatHours renders an hour figure with one decimal, e.g. "8.5h".
func FormatHours(h float64) string {
	return fmt.Sprintf("%.1fh", h)
}
