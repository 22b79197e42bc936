// Package report renders dashboard summaries for the terminal.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"horas/internal/core"
	"horas/internal/services"
)

// Format is an output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat accepts table, json or yaml, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q: must be one of table, json, yaml", s)
	}
}

// Month writes a month view.
func Month(w io.Writer, f Format, v services.MonthView) error {
	if f != FormatTable {
		return encode(w, f, v)
	}
	tw := newTabWriter(w)
	fmt.Fprintf(tw, "%s\n\n", v.Label)
	writeKPIs(tw, v.KPIs)

	fmt.Fprintln(tw)
	for _, wk := range v.Weeks {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", wk.Name, wk.Range, core.FormatHours(wk.Hours))
	}

	fmt.Fprintf(tw, "\n%s · %s\n", v.SelectedWeek.Name, v.SelectedWeek.Range)
	for _, d := range v.SelectedWeek.WeekdayTotals {
		fmt.Fprintf(tw, "%s\t%s\n", d.Name, core.FormatHours(d.Hours))
	}

	if len(v.LunchDays) > 0 {
		fmt.Fprintln(tw)
		for _, d := range v.LunchDays {
			fmt.Fprintf(tw, "%s %s\t%s\t%s\n", d.Weekday, d.Date, d.Label, core.FormatHours(d.EffectiveHours))
		}
	}
	return tw.Flush()
}

// Year writes a year view.
func Year(w io.Writer, f Format, v services.YearView) error {
	if f != FormatTable {
		return encode(w, f, v)
	}
	tw := newTabWriter(w)
	fmt.Fprintf(tw, "%d\n\n", v.Year)
	writeKPIs(tw, v.KPIs)

	fmt.Fprintln(tw)
	for _, m := range v.Months {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.Name,
			core.FormatHours(m.Effective), core.FormatHours(m.Raw), core.FormatHours(m.Lunch))
	}
	return tw.Flush()
}

// Issues writes the row problems found by a load.
func Issues(w io.Writer, f Format, r core.LoadReport) error {
	if f != FormatTable {
		issues := r.Issues
		if issues == nil {
			issues = []core.RowIssue{}
		}
		return encode(w, f, issues)
	}
	tw := newTabWriter(w)
	fmt.Fprintf(tw, "LINE\tKIND\tDROPPED\tDETAIL\n")
	for _, is := range r.Issues {
		fmt.Fprintf(tw, "%d\t%s\t%t\t%s\n", is.Line, is.Kind, is.Dropped, is.Detail)
	}
	return tw.Flush()
}

func writeKPIs(w io.Writer, kpis []services.KPI) {
	for _, k := range kpis {
		fmt.Fprintf(w, "%s\t%s\t%s\n", k.ID, k.Value, k.Hint)
	}
}

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func encode(w io.Writer, f Format, v any) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", f)
	}
}
