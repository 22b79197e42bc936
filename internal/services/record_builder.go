package services

import (
	"errors"
	"fmt"
	"strings"

	"horas/internal/core"
)

// Source columns. Column 0 is ignored.
const (
	colDate  = 1
	colStart = 2
	colEnd   = 3
	colNote  = 4
	colNote2 = 5
)

// BuildResult is the outcome of turning source rows into day records.
type BuildResult struct {
	Timesheet     *core.Timesheet
	Rows          int
	HeaderSkipped bool
	Issues        []core.RowIssue
}

// RecordBuilder converts raw timesheet rows into DayRecords for one year.
type RecordBuilder struct {
	Year   int
	Locale core.Locale
}

// NewRecordBuilder creates a builder for the given year and locale.
func NewRecordBuilder(year int, locale core.Locale) RecordBuilder {
	return RecordBuilder{Year: year, Locale: locale}
}

// BuildRecords builds with the default locale.
func BuildRecords(rows [][]string, year int) BuildResult {
	return NewRecordBuilder(year, core.MustLocale(core.DefaultLocale)).Build(rows)
}

// Build returns a fresh result on every call; rows are never modified.
//
// A leading header row is recognized by its first cell. Rows whose date does
// not parse, falls outside the year or repeats an earlier date are dropped and
// reported. A malformed start or end time keeps the row as a day without shift.
func (b RecordBuilder) Build(rows [][]string) BuildResult {
	res := BuildResult{Rows: len(rows)}

	start := 0
	if len(rows) > 0 && isHeader(cell(rows[0], 0)) {
		start = 1
		res.HeaderSkipped = true
	}

	days := make([]core.DayRecord, 0, len(rows)-start)
	seen := make(map[int]int, len(rows))

	for i := start; i < len(rows); i++ {
		r := rows[i]
		line := i + 1

		date, err := core.ParseDate(cell(r, colDate))
		if err != nil {
			res.Issues = append(res.Issues, core.RowIssue{
				Line: line, Kind: core.IssueInvalidDate, Detail: err.Error(), Dropped: true,
			})
			continue
		}
		if date.Year() != b.Year {
			res.Issues = append(res.Issues, core.RowIssue{
				Line:    line,
				Kind:    core.IssueOutOfYear,
				Detail:  fmt.Sprintf("%s is not in %d", core.FormatDate(date.Time), b.Year),
				Dropped: true,
			})
			continue
		}
		if first, ok := seen[date.Key()]; ok {
			res.Issues = append(res.Issues, core.RowIssue{
				Line:    line,
				Kind:    core.IssueDuplicateDate,
				Detail:  fmt.Sprintf("%s already defined on line %d", core.FormatDate(date.Time), first),
				Dropped: true,
			})
			continue
		}
		seen[date.Key()] = line

		note := cell(r, colNote2)
		if note == "" {
			note = cell(r, colNote)
		}

		startMin, startErr := core.ParseTime(cell(r, colStart))
		endMin, endErr := core.ParseTime(cell(r, colEnd))
		if startErr == nil && endErr == nil {
			days = append(days, core.NewShiftDay(date, startMin, endMin, note))
			continue
		}

		for _, err := range []error{startErr, endErr} {
			if errors.Is(err, core.ErrInvalidTime) {
				res.Issues = append(res.Issues, core.RowIssue{
					Line: line, Kind: core.IssueInvalidTime, Detail: err.Error(),
				})
			}
		}
		days = append(days, core.NewRestDay(date, note, b.Locale.NoShift))
	}

	res.Timesheet = core.NewTimesheet(b.Year, days)
	return res
}

// Report fills the row-level fields of a LoadReport from the build result.
func (r BuildResult) Report(base core.LoadReport) core.LoadReport {
	base.Rows = r.Rows
	base.HeaderSkipped = r.HeaderSkipped
	base.Issues = r.Issues
	if r.Timesheet != nil {
		base.Records = len(r.Timesheet.Days)
		base.DaysWithShift = len(r.Timesheet.ShiftDays(nil))
	}
	return base
}

func isHeader(first string) bool {
	s := strings.ToLower(first)
	return strings.Contains(s, "día") || strings.Contains(s, "day")
}

func cell(r []string, i int) string {
	if i < len(r) {
		return strings.TrimSpace(r[i])
	}
	return ""
}
