package core

import "time"

// Timesheet is the immutable record set of one load, indexed by date.
type Timesheet struct {
	Year int
	Days []DayRecord

	byDate map[int]int
}

// NewTimesheet indexes days by date. When two records share a date the first
// one is kept in the index; callers are expected to have removed duplicates.
func NewTimesheet(year int, days []DayRecord) *Timesheet {
	ts := &Timesheet{
		Year:   year,
		Days:   days,
		byDate: make(map[int]int, len(days)),
	}
	for i, d := range days {
		if _, ok := ts.byDate[d.Date.Key()]; !ok {
			ts.byDate[d.Date.Key()] = i
		}
	}
	return ts
}

// Lookup returns the record for the given date.
func (ts *Timesheet) Lookup(d Date) (DayRecord, bool) {
	if ts == nil {
		return DayRecord{}, false
	}
	i, ok := ts.byDate[d.Key()]
	if !ok {
		return DayRecord{}, false
	}
	return ts.Days[i], true
}

// ShiftDays returns the records with a shift, in source order, optionally
// restricted by keep.
func (ts *Timesheet) ShiftDays(keep func(DayRecord) bool) []DayRecord {
	if ts == nil {
		return nil
	}
	var out []DayRecord
	for _, d := range ts.Days {
		if !d.HasShift {
			continue
		}
		if keep != nil && !keep(d) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// InMonth is a ShiftDays filter for one month of the timesheet year.
func InMonth(month time.Month) func(DayRecord) bool {
	return func(d DayRecord) bool {
		return d.Date.Time.Month() == month
	}
}
