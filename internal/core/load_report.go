package core

import "time"

// IssueKind classifies a row the record builder could not use as-is.
type IssueKind string

const (
	IssueInvalidDate   IssueKind = "invalid_date"
	IssueOutOfYear     IssueKind = "out_of_year"
	IssueDuplicateDate IssueKind = "duplicate_date"
	IssueInvalidTime   IssueKind = "invalid_time"
)

// RowIssue describes a data-quality problem found in one source row.
type RowIssue struct {
	Line    int       `json:"line" yaml:"line"` // 1-based position in the source rows
	Kind    IssueKind `json:"kind" yaml:"kind"`
	Detail  string    `json:"detail" yaml:"detail"`
	Dropped bool      `json:"dropped" yaml:"dropped"`
}

// LoadReport summarizes one load cycle: what was fetched, what was kept and
// what went wrong.
type LoadReport struct {
	Source        string        `json:"source" yaml:"source"`
	Year          int           `json:"year" yaml:"year"`
	StartedAt     time.Time     `json:"started_at" yaml:"started_at"`
	Duration      time.Duration `json:"duration" yaml:"duration"`
	Rows          int           `json:"rows" yaml:"rows"`
	HeaderSkipped bool          `json:"header_skipped" yaml:"header_skipped"`
	Records       int           `json:"records" yaml:"records"`
	DaysWithShift int           `json:"days_with_shift" yaml:"days_with_shift"`
	Issues        []RowIssue    `json:"issues,omitempty" yaml:"issues,omitempty"`
	Err           string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failed reports whether the load aborted before producing records.
func (r LoadReport) Failed() bool {
	return r.Err != ""
}

// Dropped counts the issues whose row was discarded.
func (r LoadReport) Dropped() int {
	n := 0
	for _, is := range r.Issues {
		if is.Dropped {
			n++
		}
	}
	return n
}

// CountByKind tallies issues per kind.
func (r LoadReport) CountByKind() map[IssueKind]int {
	out := make(map[IssueKind]int)
	for _, is := range r.Issues {
		out[is.Kind]++
	}
	return out
}
