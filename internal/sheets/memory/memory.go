package memory

import (
	"context"
	"fmt"
	"os"
	"sync"

	"horas/internal/core"
	"horas/internal/sheets"
)

// Store serves timesheet rows held in memory.
type Store struct {
	mu   sync.Mutex
	rows [][]string
}

func New(rows [][]string) *Store {
	return &Store{rows: copyRows(rows)}
}

// ReadRows returns a copy of the stored rows.
func (s *Store) ReadRows(_ context.Context) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyRows(s.rows), nil
}

// Replace swaps the stored rows; the next ReadRows sees the new data.
func (s *Store) Replace(rows [][]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = copyRows(rows)
}

func (s *Store) Source() string { return "memory" }

// FileReader reads a local TSV file on every ReadRows, so edits to the file
// are picked up by the next reload.
type FileReader struct {
	path string
}

func NewFromFile(path string) *FileReader {
	return &FileReader{path: path}
}

func (f *FileReader) ReadRows(ctx context.Context) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fh, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("open timesheet file: %w", err)
	}
	defer fh.Close()
	return sheets.ParseTSV(fh)
}

func (f *FileReader) Source() string { return "file:" + f.path }

// Journal keeps the most recent load reports in memory. It serves as the
// load recorder when no persistent journal is configured.
type Journal struct {
	mu      sync.Mutex
	limit   int
	reports []core.LoadReport
}

func NewJournal(limit int) *Journal {
	if limit <= 0 {
		limit = 50
	}
	return &Journal{limit: limit}
}

func (j *Journal) RecordLoad(_ context.Context, r core.LoadReport) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.reports = append(j.reports, r)
	if len(j.reports) > j.limit {
		j.reports = j.reports[len(j.reports)-j.limit:]
	}
	return nil
}

// RecentLoads returns up to limit reports, newest first.
func (j *Journal) RecentLoads(_ context.Context, limit int) ([]core.LoadReport, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if limit <= 0 || limit > len(j.reports) {
		limit = len(j.reports)
	}
	out := make([]core.LoadReport, 0, limit)
	for i := len(j.reports) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, j.reports[i])
	}
	return out, nil
}

func copyRows(in [][]string) [][]string {
	out := make([][]string, len(in))
	for i, r := range in {
		out[i] = append([]string(nil), r...)
	}
	return out
}
