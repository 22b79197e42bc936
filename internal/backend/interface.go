package backend

import (
	"context"

	"horas/internal/sheets"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult holds the adapters wired for one process.
type BackendResult struct {
	Reader   sheets.TimesheetReader
	Recorder sheets.LoadRecorder
	History  sheets.LoadHistory
	Cleanup  CleanupFunc
}

// Close runs the cleanup function, if any.
func (r *BackendResult) Close() error {
	if r == nil || r.Cleanup == nil {
		return nil
	}
	return r.Cleanup()
}

// Factory creates backends based on configuration
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	Source  SourceType
	Journal JournalType

	// published
	TSVURL string

	// file
	TimesheetFile string

	// sheets
	GoogleSpreadsheetID string
	GoogleSheetName     string

	// sqlite
	SQLiteDBPath string

	// amqp
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// HistorySize bounds the in-process journal used when no SQLite journal is configured.
	HistorySize int
}

// SourceType selects the timesheet reader
type SourceType string

const (
	PublishedSource SourceType = "published"
	FileSource      SourceType = "file"
	SheetsSource    SourceType = "sheets"
)

// String implements fmt.Stringer
func (st SourceType) String() string {
	return string(st)
}

// IsValid returns true if the source type is valid
func (st SourceType) IsValid() bool {
	switch st {
	case PublishedSource, FileSource, SheetsSource:
		return true
	default:
		return false
	}
}

// JournalType selects where load reports are recorded
type JournalType string

const (
	NoJournal     JournalType = "none"
	SQLiteJournal JournalType = "sqlite"
	AMQPJournal   JournalType = "amqp"
)

func (jt JournalType) String() string {
	return string(jt)
}

// IsValid returns true if the journal type is valid
func (jt JournalType) IsValid() bool {
	switch jt {
	case NoJournal, SQLiteJournal, AMQPJournal:
		return true
	default:
		return false
	}
}
