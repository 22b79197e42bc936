package sheets

import (
	"context"

	"horas/internal/core"
)

// Ports for outbound adapters.
type (
	// TimesheetReader fetches the raw timesheet rows. Cells are already
	// trimmed; no row is interpreted.
	TimesheetReader interface {
		ReadRows(ctx context.Context) ([][]string, error)
		// Source names where the rows come from, for logs and load reports.
		Source() string
	}

	// LoadRecorder keeps the diagnostic report of each load cycle.
	LoadRecorder interface {
		RecordLoad(ctx context.Context, r core.LoadReport) error
	}

	// LoadHistory lists recorded load reports, newest first.
	LoadHistory interface {
		RecentLoads(ctx context.Context, limit int) ([]core.LoadReport, error)
	}
)
