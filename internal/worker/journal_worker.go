package worker

import (
	"context"
	"fmt"
	"log/slog"

	"horas/internal/amqp"
	"horas/internal/sheets"
)

// Journal is the persistent load journal the worker writes to.
type Journal interface {
	sheets.LoadRecorder
	PruneLoads(ctx context.Context, keep int) (int64, error)
}

// JournalWorker persists load events consumed from AMQP.
type JournalWorker struct {
	journal Journal
	keep    int
}

// NewJournalWorker creates a worker that keeps at most keep reports when
// pruning. keep <= 0 disables pruning.
func NewJournalWorker(journal Journal, keep int) *JournalWorker {
	return &JournalWorker{journal: journal, keep: keep}
}

// HandleLoadEvent stores the report carried by msg. A returned error makes
// the consumer requeue the message.
func (w *JournalWorker) HandleLoadEvent(ctx context.Context, msg *amqp.LoadEventMessage) error {
	slog.InfoContext(ctx, "Processing load event",
		"source", msg.Report.Source,
		"year", msg.Report.Year,
		"issues", len(msg.Report.Issues),
		"failed", msg.Report.Failed())

	if err := w.journal.RecordLoad(ctx, msg.Report); err != nil {
		return fmt.Errorf("record load report: %w", err)
	}
	return nil
}

// Prune trims the journal to the configured size.
func (w *JournalWorker) Prune(ctx context.Context) error {
	if w.keep <= 0 {
		return nil
	}
	n, err := w.journal.PruneLoads(ctx, w.keep)
	if err != nil {
		return fmt.Errorf("prune load journal: %w", err)
	}
	if n > 0 {
		slog.InfoContext(ctx, "Pruned load journal", "deleted", n, "kept", w.keep)
	}
	return nil
}
