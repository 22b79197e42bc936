package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"horas/internal/amqp"
	"horas/internal/core"
)

type fakeJournal struct {
	recorded  []core.LoadReport
	recordErr error
	pruneKeep int
	pruned    int64
	pruneErr  error
}

func (f *fakeJournal) RecordLoad(_ context.Context, r core.LoadReport) error {
	if f.recordErr != nil {
		return f.recordErr
	}
	f.recorded = append(f.recorded, r)
	return nil
}

func (f *fakeJournal) PruneLoads(_ context.Context, keep int) (int64, error) {
	f.pruneKeep = keep
	return f.pruned, f.pruneErr
}

func TestJournalWorker_HandleLoadEvent(t *testing.T) {
	msg := &amqp.LoadEventMessage{
		Report: core.LoadReport{
			Source: "memory",
			Year:   2026,
			Issues: []core.RowIssue{{Line: 2, Kind: core.IssueInvalidDate, Dropped: true}},
		},
		Timestamp: time.Now(),
	}

	t.Run("stores the report", func(t *testing.T) {
		j := &fakeJournal{}
		w := NewJournalWorker(j, 10)

		if err := w.HandleLoadEvent(context.Background(), msg); err != nil {
			t.Fatalf("HandleLoadEvent() error = %v", err)
		}
		if len(j.recorded) != 1 || j.recorded[0].Source != "memory" {
			t.Fatalf("recorded = %+v", j.recorded)
		}
	})

	t.Run("storage failure is returned", func(t *testing.T) {
		boom := errors.New("database is locked")
		w := NewJournalWorker(&fakeJournal{recordErr: boom}, 10)

		err := w.HandleLoadEvent(context.Background(), msg)
		if !errors.Is(err, boom) {
			t.Fatalf("HandleLoadEvent() error = %v, want wrapped %v", err, boom)
		}
	})
}

func TestJournalWorker_Prune(t *testing.T) {
	tests := []struct {
		name     string
		keep     int
		pruneErr error
		wantKeep int
		wantErr  bool
	}{
		{name: "disabled", keep: 0, wantKeep: 0},
		{name: "keeps configured size", keep: 50, wantKeep: 50},
		{name: "error", keep: 5, pruneErr: errors.New("disk I/O error"), wantKeep: 5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := &fakeJournal{pruned: 3, pruneErr: tt.pruneErr}
			err := NewJournalWorker(j, tt.keep).Prune(context.Background())
			if (err != nil) != tt.wantErr {
				t.Fatalf("Prune() error = %v, wantErr %v", err, tt.wantErr)
			}
			if j.pruneKeep != tt.wantKeep {
				t.Errorf("PruneLoads keep = %d, want %d", j.pruneKeep, tt.wantKeep)
			}
		})
	}
}
