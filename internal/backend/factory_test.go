package backend

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"horas/internal/config"
	"horas/internal/core"
	"horas/internal/storage"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name:   "published with none journal",
			config: Config{Source: PublishedSource, Journal: NoJournal, TSVURL: "https://example.com/horas.tsv"},
		},
		{
			name:    "unknown source",
			config:  Config{Source: "ftp", Journal: NoJournal},
			wantErr: "invalid source type: ftp",
		},
		{
			name:    "unknown journal",
			config:  Config{Source: FileSource, Journal: "kafka", TimesheetFile: "x.tsv"},
			wantErr: "invalid journal type: kafka",
		},
		{
			name:    "published without URL",
			config:  Config{Source: PublishedSource, Journal: NoJournal},
			wantErr: "TSV URL is required",
		},
		{
			name:    "sheets without spreadsheet",
			config:  Config{Source: SheetsSource, Journal: NoJournal},
			wantErr: "Google Spreadsheet ID is required",
		},
		{
			name:    "sqlite journal without path",
			config:  Config{Source: FileSource, Journal: SQLiteJournal, TimesheetFile: "x.tsv"},
			wantErr: "SQLite database path is required",
		},
		{
			name:    "amqp journal without URL",
			config:  Config{Source: FileSource, Journal: AMQPJournal, TimesheetFile: "x.tsv"},
			wantErr: "AMQP URL is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestFromAppConfig(t *testing.T) {
	if _, err := FromAppConfig(nil); err == nil {
		t.Fatal("FromAppConfig(nil) should fail")
	}

	cfg, err := FromAppConfig(&config.Config{
		TimesheetSource: "file",
		TimesheetFile:   "data/timesheet.tsv",
		Journal:         "sqlite",
		SQLiteDBPath:    "./data/horas.db",
	})
	if err != nil {
		t.Fatalf("FromAppConfig() error = %v", err)
	}
	if cfg.Source != FileSource || cfg.Journal != SQLiteJournal || cfg.TimesheetFile != "data/timesheet.tsv" {
		t.Errorf("FromAppConfig() = %+v", cfg)
	}
}

func writeTimesheet(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "timesheet.tsv")
	data := "Día\tFecha\tEntrada\tSalida\nLun\t05/01/2026\t08:00\t17:00\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write timesheet: %v", err)
	}
	return path
}

func TestDefaultFactory_FileSourceInMemoryJournal(t *testing.T) {
	ctx := context.Background()
	res, err := NewFactory(nil).CreateBackend(ctx, Config{
		Source:        FileSource,
		Journal:       NoJournal,
		TimesheetFile: writeTimesheet(t),
		HistorySize:   2,
	})
	if err != nil {
		t.Fatalf("CreateBackend() error = %v", err)
	}
	defer res.Close()

	rows, err := res.Reader.ReadRows(ctx)
	if err != nil {
		t.Fatalf("ReadRows() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("ReadRows() = %d rows, want 2", len(rows))
	}

	for _, src := range []string{"a", "b", "c"} {
		if err := res.Recorder.RecordLoad(ctx, core.LoadReport{Source: src}); err != nil {
			t.Fatalf("RecordLoad() error = %v", err)
		}
	}
	loads, err := res.History.RecentLoads(ctx, 10)
	if err != nil {
		t.Fatalf("RecentLoads() error = %v", err)
	}
	if len(loads) != 2 || loads[0].Source != "c" {
		t.Fatalf("RecentLoads() = %+v, want newest two", loads)
	}
}

func TestDefaultFactory_SQLiteJournal(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "horas.db")

	res, err := NewFactory(nil).CreateBackend(ctx, Config{
		Source:        FileSource,
		Journal:       SQLiteJournal,
		TimesheetFile: writeTimesheet(t),
		SQLiteDBPath:  dbPath,
	})
	if err != nil {
		t.Fatalf("CreateBackend() error = %v", err)
	}
	defer res.Close()

	if _, ok := res.Recorder.(*storage.SQLiteRepository); !ok {
		t.Fatalf("Recorder = %T, want *storage.SQLiteRepository", res.Recorder)
	}
	if err := res.Recorder.RecordLoad(ctx, core.LoadReport{Source: "file", Year: 2026}); err != nil {
		t.Fatalf("RecordLoad() error = %v", err)
	}
	loads, err := res.History.RecentLoads(ctx, 5)
	if err != nil {
		t.Fatalf("RecentLoads() error = %v", err)
	}
	if len(loads) != 1 || loads[0].Year != 2026 {
		t.Fatalf("RecentLoads() = %+v", loads)
	}
}

type failingRecorder struct{ err error }

func (f failingRecorder) RecordLoad(context.Context, core.LoadReport) error { return f.err }

type countingRecorder struct{ n int }

func (c *countingRecorder) RecordLoad(context.Context, core.LoadReport) error {
	c.n++
	return nil
}

func TestTeeRecorder(t *testing.T) {
	boom := errors.New("circuit breaker is open")
	counter := &countingRecorder{}
	tee := teeRecorder{failingRecorder{boom}, counter}

	err := tee.RecordLoad(context.Background(), core.LoadReport{})
	if !errors.Is(err, boom) {
		t.Fatalf("RecordLoad() error = %v, want %v", err, boom)
	}
	if counter.n != 1 {
		t.Errorf("second recorder called %d times, want 1", counter.n)
	}
}
