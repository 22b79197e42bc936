package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"horas/internal/amqp"
	"horas/internal/core"
	"horas/internal/sheets"
	gsheet "horas/internal/sheets/google"
	"horas/internal/sheets/memory"
	"horas/internal/sheets/published"
	"horas/internal/storage"
)

const defaultHistorySize = 50

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger: logger,
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	reader, err := f.createReader(ctx, config)
	if err != nil {
		return nil, err
	}

	res, err := f.createJournal(config)
	if err != nil {
		return nil, err
	}
	res.Reader = reader
	return res, nil
}

func (f *DefaultFactory) createReader(ctx context.Context, config Config) (sheets.TimesheetReader, error) {
	switch config.Source {
	case PublishedSource:
		cli, err := published.New(config.TSVURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize published TSV reader: %w", err)
		}
		f.logger.Info("Initialized published TSV reader", "source", cli.Source())
		return cli, nil

	case FileSource:
		r := memory.NewFromFile(config.TimesheetFile)
		f.logger.Info("Initialized file reader", "path", config.TimesheetFile)
		return r, nil

	case SheetsSource:
		cli, err := gsheet.New(ctx, config.GoogleSpreadsheetID, config.GoogleSheetName)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
		}
		f.logger.Info("Initialized Google Sheets reader", "source", cli.Source())
		return cli, nil

	default:
		return nil, fmt.Errorf("unsupported source type: %s", config.Source)
	}
}

func (f *DefaultFactory) createJournal(config Config) (*BackendResult, error) {
	size := config.HistorySize
	if size <= 0 {
		size = defaultHistorySize
	}

	switch config.Journal {
	case SQLiteJournal:
		repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
		}
		f.logger.Info("Initialized SQLite load journal", "db_path", config.SQLiteDBPath)
		return &BackendResult{Recorder: repo, History: repo, Cleanup: repo.Close}, nil

	case AMQPJournal:
		// The worker owns the durable journal; this process keeps its own
		// recent history for /api/loads.
		local := memory.NewJournal(size)
		client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
		if err != nil {
			f.logger.Warn("Failed to initialize AMQP client, keeping load reports in memory", "error", err)
			return &BackendResult{Recorder: local, History: local}, nil
		}
		f.logger.Info("Initialized AMQP load journal",
			"exchange", config.AMQPExchange,
			"queue", config.AMQPQueue)
		return &BackendResult{
			Recorder: teeRecorder{local, client},
			History:  local,
			Cleanup:  client.Close,
		}, nil

	default:
		local := memory.NewJournal(size)
		f.logger.Info("Keeping load reports in memory", "limit", size)
		return &BackendResult{Recorder: local, History: local}, nil
	}
}

// teeRecorder records to every recorder and joins their errors.
type teeRecorder []sheets.LoadRecorder

func (t teeRecorder) RecordLoad(ctx context.Context, r core.LoadReport) error {
	var errs []error
	for _, rec := range t {
		if err := rec.RecordLoad(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
