package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"horas/internal/core"
	applog "horas/internal/log"

	_ "modernc.org/sqlite"
)

// SQLiteRepository is the load journal. It stores load diagnostics only;
// timesheet rows are never persisted.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository migrates the journal at dbPath and opens it.
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	logger := applog.New(applog.Config{Handler: slog.Default().Handler(), Component: applog.ComponentStorage})
	if _, err := RunMigrations(dbPath, logger); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// RecordLoad implements sheets.LoadRecorder
func (r *SQLiteRepository) RecordLoad(ctx context.Context, rep core.LoadReport) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO load_reports
			(source, year, started_at_ms, duration_ms, row_count, header_skipped, record_count, days_with_shift, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rep.Source, rep.Year, rep.StartedAt.UnixMilli(), rep.Duration.Milliseconds(),
		rep.Rows, boolToInt(rep.HeaderSkipped), rep.Records, rep.DaysWithShift, rep.Err)
	if err != nil {
		return fmt.Errorf("insert load report: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("load report id: %w", err)
	}

	if len(rep.Issues) > 0 {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO load_issues (report_id, line, kind, detail, dropped) VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare issue insert: %w", err)
		}
		defer stmt.Close()
		for _, is := range rep.Issues {
			if _, err := stmt.ExecContext(ctx, id, is.Line, string(is.Kind), is.Detail, boolToInt(is.Dropped)); err != nil {
				return fmt.Errorf("insert load issue: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit load report: %w", err)
	}

	slog.DebugContext(ctx, "Load report saved to SQLite",
		"id", id,
		"source", rep.Source,
		"issues", len(rep.Issues))
	return nil
}

// RecentLoads implements sheets.LoadHistory
func (r *SQLiteRepository) RecentLoads(ctx context.Context, limit int) ([]core.LoadReport, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, source, year, started_at_ms, duration_ms, row_count, header_skipped,
		       record_count, days_with_shift, error
		FROM load_reports
		ORDER BY started_at_ms DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query load reports: %w", err)
	}
	defer rows.Close()

	var (
		ids     []int64
		reports []core.LoadReport
	)
	for rows.Next() {
		var (
			id            int64
			rep           core.LoadReport
			startedMs     int64
			durationMs    int64
			headerSkipped int
		)
		if err := rows.Scan(&id, &rep.Source, &rep.Year, &startedMs, &durationMs, &rep.Rows,
			&headerSkipped, &rep.Records, &rep.DaysWithShift, &rep.Err); err != nil {
			return nil, fmt.Errorf("scan load report: %w", err)
		}
		rep.StartedAt = time.UnixMilli(startedMs).UTC()
		rep.Duration = time.Duration(durationMs) * time.Millisecond
		rep.HeaderSkipped = headerSkipped != 0
		ids = append(ids, id)
		reports = append(reports, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate load reports: %w", err)
	}
	rows.Close()

	for i, id := range ids {
		issues, err := r.issues(ctx, id)
		if err != nil {
			return nil, err
		}
		reports[i].Issues = issues
	}
	return reports, nil
}

func (r *SQLiteRepository) issues(ctx context.Context, reportID int64) ([]core.RowIssue, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT line, kind, detail, dropped FROM load_issues WHERE report_id = ? ORDER BY id`, reportID)
	if err != nil {
		return nil, fmt.Errorf("query load issues: %w", err)
	}
	defer rows.Close()

	var out []core.RowIssue
	for rows.Next() {
		var (
			is      core.RowIssue
			kind    string
			dropped int
		)
		if err := rows.Scan(&is.Line, &kind, &is.Detail, &dropped); err != nil {
			return nil, fmt.Errorf("scan load issue: %w", err)
		}
		is.Kind = core.IssueKind(kind)
		is.Dropped = dropped != 0
		out = append(out, is)
	}
	return out, rows.Err()
}

// PruneLoads keeps the newest keep reports and deletes the rest, issues
// included. It returns the number of reports removed.
func (r *SQLiteRepository) PruneLoads(ctx context.Context, keep int) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	const stale = `SELECT id FROM load_reports ORDER BY started_at_ms DESC, id DESC LIMIT -1 OFFSET ?`
	if _, err := tx.ExecContext(ctx, `DELETE FROM load_issues WHERE report_id IN (`+stale+`)`, keep); err != nil {
		return 0, fmt.Errorf("prune load issues: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM load_reports WHERE id IN (`+stale+`)`, keep)
	if err != nil {
		return 0, fmt.Errorf("prune load reports: %w", err)
	}
	n, _ := res.RowsAffected()
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit prune: %w", err)
	}
	return n, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
