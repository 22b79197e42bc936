package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"horas/internal/cache"
	"horas/internal/core"
	applog "horas/internal/log"
	"horas/internal/sheets"
)

// ErrNotLoaded is returned by queries made before the first successful load.
var ErrNotLoaded = errors.New("timesheet not loaded")

// Twelve months times at most six weeks each.
const summaryCacheSize = 72

const defaultFetchTimeout = 60 * time.Second

type summaryKey struct {
	generation uint64
	sel        Selection
}

// DashboardService owns the current timesheet and serves aggregates from it.
// Reloads swap the timesheet atomically; readers never see a partial load.
type DashboardService struct {
	reader   sheets.TimesheetReader
	recorder sheets.LoadRecorder
	builder  RecordBuilder
	logger   *applog.Logger
	now      func() time.Time

	fetchTimeout time.Duration

	group  singleflight.Group
	months *cache.LRU[summaryKey, MonthSummary]
	years  *cache.LRU[uint64, YearSummary]

	mu         sync.RWMutex
	timesheet  *core.Timesheet
	generation uint64
	lastReport *core.LoadReport
}

// DashboardOption customizes a DashboardService.
type DashboardOption func(*DashboardService)

// WithRecorder journals every load report.
func WithRecorder(r sheets.LoadRecorder) DashboardOption {
	return func(s *DashboardService) { s.recorder = r }
}

// WithLogger replaces the default component logger.
func WithLogger(l *applog.Logger) DashboardOption {
	return func(s *DashboardService) { s.logger = l }
}

// WithFetchTimeout bounds each shared fetch, independently of the callers'
// contexts.
func WithFetchTimeout(d time.Duration) DashboardOption {
	return func(s *DashboardService) {
		if d > 0 {
			s.fetchTimeout = d
		}
	}
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) DashboardOption {
	return func(s *DashboardService) { s.now = now }
}

func NewDashboardService(reader sheets.TimesheetReader, year int, locale core.Locale, opts ...DashboardOption) *DashboardService {
	s := &DashboardService{
		reader:  reader,
		builder: NewRecordBuilder(year, locale),
		logger:  applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentDashboard),
		now:     time.Now,

		fetchTimeout: defaultFetchTimeout,
		months:  cache.NewLRU[summaryKey, MonthSummary](summaryCacheSize, 0),
		years:   cache.NewLRU[uint64, YearSummary](1, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TargetYear is the timesheet year being served.
func (s *DashboardService) TargetYear() int {
	return s.builder.Year
}

// Locale is the locale used for labels.
func (s *DashboardService) Locale() core.Locale {
	return s.builder.Locale
}

// Load fetches and rebuilds the timesheet. Concurrent calls share a single
// fetch. On failure the previous timesheet, if any, stays in place.
//
// The shared fetch is detached from the caller that started it and bounded
// by the fetch timeout; cancelling ctx only stops this caller from waiting.
func (s *DashboardService) Load(ctx context.Context) (core.LoadReport, error) {
	ch := s.group.DoChan("load", func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.fetchTimeout)
		defer cancel()
		return s.load(fetchCtx)
	})

	select {
	case res := <-ch:
		if res.Shared {
			s.logger.DebugContext(ctx, "Joined in-flight load")
		}
		report, _ := res.Val.(core.LoadReport)
		return report, res.Err
	case <-ctx.Done():
		return core.LoadReport{}, ctx.Err()
	}
}

func (s *DashboardService) load(ctx context.Context) (core.LoadReport, error) {
	started := s.now()
	report := core.LoadReport{
		Source:    s.reader.Source(),
		Year:      s.builder.Year,
		StartedAt: started,
	}

	rows, err := s.reader.ReadRows(ctx)
	if err != nil {
		err = fmt.Errorf("read rows from %s: %w", report.Source, err)
		report.Duration = s.now().Sub(started)
		report.Err = err.Error()
		s.finish(ctx, report)
		s.logger.ErrorContext(ctx, "Timesheet load failed",
			applog.FieldSource, report.Source,
			applog.FieldError, err)
		return report, err
	}

	res := s.builder.Build(rows)
	report = res.Report(report)
	report.Duration = s.now().Sub(started)

	s.mu.Lock()
	s.timesheet = res.Timesheet
	s.generation++
	s.mu.Unlock()
	s.months.Purge()
	s.years.Purge()
	s.finish(ctx, report)

	applog.NewStructuredLogger(s.logger).LogLoadCompleted(ctx,
		report.Source, report.Year, report.Rows, report.Records, len(report.Issues))
	return report, nil
}

func (s *DashboardService) finish(ctx context.Context, report core.LoadReport) {
	s.mu.Lock()
	s.lastReport = &report
	s.mu.Unlock()

	if s.recorder == nil {
		return
	}
	if err := s.recorder.RecordLoad(ctx, report); err != nil {
		// The journal is diagnostic only.
		s.logger.WarnContext(ctx, "Failed to record load report", applog.FieldError, err)
	}
}

// Ready reports whether a timesheet has been loaded.
func (s *DashboardService) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.timesheet != nil
}

// LastReport returns the report of the most recent load attempt.
func (s *DashboardService) LastReport() (core.LoadReport, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastReport == nil {
		return core.LoadReport{}, false
	}
	return *s.lastReport, true
}

// InitialSelection is the month shown when no month is requested.
func (s *DashboardService) InitialSelection() Selection {
	return InitialSelection(s.builder.Year, s.now())
}

// Month summarizes the selected month. The selection is normalized first.
// Summaries are cached until the next successful load; callers must not
// modify the returned records.
func (s *DashboardService) Month(sel Selection) (MonthSummary, Selection, error) {
	ts, gen, err := s.current()
	if err != nil {
		return MonthSummary{}, sel, err
	}
	sel = sel.Normalize(ts.Year)
	key := summaryKey{generation: gen, sel: sel}
	if m, ok := s.months.Get(key); ok {
		return m, sel, nil
	}
	m := SummarizeMonth(ts, sel.Month, sel.WeekIndex)
	s.months.Set(key, m)
	return m, sel, nil
}

// Year summarizes the whole year.
func (s *DashboardService) Year() (YearSummary, error) {
	ts, gen, err := s.current()
	if err != nil {
		return YearSummary{}, err
	}
	if y, ok := s.years.Get(gen); ok {
		return y, nil
	}
	y := SummarizeYear(ts)
	s.years.Set(gen, y)
	return y, nil
}

func (s *DashboardService) current() (*core.Timesheet, uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.timesheet == nil {
		return nil, 0, ErrNotLoaded
	}
	return s.timesheet, s.generation, nil
}
