package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"horas/internal/core"
	applog "horas/internal/log"
	"horas/internal/services"
)

const (
	defaultLoadsLimit = 20
	maxLoadsLimit     = 200
)

// handleAPIMonth serves the month summary for ?month=&week=.
func (s *Server) handleAPIMonth(w http.ResponseWriter, r *http.Request) {
	sel := parseSelection(r.URL.Query(), s.dashboard.InitialSelection())
	m, _, err := s.dashboard.Month(sel)
	if err != nil {
		s.writeSummaryError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, services.NewMonthView(m, s.dashboard.Locale(), true))
}

// handleAPIYear serves the yearly summary.
func (s *Server) handleAPIYear(w http.ResponseWriter, r *http.Request) {
	y, err := s.dashboard.Year()
	if err != nil {
		s.writeSummaryError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, services.NewYearView(y, s.dashboard.Locale()))
}

type loadsResponse struct {
	Loads []core.LoadReport `json:"loads"`
}

// handleAPILoads lists recent load reports, newest first.
func (s *Server) handleAPILoads(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeJSONError(w, r, http.StatusNotFound, "load history not configured")
		return
	}

	limit := defaultLoadsLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeJSONError(w, r, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxLoadsLimit)
	}

	loads, err := s.history.RecentLoads(r.Context(), limit)
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "List load reports failed", applog.FieldError, err)
		writeJSONError(w, r, http.StatusInternalServerError, "could not list load reports")
		return
	}
	if loads == nil {
		loads = []core.LoadReport{}
	}
	writeJSON(w, r, http.StatusOK, loadsResponse{Loads: loads})
}

func (s *Server) writeSummaryError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, services.ErrNotLoaded) {
		writeJSONError(w, r, http.StatusServiceUnavailable, err.Error())
		return
	}
	applog.FromContext(r.Context()).ErrorContext(r.Context(), "Summary failed", applog.FieldError, err)
	writeJSONError(w, r, http.StatusInternalServerError, "internal error")
}

type healthResponse struct {
	Status    string           `json:"status"`
	Timestamp string           `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Security  map[string]int64 `json:"security"`
}

// handleHealth is the liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, healthResponse{
		Status:    "ok",
		Timestamp: time.Now().Format(time.RFC3339),
		Uptime:    time.Since(s.started).Round(time.Second).String(),
		Security:  s.security.snapshot(),
	})
}

type readyResponse struct {
	Status   string           `json:"status"`
	Year     int              `json:"year"`
	LastLoad *core.LoadReport `json:"last_load,omitempty"`
}

// handleReady is 503 until the first successful load. A later failed reload
// keeps the previous timesheet, so the service stays ready.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	resp := readyResponse{Status: "ready", Year: s.dashboard.TargetYear()}
	if report, ok := s.dashboard.LastReport(); ok {
		report.Issues = nil
		resp.LastLoad = &report
	}
	status := http.StatusOK
	if !s.dashboard.Ready() {
		resp.Status = "not_ready"
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, r, status, resp)
}
