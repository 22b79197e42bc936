package http

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	applog "horas/internal/log"
	"horas/internal/services"
)

// parseSelection reads ?month=1..12 and ?week=1..n. Missing or unparsable
// values fall back to def; range errors are fixed later by Normalize.
func parseSelection(q url.Values, def services.Selection) services.Selection {
	sel := def
	if v := strings.TrimSpace(q.Get("month")); v != "" {
		if m, err := strconv.Atoi(v); err == nil {
			sel = services.Selection{Month: time.Month(m)}
		}
	}
	if v := strings.TrimSpace(q.Get("week")); v != "" {
		if w, err := strconv.Atoi(v); err == nil {
			sel.WeekIndex = w - 1
		}
	}
	return sel
}

// selectionURL is the dashboard link for sel; the week is 1-based in URLs.
func selectionURL(sel services.Selection) string {
	q := url.Values{}
	q.Set("month", strconv.Itoa(int(sel.Month)))
	q.Set("week", strconv.Itoa(sel.WeekIndex+1))
	return "/?" + q.Encode()
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Encode JSON response failed", applog.FieldError, err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSONError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, errorResponse{Error: msg})
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

var templateFuncs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}
