package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"horas/internal/core"
	applog "horas/internal/log"
	"horas/internal/services"
	"horas/internal/sheets"
	appweb "horas/web"
)

// Dashboard is the read side the handlers render from.
type Dashboard interface {
	Load(ctx context.Context) (core.LoadReport, error)
	Ready() bool
	LastReport() (core.LoadReport, bool)
	InitialSelection() services.Selection
	Month(sel services.Selection) (services.MonthSummary, services.Selection, error)
	Year() (services.YearSummary, error)
	Locale() core.Locale
	TargetYear() int
}

type Server struct {
	http.Server
	templates     *template.Template
	dashboard     Dashboard
	history       sheets.LoadHistory
	reloadTimeout time.Duration

	logger      *applog.Logger
	structured  *applog.StructuredLogger
	rateLimiter *rateLimiter
	security    *securityMetrics
	started     time.Time
	now         func() time.Time

	shutdownOnce sync.Once
}

// Option customizes a Server.
type Option func(*Server)

// WithHistory enables GET /api/loads.
func WithHistory(h sheets.LoadHistory) Option {
	return func(s *Server) { s.history = h }
}

// WithLogger replaces the default HTTP logger.
func WithLogger(l *applog.Logger) Option {
	return func(s *Server) { s.logger = l.WithComponent(applog.ComponentHTTP) }
}

// WithReloadTimeout bounds the fetch triggered by POST /reload.
func WithReloadTimeout(d time.Duration) Option {
	return func(s *Server) { s.reloadTimeout = d }
}

// WithClock overrides time.Now for the calendar's today marker.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithRateLimit overrides the POST rate limit per client IP.
func WithRateLimit(limit int, window time.Duration) Option {
	return func(s *Server) {
		s.rateLimiter.limit = limit
		s.rateLimiter.window = window
	}
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr string, d Dashboard, opts ...Option) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
		dashboard:     d,
		reloadTimeout: 60 * time.Second,
		logger:        applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentHTTP),
		rateLimiter:   newRateLimiter(),
		security:      &securityMetrics{},
		started:       time.Now(),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.structured = applog.NewStructuredLogger(s.logger)

	// Parse embedded templates at startup.
	t, err := template.New("").Funcs(templateFuncs).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		s.logger.Warn("Failed parsing templates", applog.FieldError, err)
	} else {
		s.templates = t
	}

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("GET /static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600")
			static.ServeHTTP(w, r)
		}))
	} else {
		s.logger.Warn("Failed to mount embedded static FS", applog.FieldError, err)
	}

	mux.HandleFunc("GET /{$}", s.withSecurityHeaders(s.handleIndex))
	mux.HandleFunc("POST /reload", s.withSecurityHeaders(s.handleReload))
	mux.HandleFunc("GET /api/month", s.withSecurityHeaders(s.handleAPIMonth))
	mux.HandleFunc("GET /api/year", s.withSecurityHeaders(s.handleAPIYear))
	mux.HandleFunc("GET /api/loads", s.withSecurityHeaders(s.handleAPILoads))
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	return s
}

// Shutdown stops the rate limiter cleanup and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// withSecurityHeaders adds security headers, rate limiting, and request logging to responses
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		clientIP := extractClientIP(r)
		requestID := generateRequestID()

		logger := s.logger.With(applog.FieldRequestID, requestID)
		ctx := applog.NewContext(r.Context(), logger)
		r = r.WithContext(ctx)

		s.structured.LogHTTPStart(ctx, r, clientIP)

		if detectSuspiciousRequest(r, s.security) {
			logger.WarnContext(ctx, "Suspicious request",
				applog.FieldClientIP, clientIP,
				applog.FieldPath, r.URL.Path,
				applog.FieldUserAgent, r.Header.Get("User-Agent"))
		}

		w.Header().Set("X-Request-ID", requestID)
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self'; img-src 'self' data:; form-action 'self'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		if r.Method == http.MethodPost && !s.rateLimiter.allow(clientIP, s.security) {
			logger.WarnContext(ctx, "Rate limit exceeded", applog.FieldClientIP, clientIP, applog.FieldPath, r.URL.Path)
			rw.Header().Set("Retry-After", "60")
			http.Error(rw, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
		} else {
			next(rw, r)
		}

		s.structured.LogHTTPEnd(ctx, r, rw.statusCode, time.Since(start).Milliseconds(), clientIP)
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
