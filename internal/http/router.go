package httpx

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cloudbr34k84/travel-app-sub000/internal/repository"
	"github.com/cloudbr34k84/travel-app-sub000/internal/service/auth"
	"github.com/cloudbr34k84/travel-app-sub000/internal/service/share"
	"github.com/cloudbr34k84/travel-app-sub000/internal/service/travel"
)

// Router wires HTTP endpoints to services.
type Router struct {
	mux     *http.ServeMux
	logger  *slog.Logger
	auth    auth.Service
	travel  travel.Service
	share   share.Service
	limiter RateLimiter

	cookieName    string
	secureCookies bool
	appSecret     string
	rateWindow    time.Duration
	globalLimit   int
	authLimit     int
	dbHealth      func(context.Context) error

	metricsOnce        sync.Once
	metricsInitialized bool
	requestTotal       *prometheus.CounterVec
	requestLatency     *prometheus.HistogramVec
	rateLimitHits      *prometheus.CounterVec
}

// Config carries transport tuning for the router.
type Config struct {
	CookieName    string
	SecureCookies bool
	AppSecret     string
	RateWindow    time.Duration
	GlobalLimit   int
	AuthLimit     int
}

const healthCheckTimeout = 2 * time.Second

// NewRouter assembles routes with dependencies.
func NewRouter(logger *slog.Logger, authSvc auth.Service, travelSvc travel.Service, shareSvc share.Service, limiter RateLimiter, cfg Config, dbHealth func(context.Context) error) *Router {
	r := &Router{
		mux:           http.NewServeMux(),
		logger:        logger,
		auth:          authSvc,
		travel:        travelSvc,
		share:         shareSvc,
		limiter:       limiter,
		cookieName:    cfg.CookieName,
		secureCookies: cfg.SecureCookies,
		appSecret:     cfg.AppSecret,
		rateWindow:    cfg.RateWindow,
		globalLimit:   cfg.GlobalLimit,
		authLimit:     cfg.AuthLimit,
		dbHealth:      dbHealth,
	}
	if r.cookieName == "" {
		r.cookieName = "travel_session"
	}
	if r.rateWindow <= 0 {
		r.rateWindow = 15 * time.Minute
	}
	if r.limiter == nil {
		r.limiter = NewMemoryRateLimiter()
	}
	r.initMetrics()
	r.register()
	return r
}

// ServeHTTP delegates to underlying mux.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Close releases background resources.
func (r *Router) Close() {
	if r.limiter != nil {
		r.limiter.Close()
	}
}

func (r *Router) register() {
	// public: session resolved when present, global IP window applied.
	public := func(route string, h http.HandlerFunc) http.HandlerFunc {
		return r.audit(route, r.withRateLimit("global", r.globalLimit, r.withSession(h)))
	}
	// authRoute: credential endpoints get the stricter shared window on top.
	authRoute := func(route string, h http.HandlerFunc) http.HandlerFunc {
		return r.audit(route, r.withRateLimit("global", r.globalLimit,
			r.withRateLimit("auth", r.authLimit, r.withSession(h))))
	}
	// protected: session mandatory, state changes CSRF-checked.
	protected := func(route string, h http.HandlerFunc) http.HandlerFunc {
		return public(route, r.withCSRF(r.requireSession(h)))
	}

	r.mux.HandleFunc("/healthz", r.audit("healthz", r.handleHealthz))
	r.mux.Handle("/metrics", promhttp.Handler())

	r.mux.HandleFunc("/api/register", authRoute("register", r.handleRegister))
	r.mux.HandleFunc("/api/login", authRoute("login", r.handleLogin))
	r.mux.HandleFunc("/api/logout", public("logout", r.withCSRF(r.handleLogout)))
	r.mux.HandleFunc("/api/logout/all", protected("logout_all", r.handleLogoutAll))
	r.mux.HandleFunc("/api/csrf", public("csrf", r.requireSession(r.handleCSRF)))
	r.mux.HandleFunc("/api/user", public("user", r.withCSRF(r.handleUser)))
	r.mux.HandleFunc("/api/user/change-password", authRoute("change_password", r.withCSRF(r.requireSession(r.handleChangePassword))))

	r.mux.HandleFunc("/api/destinations", protected("destinations", r.handleDestinations))
	r.mux.HandleFunc("/api/destinations/{id}", protected("destination", r.handleDestinationByID))
	r.mux.HandleFunc("/api/activities", protected("activities", r.handleActivities))
	r.mux.HandleFunc("/api/activities/{id}", protected("activity", r.handleActivityByID))
	r.mux.HandleFunc("/api/accommodations", protected("accommodations", r.handleAccommodations))
	r.mux.HandleFunc("/api/accommodations/{id}", protected("accommodation", r.handleAccommodationByID))

	r.mux.HandleFunc("/api/trips", protected("trips", r.handleTrips))
	r.mux.HandleFunc("/api/trips/{id}", protected("trip", r.handleTripByID))
	r.mux.HandleFunc("/api/trips/{id}/share", protected("trip_share", r.handleTripShare))
	r.mux.HandleFunc("/api/trips/{id}/destinations/{itemID}", protected("trip_items", r.handleTripItem(repository.TripItemDestination)))
	r.mux.HandleFunc("/api/trips/{id}/activities/{itemID}", protected("trip_items", r.handleTripItem(repository.TripItemActivity)))
	r.mux.HandleFunc("/api/trips/{id}/accommodations/{itemID}", protected("trip_items", r.handleTripItem(repository.TripItemAccommodation)))
	r.mux.HandleFunc("/api/dashboard", protected("dashboard", r.handleDashboard))

	r.mux.HandleFunc("/api/shared/{token}", public("shared", r.handleShared))
}

func (r *Router) handleHealthz(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		r.methodNotAllowed(w)
		return
	}
	components := make(map[string]any)
	status := "ok"
	if r.dbHealth != nil {
		ctx, cancel := context.WithTimeout(req.Context(), healthCheckTimeout)
		defer cancel()
		if err := r.dbHealth(ctx); err != nil {
			status = "degraded"
			components["database"] = map[string]any{
				"status": "down",
				"error":  err.Error(),
			}
		} else {
			components["database"] = map[string]any{"status": "up"}
		}
	}
	payload := map[string]any{
		"status":     status,
		"components": components,
		"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
	}
	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, payload)
}

func (r *Router) audit(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w}
		start := time.Now()
		next(recorder, req)

		status := recorder.status
		if status == 0 {
			status = http.StatusOK
		}
		ctx := recorder.ctx
		if ctx == nil {
			ctx = req.Context()
		}
		duration := time.Since(start)
		r.recordRequestMetrics(req.Method, route, status, duration)

		actor := "anonymous"
		fields := []any{
			"method", req.Method,
			"path", req.URL.Path,
			"status", status,
			"bytes", recorder.bytes,
			"duration_ms", duration.Milliseconds(),
		}
		if ip := clientIP(req); ip != "" {
			fields = append(fields, "ip", ip)
		}
		if reqID := strings.TrimSpace(req.Header.Get("X-Request-ID")); reqID != "" {
			fields = append(fields, "request_id", reqID)
		}
		if sess := sessionFromContext(ctx); !sess.Anonymous() {
			actor = "user"
			fields = append(fields, "user_id", sess.UserID)
		}
		fields = append(fields, "actor", actor)

		switch {
		case status >= http.StatusInternalServerError:
			r.logger.Error("http_request", fields...)
		case status >= http.StatusBadRequest:
			r.logger.Warn("http_request", fields...)
		default:
			r.logger.Info("http_request", fields...)
		}
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
	ctx    context.Context
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	if sr.status == 0 {
		sr.status = http.StatusOK
	}
	n, err := sr.ResponseWriter.Write(b)
	sr.bytes += n
	return n, err
}

func (sr *statusRecorder) SetContext(ctx context.Context) {
	sr.ctx = ctx
}

func (sr *statusRecorder) Flush() {
	if f, ok := sr.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func clientIP(req *http.Request) string {
	if forwarded := strings.TrimSpace(req.Header.Get("X-Forwarded-For")); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		if len(parts) > 0 {
			ip := strings.TrimSpace(parts[0])
			if ip != "" {
				return ip
			}
		}
	}
	host, _, err := net.SplitHostPort(strings.TrimSpace(req.RemoteAddr))
	if err != nil {
		return strings.TrimSpace(req.RemoteAddr)
	}
	return host
}

func (r *Router) applyRateHeaders(w http.ResponseWriter, limit int, decision rateDecision) {
	if limit <= 0 {
		return
	}
	remaining := limit - decision.count
	if remaining < 0 {
		remaining = 0
	}
	headers := w.Header()
	headers.Set("X-RateLimit-Limit", strconv.Itoa(limit))
	headers.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
	if !decision.windowEnd.IsZero() {
		headers.Set("X-RateLimit-Reset", strconv.FormatInt(decision.windowEnd.Unix(), 10))
	}
}

func (r *Router) methodNotAllowed(w http.ResponseWriter) {
	writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
}
