package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	"flexfit/internal/ratelimit"
	"flexfit/internal/util"
)

// Config wires required dependencies for the HTTP server.
type Config struct {
	UserServiceURL             string
	PlanServiceURL             string
	TTSServiceURL              string
	RedisAddr                  string
	RedisPassword              string
	RegisterRateLimitPerMinute int
	LoginRateLimitPerMinute    int
}

type route struct {
	Prefix  string `json:"prefix"`
	Service string `json:"service"`
}

// Server is the single public entry point. It proxies requests to the
// user, workout plan and TTS services from a static route table.
type Server struct {
	users           *httputil.ReverseProxy
	plans           *httputil.ReverseProxy
	tts             *httputil.ReverseProxy
	registerLimiter *ratelimit.FixedWindowLimiter
	loginLimiter    *ratelimit.FixedWindowLimiter
	routeTable      []route
	mux             *http.ServeMux
}

// New constructs the server with routes configured.
func New(cfg Config) (*Server, error) {
	users, err := newProxy(cfg.UserServiceURL)
	if err != nil {
		return nil, fmt.Errorf("user service proxy: %w", err)
	}
	plans, err := newProxy(cfg.PlanServiceURL)
	if err != nil {
		return nil, fmt.Errorf("plan service proxy: %w", err)
	}
	tts, err := newProxy(cfg.TTSServiceURL)
	if err != nil {
		return nil, fmt.Errorf("tts service proxy: %w", err)
	}

	registerLimit := cfg.RegisterRateLimitPerMinute
	if registerLimit <= 0 {
		registerLimit = 5
	}
	loginLimit := cfg.LoginRateLimitPerMinute
	if loginLimit <= 0 {
		loginLimit = 10
	}
	registerLimiter, err := ratelimit.NewRedisFixedWindowLimiter(cfg.RedisAddr, cfg.RedisPassword, "flexfit:gateway:ratelimit:register", registerLimit, time.Minute)
	if err != nil {
		return nil, fmt.Errorf("init register limiter: %w", err)
	}
	loginLimiter, err := ratelimit.NewRedisFixedWindowLimiter(cfg.RedisAddr, cfg.RedisPassword, "flexfit:gateway:ratelimit:login", loginLimit, time.Minute)
	if err != nil {
		return nil, fmt.Errorf("init login limiter: %w", err)
	}

	s := &Server{
		users:           users,
		plans:           plans,
		tts:             tts,
		registerLimiter: registerLimiter,
		loginLimiter:    loginLimiter,
		routeTable: []route{
			{Prefix: "/api/v1/users/", Service: "user-service"},
			{Prefix: "/auth/", Service: "user-service"},
			{Prefix: "/api/v1/plans/", Service: "workout-plan-service"},
			{Prefix: "/api/tts/", Service: "tts-service"},
		},
		mux: http.NewServeMux(),
	}
	s.routes()
	return s, nil
}

// Router returns the configured handler.
func (s *Server) Router() http.Handler {
	return util.WithRequestLog("gateway", util.WithRequestID(util.WithSecurityHeaders(util.WithCORS(s.mux))))
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)
	s.mux.HandleFunc("/", s.handleIndex)

	// Credential endpoints get per-client rate limits before proxying.
	s.mux.Handle("/api/v1/users/register", s.limited(s.registerLimiter, s.users))
	s.mux.Handle("/auth/login", s.limited(s.loginLimiter, s.users))

	s.mux.Handle("/api/v1/users/", s.users)
	s.mux.Handle("/auth/", s.users)
	s.mux.Handle("/api/v1/plans/", s.plans)
	s.mux.Handle("/api/tts/", s.tts)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "UP"})
}

// handleIndex lists the route table at the root path only; anything else
// unmatched is a 404.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"service": "flexfit-gateway",
		"version": "1.0.0",
		"routes":  s.routeTable,
	})
}

// limited rejects a request when the client's fixed window is exhausted.
func (s *Server) limited(limiter *ratelimit.FixedWindowLimiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow(util.ClientIP(r)) {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func newProxy(raw string) (*httputil.ReverseProxy, error) {
	target, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("invalid upstream URL %q", raw)
	}
	proxy := httputil.NewSingleHostReverseProxy(target)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		util.LoggerFromContext(r.Context()).Error("upstream unavailable",
			"upstream", target.Host, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusBadGateway, "upstream unavailable")
	}
	return proxy, nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
