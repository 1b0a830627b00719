package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"flexfit/internal/usertoken"
	"flexfit/internal/util"
	"flexfit/pkg/domain"
	"flexfit/services/plan/internal/app"
	"flexfit/services/plan/internal/genai"
)

// Config wires required dependencies for the HTTP server.
type Config struct {
	App           *app.App
	TokenVerifier *usertoken.Verifier
}

// Server exposes HTTP endpoints for the workout plan service.
type Server struct {
	app           *app.App
	tokenVerifier *usertoken.Verifier
	mux           *http.ServeMux
}

// New constructs the server with routes configured.
func New(cfg Config) *Server {
	s := &Server{
		app:           cfg.App,
		tokenVerifier: cfg.TokenVerifier,
		mux:           http.NewServeMux(),
	}
	s.routes()
	return s
}

// Router returns the configured handler.
func (s *Server) Router() http.Handler {
	return util.WithRequestLog("plan", util.WithRequestID(util.WithSecurityHeaders(util.WithCORS(s.mux))))
}

func (s *Server) routes() {
	s.mux.HandleFunc("/api/v1/plans/health", s.handleHealth)
	s.mux.HandleFunc("/api/v1/plans/info", s.handleInfo)
	s.mux.Handle("/api/v1/plans/generate", s.authenticated(s.handleGenerate))
	s.mux.Handle("/api/v1/plans/generate-weekly-plan", s.authenticated(s.handleGenerateWeekly))
	s.mux.Handle("/api/v1/plans/user/", s.authenticated(s.handleUserPlans))
	s.mux.Handle("/api/v1/plans/workout/", s.authenticated(s.handleCompleteWorkout))
	s.mux.Handle("/api/v1/plans/exercise/", s.authenticated(s.handleCompleteExercise))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "UP"})
}

func (s *Server) handleInfo(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service":     "workout-plan-service",
		"description": "AI-driven workout plan generation and tracking",
		"version":     "1.0.0",
	})
}

type authHandler func(http.ResponseWriter, *http.Request, string, usertoken.Claims)

// authenticated verifies the bearer token and hands the raw token through
// so downstream calls can forward it.
func (s *Server) authenticated(next authHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		claims, err := s.tokenVerifier.Verify(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next(w, r, token, claims)
	})
}

type generateRequest struct {
	UserID                string `json:"userId"`
	DayDate               string `json:"dayDate"`
	FocusSportType        string `json:"focusSportType"`
	TargetDurationMinutes int    `json:"targetDurationMinutes"`
	TextPrompt            string `json:"textPrompt"`
	AIPreference          string `json:"aiPreference"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request, token string, _ usertoken.Claims) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req generateRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	details := map[string]string{}
	if req.UserID == "" {
		details["userId"] = "userId is required"
	}
	var dayDate domain.Date
	if req.DayDate == "" {
		details["dayDate"] = "dayDate is required"
	} else {
		var err error
		dayDate, err = domain.ParseDate(req.DayDate)
		if err != nil {
			details["dayDate"] = "dayDate must be an ISO-8601 date"
		}
	}
	var focus domain.SportType
	if req.FocusSportType == "" {
		details["focusSportType"] = "focusSportType is required"
	} else {
		var ok bool
		focus, ok = domain.ParseSportType(req.FocusSportType)
		if !ok {
			details["focusSportType"] = "unknown sport type"
		}
	}
	if req.TargetDurationMinutes <= 0 {
		details["targetDurationMinutes"] = "targetDurationMinutes must be positive"
	}
	if len(details) > 0 {
		writeValidationError(w, details)
		return
	}
	workout, err := s.app.GeneratePlan(r.Context(), token, app.GenerateRequest{
		UserID:                req.UserID,
		DayDate:               dayDate,
		FocusSportType:        focus,
		TargetDurationMinutes: req.TargetDurationMinutes,
		TextPrompt:            req.TextPrompt,
		Backend:               genai.ParseBackend(req.AIPreference),
	})
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, workout)
}

type weeklyRequest struct {
	UserID       string `json:"userId"`
	TextPrompt   string `json:"textPrompt"`
	AIPreference string `json:"aiPreference"`
}

func (s *Server) handleGenerateWeekly(w http.ResponseWriter, r *http.Request, token string, _ usertoken.Claims) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req weeklyRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.UserID == "" {
		writeValidationError(w, map[string]string{"userId": "userId is required"})
		return
	}
	workouts, err := s.app.GenerateWeeklyPlan(r.Context(), token, app.WeeklyRequest{
		UserID:     req.UserID,
		TextPrompt: req.TextPrompt,
		Backend:    genai.ParseBackend(req.AIPreference),
	})
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"workouts": workouts})
}

// handleUserPlans serves /api/v1/plans/user/{userId}/date/{date} and
// /api/v1/plans/user/{userId}/range?startDate=&endDate=.
func (s *Server) handleUserPlans(w http.ResponseWriter, r *http.Request, _ string, _ usertoken.Claims) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/plans/user/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	switch {
	case len(parts) == 3 && parts[1] == "date":
		s.handleWorkoutByDate(w, parts[0], parts[2])
	case len(parts) == 2 && parts[1] == "range":
		s.handleWorkoutRange(w, r, parts[0])
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (s *Server) handleWorkoutByDate(w http.ResponseWriter, userID, rawDate string) {
	date, err := domain.ParseDate(rawDate)
	if err != nil {
		writeValidationError(w, map[string]string{"date": "date must be an ISO-8601 date"})
		return
	}
	workout, err := s.app.WorkoutForDate(userID, date)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, workout)
}

func (s *Server) handleWorkoutRange(w http.ResponseWriter, r *http.Request, userID string) {
	details := map[string]string{}
	start, err := domain.ParseDate(r.URL.Query().Get("startDate"))
	if err != nil {
		details["startDate"] = "startDate must be an ISO-8601 date"
	}
	end, err := domain.ParseDate(r.URL.Query().Get("endDate"))
	if err != nil {
		details["endDate"] = "endDate must be an ISO-8601 date"
	}
	if len(details) > 0 {
		writeValidationError(w, details)
		return
	}
	workouts, err := s.app.WorkoutsInRange(userID, start, end)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, workouts)
}

func (s *Server) handleCompleteWorkout(w http.ResponseWriter, r *http.Request, _ string, _ usertoken.Claims) {
	id, ok := completionTarget(r, "/api/v1/plans/workout/")
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if r.Method != http.MethodPut {
		methodNotAllowed(w)
		return
	}
	workout, err := s.app.CompleteWorkout(id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, workout)
}

func (s *Server) handleCompleteExercise(w http.ResponseWriter, r *http.Request, _ string, _ usertoken.Claims) {
	id, ok := completionTarget(r, "/api/v1/plans/exercise/")
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if r.Method != http.MethodPut {
		methodNotAllowed(w)
		return
	}
	workout, err := s.app.CompleteExercise(id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, workout)
}

// completionTarget extracts the id from /{prefix}{id}/complete.
func completionTarget(r *http.Request, prefix string) (string, bool) {
	rest := strings.TrimPrefix(r.URL.Path, prefix)
	parts := strings.Split(strings.Trim(rest, "/"), "/")
	if len(parts) != 2 || parts[1] != "complete" || parts[0] == "" {
		return "", false
	}
	return parts[0], true
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeValidationError(w http.ResponseWriter, details map[string]string) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"error":   "Validation Failed",
		"details": details,
	})
}

// writeAppError maps app sentinel errors onto HTTP statuses without
// leaking upstream detail.
func writeAppError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrWorkoutNotFound), errors.Is(err, app.ErrExerciseNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, app.ErrUserProfileUnavailable), errors.Is(err, app.ErrGenerationFailed):
		writeError(w, http.StatusInternalServerError, "Failed to generate workout plan")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" {
		return "", false
	}
	return token, true
}
