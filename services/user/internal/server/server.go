package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"flexfit/internal/usertoken"
	"flexfit/internal/util"
	"flexfit/pkg/auth"
	"flexfit/pkg/domain"
	"flexfit/services/user/internal/app"
)

// Config wires required dependencies for the HTTP server.
type Config struct {
	App           *app.App
	TokenVerifier *usertoken.Verifier
}

// Server exposes HTTP endpoints for the user service.
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
	return util.WithRequestLog("user", util.WithRequestID(util.WithSecurityHeaders(util.WithCORS(s.mux))))
}

func (s *Server) routes() {
	s.mux.HandleFunc("/api/v1/users/health", s.handleHealth)
	s.mux.HandleFunc("/api/v1/users/info", s.handleInfo)
	s.mux.HandleFunc("/api/v1/users/register", s.handleRegister)
	s.mux.HandleFunc("/auth/login", s.handleLogin)
	s.mux.Handle("/api/v1/users/me", s.authenticated(s.handleMe))
	s.mux.Handle("/api/v1/users/me/preferences", s.authenticated(s.handlePreferences))
	s.mux.Handle("/api/v1/users/", s.authenticated(s.handleUserByID))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "UP"})
}

func (s *Server) handleInfo(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service":     "user-service",
		"description": "account registration, authentication and profiles",
		"version":     "1.0.0",
	})
}

type authHandler func(http.ResponseWriter, *http.Request, usertoken.Claims)

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
		next(w, r, claims)
	})
}

type registerRequest struct {
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	DateOfBirth string   `json:"dateOfBirth"`
	HeightCm    *int     `json:"heightCm"`
	WeightKg    *float64 `json:"weightKg"`
	Gender      string   `json:"gender"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req registerRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	details := map[string]string{}
	if len(strings.TrimSpace(req.Username)) < 3 {
		details["username"] = "username must be at least 3 characters"
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		details["email"] = "a valid email is required"
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		details["password"] = err.Error()
	}
	var dob domain.Date
	if req.DateOfBirth != "" {
		var err error
		dob, err = domain.ParseDate(req.DateOfBirth)
		if err != nil {
			details["dateOfBirth"] = "dateOfBirth must be an ISO-8601 date"
		}
	}
	var gender domain.Gender
	if req.Gender != "" {
		var ok bool
		gender, ok = domain.ParseGender(req.Gender)
		if !ok {
			details["gender"] = "unknown gender value"
		}
	}
	if len(details) > 0 {
		writeValidationError(w, details)
		return
	}
	user, err := s.app.Register(r.Context(), app.RegisterRequest{
		Username:    strings.TrimSpace(req.Username),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Password:    req.Password,
		DateOfBirth: dob,
		HeightCm:    req.HeightCm,
		WeightKg:    req.WeightKg,
		Gender:      gender,
	})
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string      `json:"token"`
	TokenType string      `json:"tokenType"`
	User      domain.User `json:"user"`
	Message   string      `json:"message"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	var req loginRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	details := map[string]string{}
	if req.Email == "" {
		details["email"] = "email is required"
	}
	if req.Password == "" {
		details["password"] = "password is required"
	}
	if len(details) > 0 {
		writeValidationError(w, details)
		return
	}
	result, err := s.app.Login(r.Context(), strings.ToLower(strings.TrimSpace(req.Email)), req.Password)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{
		Token:     result.Token,
		TokenType: "Bearer",
		User:      result.User,
		Message:   "Login successful",
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request, claims usertoken.Claims) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	user, err := s.app.UserByID(claims.UserID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handlePreferences(w http.ResponseWriter, r *http.Request, claims usertoken.Claims) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w)
		return
	}
	var prefs domain.UserPreferences
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&prefs); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if details := validatePreferences(prefs); len(details) > 0 {
		writeValidationError(w, details)
		return
	}
	user, err := s.app.UpdatePreferences(claims.UserID, prefs)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// handleUserByID serves /api/v1/users/{id}, consumed by the workout plan
// service for profile lookups.
func (s *Server) handleUserByID(w http.ResponseWriter, r *http.Request, _ usertoken.Claims) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/v1/users/"), "/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	user, err := s.app.UserByID(id)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// validatePreferences strictly rejects unknown enum values; leniency is
// reserved for AI worker output, not client input.
func validatePreferences(p domain.UserPreferences) map[string]string {
	details := map[string]string{}
	if p.ExperienceLevel != "" {
		if _, ok := domain.ParseExperienceLevel(string(p.ExperienceLevel)); !ok {
			details["experienceLevel"] = "unknown experience level"
		}
	}
	if p.IntensityPreference != "" {
		if _, ok := domain.ParseIntensityPreference(string(p.IntensityPreference)); !ok {
			details["intensityPreference"] = "unknown intensity preference"
		}
	}
	for _, g := range p.FitnessGoals {
		if _, ok := domain.ParseFitnessGoal(string(g)); !ok {
			details["fitnessGoals"] = "unknown fitness goal: " + string(g)
		}
	}
	for _, st := range p.PreferredSportTypes {
		if _, ok := domain.ParseSportType(string(st)); !ok {
			details["preferredSportTypes"] = "unknown sport type: " + string(st)
		}
	}
	for _, eq := range p.AvailableEquipment {
		if _, ok := domain.ParseEquipmentItem(string(eq)); !ok {
			details["availableEquipment"] = "unknown equipment item: " + string(eq)
		}
	}
	return details
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

func writeAppError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrUsernameTaken), errors.Is(err, app.ErrEmailTaken):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, app.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, app.ErrUserNotFound):
		writeError(w, http.StatusNotFound, err.Error())
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
