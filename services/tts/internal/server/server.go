package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"flexfit/internal/util"
	"flexfit/services/tts/internal/app"
)

// Texts beyond this length exceed what the provider accepts in one call.
const maxTextLength = 5000

// Config wires required dependencies for the HTTP server.
type Config struct {
	App *app.App
}

// Server exposes HTTP endpoints for the TTS service.
type Server struct {
	app *app.App
	mux *http.ServeMux
}

// New constructs the server with routes configured.
func New(cfg Config) *Server {
	s := &Server{
		app: cfg.App,
		mux: http.NewServeMux(),
	}
	s.routes()
	return s
}

// Router returns the configured handler.
func (s *Server) Router() http.Handler {
	return util.WithRequestLog("tts", util.WithRequestID(util.WithSecurityHeaders(util.WithCORS(s.mux))))
}

func (s *Server) routes() {
	s.mux.HandleFunc("/api/tts/health", s.handleHealth)
	s.mux.HandleFunc("/api/tts/info", s.handleInfo)
	s.mux.HandleFunc("/api/tts/synthesize", s.handleSynthesize)
	s.mux.HandleFunc("/api/tts/generate", s.handleGenerate)
	s.mux.HandleFunc("/api/tts/voices", s.handleVoices)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "UP"})
}

func (s *Server) handleInfo(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service":     "tts-service",
		"description": "voice cue synthesis for workout playback",
		"version":     "1.0.0",
	})
}

type synthesizeRequest struct {
	Text         string  `json:"text"`
	VoiceName    string  `json:"voiceName"`
	LanguageCode string  `json:"languageCode"`
	SpeakingRate float64 `json:"speakingRate"`
}

func (s *Server) decodeSynthesisRequest(w http.ResponseWriter, r *http.Request) (app.SynthesisRequest, bool) {
	var req synthesizeRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return app.SynthesisRequest{}, false
	}
	details := map[string]string{}
	if req.Text == "" {
		details["text"] = "text is required"
	} else if len(req.Text) > maxTextLength {
		details["text"] = "text must be at most " + strconv.Itoa(maxTextLength) + " characters"
	}
	if req.SpeakingRate < 0 {
		details["speakingRate"] = "speakingRate must be positive"
	}
	if len(details) > 0 {
		writeValidationError(w, details)
		return app.SynthesisRequest{}, false
	}
	return app.SynthesisRequest{
		Text:         req.Text,
		VoiceName:    req.VoiceName,
		LanguageCode: req.LanguageCode,
		SpeakingRate: req.SpeakingRate,
	}, true
}

// handleSynthesize streams raw MP3 bytes.
func (s *Server) handleSynthesize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	req, ok := s.decodeSynthesisRequest(w, r)
	if !ok {
		return
	}
	audio, err := s.app.Synthesize(r.Context(), req)
	if err != nil {
		writeAppError(w, err)
		return
	}
	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Content-Length", strconv.Itoa(len(audio)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(audio)
}

// handleGenerate returns base64 audio plus metadata and a stored-clip URL
// when object storage is configured.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	req, ok := s.decodeSynthesisRequest(w, r)
	if !ok {
		return
	}
	result, err := s.app.GenerateAudio(r.Context(), req)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleVoices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	voices, err := s.app.Voices(r.Context(), r.URL.Query().Get("languageCode"))
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"voices": voices})
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
	if errors.Is(err, app.ErrSynthesisFailed) {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, "internal error")
}
