package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"flexfit/internal/usertoken"
	"flexfit/pkg/domain"
	"flexfit/services/plan/internal/app"
	"flexfit/services/plan/internal/genai"
	"flexfit/services/plan/internal/store"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type stubUsers struct{}

func (stubUsers) Profile(_ context.Context, userID, _ string) (domain.User, error) {
	return domain.User{ID: userID, Username: "tester", Email: "tester@example.com"}, nil
}

type stubGenerator struct {
	daily  *genai.GeneratedWorkout
	weekly []genai.GeneratedWorkout
}

func (g *stubGenerator) GenerateDaily(_ context.Context, _ genai.Backend, _ string, _ genai.DailyPromptContext) (*genai.GeneratedWorkout, error) {
	return g.daily, nil
}

func (g *stubGenerator) GenerateWeekly(_ context.Context, _ genai.Backend, _ string, _ genai.WeeklyPromptContext) ([]genai.GeneratedWorkout, error) {
	return g.weekly, nil
}

func newTestServer(t *testing.T, gen *stubGenerator) (*Server, string) {
	t.Helper()
	appCore, err := app.New(app.Config{
		Store:     store.NewMemoryStore(),
		Users:     stubUsers{},
		Generator: gen,
	})
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}
	verifier, err := usertoken.NewVerifier(testSecret, 0)
	if err != nil {
		t.Fatalf("NewVerifier: %v", err)
	}
	signer, err := usertoken.NewSigner(testSecret, 0)
	if err != nil {
		t.Fatalf("NewSigner: %v", err)
	}
	token, err := signer.Sign("user-1", "tester", "tester@example.com")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	return New(Config{App: appCore, TokenVerifier: verifier}), token
}

func doRequest(t *testing.T, s *Server, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestGenerateEndToEnd(t *testing.T) {
	gen := &stubGenerator{daily: &genai.GeneratedWorkout{
		DayDate:                 "2025-01-20",
		FocusSportTypeForTheDay: "STRENGTH",
		ScheduledExercises: []genai.GeneratedExercise{{
			SequenceOrder:   1,
			ExerciseName:    "Push-ups",
			EquipmentNeeded: []string{"NO_EQUIPMENT"},
		}},
	}}
	s, token := newTestServer(t, gen)

	rec := doRequest(t, s, http.MethodPost, "/api/v1/plans/generate", token,
		`{"userId":"user-1","dayDate":"2025-01-20","focusSportType":"STRENGTH","targetDurationMinutes":45,"aiPreference":"cloud"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var workout domain.DailyWorkout
	if err := json.Unmarshal(rec.Body.Bytes(), &workout); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(workout.ScheduledExercises) != 1 || workout.ScheduledExercises[0].ExerciseName != "Push-ups" {
		t.Fatalf("unexpected exercises: %+v", workout.ScheduledExercises)
	}
	if workout.CompletionStatus != domain.CompletionPending {
		t.Fatalf("status = %s, want PENDING", workout.CompletionStatus)
	}

	// The generated workout is immediately readable by date.
	rec = doRequest(t, s, http.MethodGet, "/api/v1/plans/user/user-1/date/2025-01-20", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("lookup status = %d", rec.Code)
	}
}

func TestGenerateRequiresToken(t *testing.T) {
	s, _ := newTestServer(t, &stubGenerator{})
	rec := doRequest(t, s, http.MethodPost, "/api/v1/plans/generate", "", `{}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestGenerateRejectsBadToken(t *testing.T) {
	s, _ := newTestServer(t, &stubGenerator{})
	rec := doRequest(t, s, http.MethodPost, "/api/v1/plans/generate", "not-a-token", `{}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestGenerateValidationErrors(t *testing.T) {
	s, token := newTestServer(t, &stubGenerator{})
	rec := doRequest(t, s, http.MethodPost, "/api/v1/plans/generate", token,
		`{"dayDate":"not-a-date","focusSportType":"SWIMMING"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp struct {
		Error   string            `json:"error"`
		Details map[string]string `json:"details"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error != "Validation Failed" {
		t.Fatalf("error = %q", resp.Error)
	}
	for _, field := range []string{"userId", "dayDate", "focusSportType", "targetDurationMinutes"} {
		if resp.Details[field] == "" {
			t.Fatalf("missing detail for %s: %v", field, resp.Details)
		}
	}
}

func TestGenerateMethodNotAllowed(t *testing.T) {
	s, token := newTestServer(t, &stubGenerator{})
	rec := doRequest(t, s, http.MethodGet, "/api/v1/plans/generate", token, "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestWorkoutByDateNotFound(t *testing.T) {
	s, token := newTestServer(t, &stubGenerator{})
	rec := doRequest(t, s, http.MethodGet, "/api/v1/plans/user/user-1/date/2025-01-20", token, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestRangeInvertedReturnsEmptyList(t *testing.T) {
	s, token := newTestServer(t, &stubGenerator{})
	rec := doRequest(t, s, http.MethodGet,
		"/api/v1/plans/user/user-1/range?startDate=2025-01-25&endDate=2025-01-10", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var workouts []domain.DailyWorkout
	if err := json.Unmarshal(rec.Body.Bytes(), &workouts); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(workouts) != 0 {
		t.Fatalf("workouts = %d, want 0", len(workouts))
	}
}

func TestCompleteWorkoutNotFound(t *testing.T) {
	s, token := newTestServer(t, &stubGenerator{})
	rec := doRequest(t, s, http.MethodPut, "/api/v1/plans/workout/missing/complete", token, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestCompleteExerciseFlow(t *testing.T) {
	gen := &stubGenerator{daily: &genai.GeneratedWorkout{
		DayDate:                 "2025-01-20",
		FocusSportTypeForTheDay: "STRENGTH",
		ScheduledExercises: []genai.GeneratedExercise{
			{SequenceOrder: 1, ExerciseName: "Push-ups"},
		},
	}}
	s, token := newTestServer(t, gen)
	rec := doRequest(t, s, http.MethodPost, "/api/v1/plans/generate", token,
		`{"userId":"user-1","dayDate":"2025-01-20","focusSportType":"STRENGTH","targetDurationMinutes":45}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("generate status = %d", rec.Code)
	}
	var workout domain.DailyWorkout
	if err := json.Unmarshal(rec.Body.Bytes(), &workout); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = doRequest(t, s, http.MethodPut, "/api/v1/plans/exercise/"+workout.ScheduledExercises[0].ID+"/complete", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("complete status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var after domain.DailyWorkout
	if err := json.Unmarshal(rec.Body.Bytes(), &after); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// The only exercise is done, so the workout is promoted too.
	if after.CompletionStatus != domain.CompletionCompleted {
		t.Fatalf("workout status = %s, want COMPLETED", after.CompletionStatus)
	}
}

func TestHealthAndInfoAreOpen(t *testing.T) {
	s, _ := newTestServer(t, &stubGenerator{})
	for _, path := range []string{"/api/v1/plans/health", "/api/v1/plans/info"} {
		rec := doRequest(t, s, http.MethodGet, path, "", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("%s status = %d, want 200", path, rec.Code)
		}
	}
}
