package app

import (
	"context"
	"errors"
	"testing"

	"flexfit/pkg/domain"
	"flexfit/services/plan/internal/genai"
	"flexfit/services/plan/internal/store"
)

type fakeUsers struct {
	user domain.User
	err  error
}

func (f *fakeUsers) Profile(_ context.Context, userID, _ string) (domain.User, error) {
	if f.err != nil {
		return domain.User{}, f.err
	}
	u := f.user
	u.ID = userID
	return u, nil
}

type fakeGenerator struct {
	daily  *genai.GeneratedWorkout
	weekly []genai.GeneratedWorkout
	err    error

	lastBackend genai.Backend
	lastToken   string
	lastDaily   genai.DailyPromptContext
	lastWeekly  genai.WeeklyPromptContext
}

func (f *fakeGenerator) GenerateDaily(_ context.Context, backend genai.Backend, token string, payload genai.DailyPromptContext) (*genai.GeneratedWorkout, error) {
	f.lastBackend = backend
	f.lastToken = token
	f.lastDaily = payload
	if f.err != nil {
		return nil, f.err
	}
	return f.daily, nil
}

func (f *fakeGenerator) GenerateWeekly(_ context.Context, backend genai.Backend, token string, payload genai.WeeklyPromptContext) ([]genai.GeneratedWorkout, error) {
	f.lastBackend = backend
	f.lastToken = token
	f.lastWeekly = payload
	if f.err != nil {
		return nil, f.err
	}
	return f.weekly, nil
}

func newTestApp(t *testing.T, gen *fakeGenerator) (*App, *store.MemoryStore) {
	t.Helper()
	mem := store.NewMemoryStore()
	a, err := New(Config{
		Store:     mem,
		Users:     &fakeUsers{},
		Generator: gen,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a, mem
}

func mustDate(t *testing.T, s string) domain.Date {
	t.Helper()
	d, err := domain.ParseDate(s)
	if err != nil {
		t.Fatalf("parse date %s: %v", s, err)
	}
	return d
}

func generatedWorkout(day string, names ...string) *genai.GeneratedWorkout {
	g := &genai.GeneratedWorkout{
		DayDate:                 day,
		FocusSportTypeForTheDay: "HIIT",
		MarkdownContent:         "## Session",
	}
	for i, name := range names {
		g.ScheduledExercises = append(g.ScheduledExercises, genai.GeneratedExercise{
			SequenceOrder:        i + 1,
			ExerciseName:         name,
			ApplicableSportTypes: []string{"HIIT"},
			MuscleGroupsPrimary:  []string{"full_body"},
			EquipmentNeeded:      []string{"NO_EQUIPMENT"},
		})
	}
	return g
}

func TestGeneratePlanPersistsWorkout(t *testing.T) {
	gen := &fakeGenerator{daily: generatedWorkout("2025-01-20", "Burpees", "Mountain Climbers", "Jump Squats")}
	a, _ := newTestApp(t, gen)

	req := GenerateRequest{
		UserID:                "user-1",
		DayDate:               mustDate(t, "2025-01-20"),
		FocusSportType:        domain.SportStrength,
		TargetDurationMinutes: 45,
		Backend:               genai.BackendCloud,
	}
	workout, err := a.GeneratePlan(context.Background(), "token", req)
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	// Focus comes from the AI response, not the request.
	if workout.FocusSportTypeForTheDay != domain.SportHIIT {
		t.Fatalf("focus = %s, want HIIT", workout.FocusSportTypeForTheDay)
	}
	if workout.CompletionStatus != domain.CompletionPending {
		t.Fatalf("status = %s, want PENDING", workout.CompletionStatus)
	}
	if len(workout.ScheduledExercises) != 3 {
		t.Fatalf("exercises = %d, want 3", len(workout.ScheduledExercises))
	}
	for i, ex := range workout.ScheduledExercises {
		if ex.SequenceOrder != i+1 {
			t.Fatalf("exercise %d order = %d, want %d", i, ex.SequenceOrder, i+1)
		}
		if ex.CompletionStatus != domain.CompletionPending {
			t.Fatalf("exercise %d status = %s, want PENDING", i, ex.CompletionStatus)
		}
	}

	stored, err := a.WorkoutForDate("user-1", req.DayDate)
	if err != nil {
		t.Fatalf("WorkoutForDate: %v", err)
	}
	if stored.ID != workout.ID {
		t.Fatalf("stored id = %s, want %s", stored.ID, workout.ID)
	}
	if gen.lastBackend != genai.BackendCloud {
		t.Fatalf("backend = %s, want cloud", gen.lastBackend)
	}
}

func TestGeneratePlanForwardsTokenToWorker(t *testing.T) {
	gen := &fakeGenerator{daily: generatedWorkout("2025-01-20", "Burpees")}
	a, _ := newTestApp(t, gen)

	if _, err := a.GeneratePlan(context.Background(), "caller-jwt", GenerateRequest{
		UserID:                "user-1",
		DayDate:               mustDate(t, "2025-01-20"),
		FocusSportType:        domain.SportHIIT,
		TargetDurationMinutes: 30,
	}); err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	if gen.lastToken != "caller-jwt" {
		t.Fatalf("worker token = %q, want caller-jwt", gen.lastToken)
	}

	if _, err := a.GenerateWeeklyPlan(context.Background(), "weekly-jwt", WeeklyRequest{UserID: "user-1"}); err != nil {
		t.Fatalf("GenerateWeeklyPlan: %v", err)
	}
	if gen.lastToken != "weekly-jwt" {
		t.Fatalf("worker token = %q, want weekly-jwt", gen.lastToken)
	}
}

func TestGeneratePlanUsesRequestDateNotResponseDate(t *testing.T) {
	// A worker echoing the wrong day must not move the workout.
	gen := &fakeGenerator{daily: generatedWorkout("2025-02-03", "Burpees")}
	a, _ := newTestApp(t, gen)

	requested := mustDate(t, "2025-01-20")
	workout, err := a.GeneratePlan(context.Background(), "token", GenerateRequest{
		UserID:                "user-1",
		DayDate:               requested,
		FocusSportType:        domain.SportHIIT,
		TargetDurationMinutes: 30,
	})
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	if workout.DayDate != requested {
		t.Fatalf("dayDate = %s, want %s from the request", workout.DayDate, requested)
	}
	if _, err := a.WorkoutForDate("user-1", requested); err != nil {
		t.Fatalf("WorkoutForDate(requested): %v", err)
	}
	if _, err := a.WorkoutForDate("user-1", mustDate(t, "2025-02-03")); !errors.Is(err, ErrWorkoutNotFound) {
		t.Fatalf("err = %v, want ErrWorkoutNotFound on the echoed date", err)
	}
}

func TestGeneratePlanDuplicateDayCreatesTwoRows(t *testing.T) {
	gen := &fakeGenerator{daily: generatedWorkout("2025-01-20", "Burpees")}
	a, _ := newTestApp(t, gen)

	req := GenerateRequest{
		UserID:                "user-1",
		DayDate:               mustDate(t, "2025-01-20"),
		FocusSportType:        domain.SportHIIT,
		TargetDurationMinutes: 30,
	}
	first, err := a.GeneratePlan(context.Background(), "token", req)
	if err != nil {
		t.Fatalf("first GeneratePlan: %v", err)
	}
	second, err := a.GeneratePlan(context.Background(), "token", req)
	if err != nil {
		t.Fatalf("second GeneratePlan: %v", err)
	}
	if first.ID == second.ID {
		t.Fatal("expected two independent workouts for the same day")
	}
	workouts, err := a.WorkoutsInRange("user-1", req.DayDate, req.DayDate)
	if err != nil {
		t.Fatalf("WorkoutsInRange: %v", err)
	}
	if len(workouts) != 2 {
		t.Fatalf("workouts = %d, want 2", len(workouts))
	}
}

func TestGeneratePlanCoercesUnknownEnums(t *testing.T) {
	gen := &fakeGenerator{daily: &genai.GeneratedWorkout{
		DayDate:                 "2025-01-20",
		FocusSportTypeForTheDay: "CARDIO_BLAST",
		ScheduledExercises: []genai.GeneratedExercise{{
			SequenceOrder:        1,
			ExerciseName:         "TRX Rows",
			ApplicableSportTypes: []string{"PILATES"},
			EquipmentNeeded:      []string{"TRX_STRAPS"},
		}},
	}}
	a, _ := newTestApp(t, gen)

	workout, err := a.GeneratePlan(context.Background(), "token", GenerateRequest{
		UserID:                "user-1",
		DayDate:               mustDate(t, "2025-01-20"),
		FocusSportType:        domain.SportStrength,
		TargetDurationMinutes: 30,
	})
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	if workout.FocusSportTypeForTheDay != domain.SportStrength {
		t.Fatalf("focus = %s, want STRENGTH fallback", workout.FocusSportTypeForTheDay)
	}
	ex := workout.ScheduledExercises[0]
	if ex.ApplicableSportTypes[0] != domain.SportStrength {
		t.Fatalf("sport = %s, want STRENGTH fallback", ex.ApplicableSportTypes[0])
	}
	if ex.EquipmentNeeded[0] != domain.EquipmentNone {
		t.Fatalf("equipment = %s, want NO_EQUIPMENT fallback", ex.EquipmentNeeded[0])
	}
}

func TestGeneratePlanProfileFailureIsFatal(t *testing.T) {
	mem := store.NewMemoryStore()
	a, err := New(Config{
		Store:     mem,
		Users:     &fakeUsers{err: errors.New("connection refused")},
		Generator: &fakeGenerator{daily: generatedWorkout("2025-01-20", "Burpees")},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = a.GeneratePlan(context.Background(), "token", GenerateRequest{
		UserID:                "user-1",
		DayDate:               mustDate(t, "2025-01-20"),
		FocusSportType:        domain.SportHIIT,
		TargetDurationMinutes: 30,
	})
	if !errors.Is(err, ErrUserProfileUnavailable) {
		t.Fatalf("err = %v, want ErrUserProfileUnavailable", err)
	}
	workouts, _ := mem.WorkoutsInRange("user-1", mustDate(t, "2025-01-20"), mustDate(t, "2025-01-20"))
	if len(workouts) != 0 {
		t.Fatal("nothing should persist when the profile is unavailable")
	}
}

func TestGeneratePlanWorkerFailure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("boom")}
	a, _ := newTestApp(t, gen)
	_, err := a.GeneratePlan(context.Background(), "token", GenerateRequest{
		UserID:                "user-1",
		DayDate:               mustDate(t, "2025-01-20"),
		FocusSportType:        domain.SportHIIT,
		TargetDurationMinutes: 30,
	})
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("err = %v, want ErrGenerationFailed", err)
	}
}

func TestCompleteWorkoutForcesChildren(t *testing.T) {
	gen := &fakeGenerator{daily: generatedWorkout("2025-01-20", "Burpees", "Plank")}
	a, _ := newTestApp(t, gen)
	workout, err := a.GeneratePlan(context.Background(), "token", GenerateRequest{
		UserID:                "user-1",
		DayDate:               mustDate(t, "2025-01-20"),
		FocusSportType:        domain.SportHIIT,
		TargetDurationMinutes: 30,
	})
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}

	done, err := a.CompleteWorkout(workout.ID)
	if err != nil {
		t.Fatalf("CompleteWorkout: %v", err)
	}
	if done.CompletionStatus != domain.CompletionCompleted {
		t.Fatalf("status = %s, want COMPLETED", done.CompletionStatus)
	}
	for _, ex := range done.ScheduledExercises {
		if ex.CompletionStatus != domain.CompletionCompleted {
			t.Fatalf("exercise %s status = %s, want COMPLETED", ex.ExerciseName, ex.CompletionStatus)
		}
	}
}

func TestCompleteWorkoutNotFound(t *testing.T) {
	a, _ := newTestApp(t, &fakeGenerator{})
	if _, err := a.CompleteWorkout("missing"); !errors.Is(err, ErrWorkoutNotFound) {
		t.Fatalf("err = %v, want ErrWorkoutNotFound", err)
	}
}

func TestCompleteExercisePromotesParentOnLastSibling(t *testing.T) {
	gen := &fakeGenerator{daily: generatedWorkout("2025-01-20", "Burpees", "Plank")}
	a, _ := newTestApp(t, gen)
	workout, err := a.GeneratePlan(context.Background(), "token", GenerateRequest{
		UserID:                "user-1",
		DayDate:               mustDate(t, "2025-01-20"),
		FocusSportType:        domain.SportHIIT,
		TargetDurationMinutes: 30,
	})
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}

	after, err := a.CompleteExercise(workout.ScheduledExercises[0].ID)
	if err != nil {
		t.Fatalf("CompleteExercise: %v", err)
	}
	if after.CompletionStatus != domain.CompletionPending {
		t.Fatalf("parent promoted too early: %s", after.CompletionStatus)
	}
	if after.ScheduledExercises[0].CompletionStatus != domain.CompletionCompleted {
		t.Fatal("first exercise should be COMPLETED")
	}

	after, err = a.CompleteExercise(workout.ScheduledExercises[1].ID)
	if err != nil {
		t.Fatalf("CompleteExercise: %v", err)
	}
	if after.CompletionStatus != domain.CompletionCompleted {
		t.Fatalf("parent not promoted after last sibling: %s", after.CompletionStatus)
	}
}

func TestCompleteExerciseNotFound(t *testing.T) {
	a, _ := newTestApp(t, &fakeGenerator{})
	if _, err := a.CompleteExercise("missing"); !errors.Is(err, ErrExerciseNotFound) {
		t.Fatalf("err = %v, want ErrExerciseNotFound", err)
	}
}

func TestWorkoutsInRangeInvertedBoundsEmpty(t *testing.T) {
	gen := &fakeGenerator{daily: generatedWorkout("2025-01-20", "Burpees")}
	a, _ := newTestApp(t, gen)
	if _, err := a.GeneratePlan(context.Background(), "token", GenerateRequest{
		UserID:                "user-1",
		DayDate:               mustDate(t, "2025-01-20"),
		FocusSportType:        domain.SportHIIT,
		TargetDurationMinutes: 30,
	}); err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	workouts, err := a.WorkoutsInRange("user-1", mustDate(t, "2025-01-25"), mustDate(t, "2025-01-10"))
	if err != nil {
		t.Fatalf("WorkoutsInRange: %v", err)
	}
	if len(workouts) != 0 {
		t.Fatalf("workouts = %d, want 0 for inverted range", len(workouts))
	}
}

func TestGenerateWeeklyPlanPersistsEachDay(t *testing.T) {
	weekly := []genai.GeneratedWorkout{
		*generatedWorkout("2025-01-20", "Burpees"),
		*generatedWorkout("2025-01-21", "Plank"),
		*generatedWorkout("2025-01-22", "Jump Squats"),
	}
	gen := &fakeGenerator{weekly: weekly}
	a, _ := newTestApp(t, gen)

	workouts, err := a.GenerateWeeklyPlan(context.Background(), "token", WeeklyRequest{
		UserID:  "user-1",
		Backend: genai.BackendLocal,
	})
	if err != nil {
		t.Fatalf("GenerateWeeklyPlan: %v", err)
	}
	if len(workouts) != 3 {
		t.Fatalf("workouts = %d, want 3", len(workouts))
	}
	if gen.lastBackend != genai.BackendLocal {
		t.Fatalf("backend = %s, want local", gen.lastBackend)
	}
	if gen.lastWeekly.TextPrompt != weeklyInstruction {
		t.Fatalf("text prompt = %q, want default instruction", gen.lastWeekly.TextPrompt)
	}
	stored, err := a.WorkoutsInRange("user-1", mustDate(t, "2025-01-20"), mustDate(t, "2025-01-22"))
	if err != nil {
		t.Fatalf("WorkoutsInRange: %v", err)
	}
	if len(stored) != 3 {
		t.Fatalf("stored = %d, want 3", len(stored))
	}
	for i, w := range stored[1:] {
		if w.DayDate.Before(stored[i].DayDate) {
			t.Fatal("range result not ordered by date")
		}
	}
}
