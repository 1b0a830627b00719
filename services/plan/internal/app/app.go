package app

import (
	"context"
	"fmt"

	"flexfit/internal/util"
	"flexfit/pkg/domain"
	"flexfit/services/plan/internal/genai"
	"flexfit/services/plan/internal/store"
	"flexfit/services/plan/internal/userclient"
)

// ProfileFetcher resolves user profiles from the user service.
type ProfileFetcher interface {
	Profile(ctx context.Context, userID, token string) (domain.User, error)
}

// Generator produces workouts from assembled prompt context. The caller's
// bearer token travels with every worker call.
type Generator interface {
	GenerateDaily(ctx context.Context, backend genai.Backend, token string, payload genai.DailyPromptContext) (*genai.GeneratedWorkout, error)
	GenerateWeekly(ctx context.Context, backend genai.Backend, token string, payload genai.WeeklyPromptContext) ([]genai.GeneratedWorkout, error)
}

// Config holds runtime configuration for the core application.
type Config struct {
	DatabaseURL    string
	Store          store.Store
	UserServiceURL string
	Users          ProfileFetcher
	CloudWorkerURL string
	LocalWorkerURL string
	Generator      Generator
}

// App wires storage, the user service and the GenAI workers together.
type App struct {
	store     store.Store
	users     ProfileFetcher
	generator Generator
}

// New constructs the application with database-backed workout storage.
func New(cfg Config) (*App, error) {
	dataStore := cfg.Store
	if dataStore == nil {
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("database URL required")
		}
		var err error
		dataStore, err = store.NewGormStore(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("init postgres store: %w", err)
		}
	}
	users := cfg.Users
	if users == nil {
		if cfg.UserServiceURL == "" {
			return nil, fmt.Errorf("user service URL required")
		}
		users = userclient.NewClient(cfg.UserServiceURL)
	}
	generator := cfg.Generator
	if generator == nil {
		if cfg.CloudWorkerURL == "" && cfg.LocalWorkerURL == "" {
			return nil, fmt.Errorf("at least one GenAI worker URL required")
		}
		generator = genai.NewClient(cfg.CloudWorkerURL, cfg.LocalWorkerURL)
	}
	return &App{store: dataStore, users: users, generator: generator}, nil
}

// GenerateRequest is a validated single-day generation request.
type GenerateRequest struct {
	UserID                string
	DayDate               domain.Date
	FocusSportType        domain.SportType
	TargetDurationMinutes int
	TextPrompt            string
	Backend               genai.Backend
}

// WeeklyRequest is a validated seven-day generation request.
type WeeklyRequest struct {
	UserID     string
	TextPrompt string
	Backend    genai.Backend
}

// GeneratePlan runs the full single-day flow: profile lookup, history
// lookback, worker call, persistence. Upstream failures collapse into
// sentinel errors so no upstream detail leaks to clients.
func (a *App) GeneratePlan(ctx context.Context, token string, req GenerateRequest) (domain.DailyWorkout, error) {
	logger := util.LoggerFromContext(ctx)
	user, err := a.users.Profile(ctx, req.UserID, token)
	if err != nil {
		logger.Error("user profile fetch failed", "userId", req.UserID, "error", err)
		return domain.DailyWorkout{}, ErrUserProfileUnavailable
	}
	history, err := a.store.WorkoutsInRange(req.UserID, req.DayDate.AddDays(-7), req.DayDate.AddDays(-1))
	if err != nil {
		return domain.DailyWorkout{}, fmt.Errorf("load workout history: %w", err)
	}
	payload := buildDailyContext(user, req, history, domain.Today())
	generated, err := a.generator.GenerateDaily(ctx, req.Backend, token, payload)
	if err != nil {
		logger.Error("daily generation failed", "backend", string(req.Backend), "error", err)
		return domain.DailyWorkout{}, ErrGenerationFailed
	}
	workout := workoutFromGenerated(req.UserID, req.DayDate, *generated)
	if err := a.store.SaveWorkout(workout); err != nil {
		return domain.DailyWorkout{}, fmt.Errorf("persist workout: %w", err)
	}
	logger.Info("daily workout generated",
		"userId", req.UserID,
		"dayDate", workout.DayDate.String(),
		"backend", string(req.Backend),
		"exercises", len(workout.ScheduledExercises))
	return workout, nil
}

// GenerateWeeklyPlan generates and persists a seven-day plan. Each day is
// saved independently: a failure mid-week leaves earlier days committed.
func (a *App) GenerateWeeklyPlan(ctx context.Context, token string, req WeeklyRequest) ([]domain.DailyWorkout, error) {
	logger := util.LoggerFromContext(ctx)
	user, err := a.users.Profile(ctx, req.UserID, token)
	if err != nil {
		logger.Error("user profile fetch failed", "userId", req.UserID, "error", err)
		return nil, ErrUserProfileUnavailable
	}
	today := domain.Today()
	history, err := a.store.WorkoutsInRange(req.UserID, today.AddDays(-7), today)
	if err != nil {
		return nil, fmt.Errorf("load workout history: %w", err)
	}
	payload := buildWeeklyContext(user, req, history)
	generated, err := a.generator.GenerateWeekly(ctx, req.Backend, token, payload)
	if err != nil {
		logger.Error("weekly generation failed", "backend", string(req.Backend), "error", err)
		return nil, ErrGenerationFailed
	}
	workouts := make([]domain.DailyWorkout, 0, len(generated))
	for _, g := range generated {
		dayDate, parseErr := domain.ParseDate(g.DayDate)
		if parseErr != nil {
			dayDate = today
		}
		workout := workoutFromGenerated(req.UserID, dayDate, g)
		if err := a.store.SaveWorkout(workout); err != nil {
			return nil, fmt.Errorf("persist workout for %s: %w", workout.DayDate, err)
		}
		workouts = append(workouts, workout)
	}
	logger.Info("weekly plan generated",
		"userId", req.UserID,
		"backend", string(req.Backend),
		"days", len(workouts))
	return workouts, nil
}

// WorkoutForDate returns the user's workout on a date.
func (a *App) WorkoutForDate(userID string, date domain.Date) (domain.DailyWorkout, error) {
	workout, ok, err := a.store.WorkoutByUserAndDate(userID, date)
	if err != nil {
		return domain.DailyWorkout{}, err
	}
	if !ok {
		return domain.DailyWorkout{}, ErrWorkoutNotFound
	}
	return workout, nil
}

// WorkoutsInRange returns the user's workouts in [start, end], ordered by
// date ascending. An inverted range yields an empty list.
func (a *App) WorkoutsInRange(userID string, start, end domain.Date) ([]domain.DailyWorkout, error) {
	return a.store.WorkoutsInRange(userID, start, end)
}

// CompleteWorkout marks a workout COMPLETED and force-completes every child
// exercise regardless of its prior status.
func (a *App) CompleteWorkout(workoutID string) (domain.DailyWorkout, error) {
	workout, ok, err := a.store.GetWorkout(workoutID)
	if err != nil {
		return domain.DailyWorkout{}, err
	}
	if !ok {
		return domain.DailyWorkout{}, ErrWorkoutNotFound
	}
	workout.CompletionStatus = domain.CompletionCompleted
	for i := range workout.ScheduledExercises {
		workout.ScheduledExercises[i].CompletionStatus = domain.CompletionCompleted
	}
	if err := a.store.SaveWorkout(workout); err != nil {
		return domain.DailyWorkout{}, fmt.Errorf("persist workout %s: %w", workoutID, err)
	}
	return workout, nil
}

// CompleteExercise marks one exercise COMPLETED. When that leaves no
// incomplete siblings the parent workout is promoted to COMPLETED as well.
func (a *App) CompleteExercise(exerciseID string) (domain.DailyWorkout, error) {
	workout, ok, err := a.store.WorkoutByExercise(exerciseID)
	if err != nil {
		return domain.DailyWorkout{}, err
	}
	if !ok {
		return domain.DailyWorkout{}, ErrExerciseNotFound
	}
	allDone := true
	for i := range workout.ScheduledExercises {
		ex := &workout.ScheduledExercises[i]
		if ex.ID == exerciseID {
			ex.CompletionStatus = domain.CompletionCompleted
		}
		if ex.CompletionStatus != domain.CompletionCompleted {
			allDone = false
		}
	}
	if allDone && workout.CompletionStatus != domain.CompletionCompleted {
		workout.CompletionStatus = domain.CompletionCompleted
	}
	if err := a.store.SaveWorkout(workout); err != nil {
		return domain.DailyWorkout{}, fmt.Errorf("persist workout %s: %w", workout.ID, err)
	}
	return workout, nil
}

// workoutFromGenerated maps a worker response onto owned entities. The date
// is the caller-supplied one: the daily flow passes the request date verbatim,
// the weekly flow the per-day date it parsed from the response. The focus
// sport type comes from the response, not the request, and enum-like strings
// are coerced leniently. Everything starts PENDING.
func workoutFromGenerated(userID string, dayDate domain.Date, g genai.GeneratedWorkout) domain.DailyWorkout {
	workout := domain.DailyWorkout{
		ID:                      util.NewID(),
		UserID:                  userID,
		DayDate:                 dayDate,
		FocusSportTypeForTheDay: domain.SportTypeOrDefault(g.FocusSportTypeForTheDay),
		CompletionStatus:        domain.CompletionPending,
		MarkdownContent:         g.MarkdownContent,
		ScheduledExercises:      make([]domain.ScheduledExercise, 0, len(g.ScheduledExercises)),
	}
	for _, ex := range g.ScheduledExercises {
		workout.ScheduledExercises = append(workout.ScheduledExercises, domain.ScheduledExercise{
			ID:                         util.NewID(),
			SequenceOrder:              ex.SequenceOrder,
			ExerciseName:               ex.ExerciseName,
			Description:                ex.Description,
			ApplicableSportTypes:       domain.SportTypesOrDefault(ex.ApplicableSportTypes),
			MuscleGroupsPrimary:        ex.MuscleGroupsPrimary,
			MuscleGroupsSecondary:      ex.MuscleGroupsSecondary,
			EquipmentNeeded:            domain.EquipmentItemsOrDefault(ex.EquipmentNeeded),
			Difficulty:                 ex.Difficulty,
			PrescribedSetsRepsDuration: ex.PrescribedSetsRepsDuration,
			VoiceScriptCueText:         ex.VoiceScriptCueText,
			VideoURL:                   ex.VideoURL,
			RPEFeedback:                nil,
			CompletionStatus:           domain.CompletionPending,
		})
	}
	return workout
}
