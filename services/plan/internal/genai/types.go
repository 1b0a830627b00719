package genai

// Wire types for the GenAI workout workers. The workers speak snake_case
// JSON; field names here are part of the contract and must not drift.

// UserProfile carries the profile facts a daily generation needs.
type UserProfile struct {
	Age      int     `json:"age"`
	Gender   string  `json:"gender"`
	HeightCm float64 `json:"height_cm"`
	WeightKg float64 `json:"weight_kg"`
}

// DailyFocus pins the requested day, sport and duration.
type DailyFocus struct {
	DayDate                    string `json:"day_date"`
	FocusSportTypeForTheDay    string `json:"focus_sport_type_for_the_day"`
	TargetTotalDurationMinutes int    `json:"target_total_duration_minutes"`
}

// HistoricalExercise summarizes one past exercise for the prompt.
type HistoricalExercise struct {
	ExerciseName string   `json:"exercise_name"`
	SportType    string   `json:"sport_type"`
	MuscleGroups []string `json:"muscle_groups"`
	Equipment    []string `json:"equipment"`
	Difficulty   string   `json:"difficulty"`
	SetsReps     string   `json:"sets_reps"`
}

// HistoricalDay is one day of recent training history.
type HistoricalDay struct {
	Date             string               `json:"date"`
	SportType        string               `json:"sport_type"`
	CompletionStatus string               `json:"completion_status"`
	Exercises        []HistoricalExercise `json:"exercises"`
}

// DailyPromptContext is the POST /generate request body. Preferences are
// passed through opaquely; the worker interprets whatever shape it receives.
type DailyPromptContext struct {
	UserProfile        UserProfile     `json:"user_profile"`
	UserPreferences    any             `json:"user_preferences"`
	DailyFocus         DailyFocus      `json:"daily_focus"`
	Last7DaysExercises []HistoricalDay `json:"last_7_days_exercises"`
	TextPrompt         string          `json:"text_prompt"`
}

// WeeklyUserProfile is the richer profile shape the weekly worker expects.
type WeeklyUserProfile struct {
	UserID      string  `json:"user_id"`
	DateOfBirth string  `json:"date_of_birth"`
	HeightCm    float64 `json:"height_cm"`
	WeightKg    float64 `json:"weight_kg"`
	Gender      string  `json:"gender"`
}

// WeeklyHistoryDay is the compressed per-day history for weekly generation.
type WeeklyHistoryDay struct {
	DayDate            string   `json:"day_date"`
	SportType          string   `json:"sport_type"`
	Exercises          []string `json:"exercises"`
	MuscleGroupsWorked []string `json:"muscle_groups_worked"`
}

// WeeklyPromptContext is the POST /generate-weekly request body.
type WeeklyPromptContext struct {
	UserProfile        WeeklyUserProfile  `json:"user_profile"`
	UserPreferences    any                `json:"user_preferences"`
	TextPrompt         string             `json:"text_prompt"`
	Last7DaysExercises []WeeklyHistoryDay `json:"last_7_days_exercises"`
}

// GeneratedExercise is one exercise as produced by a worker. Enum-like
// fields arrive as free strings and are coerced downstream.
type GeneratedExercise struct {
	SequenceOrder              int      `json:"sequence_order"`
	ExerciseName               string   `json:"exercise_name"`
	Description                string   `json:"description"`
	ApplicableSportTypes       []string `json:"applicable_sport_types"`
	MuscleGroupsPrimary        []string `json:"muscle_groups_primary"`
	MuscleGroupsSecondary      []string `json:"muscle_groups_secondary"`
	EquipmentNeeded            []string `json:"equipment_needed"`
	Difficulty                 string   `json:"difficulty"`
	PrescribedSetsRepsDuration string   `json:"prescribed_sets_reps_duration"`
	VoiceScriptCueText         string   `json:"voice_script_cue_text"`
	VideoURL                   string   `json:"video_url"`
}

// GeneratedWorkout is one day of generated plan.
type GeneratedWorkout struct {
	DayDate                 string              `json:"day_date"`
	FocusSportTypeForTheDay string              `json:"focus_sport_type_for_the_day"`
	MarkdownContent         string              `json:"markdown_content"`
	ScheduledExercises      []GeneratedExercise `json:"scheduled_exercises"`
}

type dailyResponse struct {
	DailyWorkout GeneratedWorkout `json:"daily_workout"`
}

type weeklyResponse struct {
	Workouts []GeneratedWorkout `json:"workouts"`
}

type errorResponse struct {
	Detail string `json:"detail"`
	Error  string `json:"error"`
}
