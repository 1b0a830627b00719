package domain

import "time"

// User is the user-service profile shape. The password hash never leaves the
// service over JSON.
type User struct {
	ID           string           `json:"id"`
	Username     string           `json:"username"`
	Email        string           `json:"email"`
	PasswordHash string           `json:"-"`
	DateOfBirth  Date             `json:"dateOfBirth"`
	HeightCm     *int             `json:"heightCm,omitempty"`
	WeightKg     *float64         `json:"weightKg,omitempty"`
	Gender       Gender           `json:"gender,omitempty"`
	Preferences  *UserPreferences `json:"preferences,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"-"`
}

// UserPreferences is owned 1:1 by a user and cascades with it.
type UserPreferences struct {
	ExperienceLevel      ExperienceLevel     `json:"experienceLevel,omitempty"`
	FitnessGoals         []FitnessGoal       `json:"fitnessGoals,omitempty"`
	PreferredSportTypes  []SportType         `json:"preferredSportTypes,omitempty"`
	AvailableEquipment   []EquipmentItem     `json:"availableEquipment,omitempty"`
	WorkoutDurationRange string              `json:"workoutDurationRange,omitempty"`
	IntensityPreference  IntensityPreference `json:"intensityPreference,omitempty"`
	HealthNotes          string              `json:"healthNotes,omitempty"`
	DislikedExercises    []string            `json:"dislikedExercises,omitempty"`
}

// DailyWorkout is a generated plan for one user on one date. UserID is a soft
// reference into user-service; existence is validated only at generation time.
type DailyWorkout struct {
	ID                      string              `json:"id"`
	UserID                  string              `json:"userId"`
	DayDate                 Date                `json:"dayDate"`
	FocusSportTypeForTheDay SportType           `json:"focusSportTypeForTheDay"`
	CompletionStatus        CompletionStatus    `json:"completionStatus"`
	RPEOverallFeedback      *int                `json:"rpeOverallFeedback,omitempty"`
	CompletionNotes         string              `json:"completionNotes,omitempty"`
	MarkdownContent         string              `json:"markdownContent,omitempty"`
	ScheduledExercises      []ScheduledExercise `json:"scheduledExercises"`
}

// ScheduledExercise belongs to exactly one DailyWorkout. SequenceOrder fixes
// display and execution order and is never renumbered after creation.
type ScheduledExercise struct {
	ID                         string           `json:"id"`
	SequenceOrder              int              `json:"sequenceOrder"`
	ExerciseName               string           `json:"exerciseName"`
	Description                string           `json:"description,omitempty"`
	ApplicableSportTypes       []SportType      `json:"applicableSportTypes"`
	MuscleGroupsPrimary        []string         `json:"muscleGroupsPrimary"`
	MuscleGroupsSecondary      []string         `json:"muscleGroupsSecondary"`
	EquipmentNeeded            []EquipmentItem  `json:"equipmentNeeded"`
	Difficulty                 string           `json:"difficulty,omitempty"`
	PrescribedSetsRepsDuration string           `json:"prescribedSetsRepsDuration,omitempty"`
	VoiceScriptCueText         string           `json:"voiceScriptCueText,omitempty"`
	VideoURL                   string           `json:"videoUrl,omitempty"`
	RPEFeedback                *int             `json:"rpeFeedback,omitempty"`
	CompletionStatus           CompletionStatus `json:"completionStatus"`
}
