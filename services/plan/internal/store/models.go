package store

import (
	"time"

	"gorm.io/datatypes"
)

// GORM models used for persistence. The user id is a soft reference into
// user-service: no foreign key can exist across the service boundary.
type DailyWorkoutModel struct {
	ID                      string    `gorm:"primaryKey"`
	UserID                  string    `gorm:"not null;index:idx_daily_workouts_user_date"`
	DayDate                 time.Time `gorm:"not null;index:idx_daily_workouts_user_date"`
	FocusSportTypeForTheDay string    `gorm:"not null"`
	CompletionStatus        string    `gorm:"not null"`
	RPEOverallFeedback      *int
	CompletionNotes         string `gorm:"type:text"`
	MarkdownContent         string `gorm:"type:text"`
	CreatedAt               time.Time
	UpdatedAt               time.Time

	ScheduledExercises []ScheduledExerciseModel `gorm:"foreignKey:DailyWorkoutID;constraint:OnDelete:CASCADE"`
}

type ScheduledExerciseModel struct {
	ID                         string `gorm:"primaryKey"`
	DailyWorkoutID             string `gorm:"not null;index"`
	SequenceOrder              int    `gorm:"not null"`
	ExerciseName               string `gorm:"not null"`
	Description                string `gorm:"type:text"`
	ApplicableSportTypes       datatypes.JSON
	MuscleGroupsPrimary        datatypes.JSON
	MuscleGroupsSecondary      datatypes.JSON
	EquipmentNeeded            datatypes.JSON
	Difficulty                 string
	PrescribedSetsRepsDuration string
	VoiceScriptCueText         string `gorm:"type:text"`
	VideoURL                   string
	RPEFeedback                *int
	CompletionStatus           string `gorm:"not null"`
}
