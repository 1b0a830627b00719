package store

import (
	"time"

	"gorm.io/datatypes"
)

type UserModel struct {
	ID           string `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	DateOfBirth  *time.Time
	HeightCm     *int
	WeightKg     *float64
	Gender       string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Preferences *UserPreferencesModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// UserPreferencesModel is owned 1:1 by a user and cascades with it.
// Multi-valued enum fields are stored as JSON columns.
type UserPreferencesModel struct {
	UserID               string `gorm:"primaryKey"`
	ExperienceLevel      string
	FitnessGoals         datatypes.JSON
	PreferredSportTypes  datatypes.JSON
	AvailableEquipment   datatypes.JSON
	WorkoutDurationRange string
	IntensityPreference  string
	HealthNotes          string `gorm:"type:text"`
	DislikedExercises    datatypes.JSON
	UpdatedAt            time.Time
}
