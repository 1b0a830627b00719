package store

import (
	"encoding/json"

	"gorm.io/datatypes"

	"flexfit/pkg/domain"
)

// Enum list fields are string-backed, so marshalling cannot fail.
func marshalList[T any](v []T) datatypes.JSON {
	if len(v) == 0 {
		return datatypes.JSON("[]")
	}
	b, _ := json.Marshal(v)
	return datatypes.JSON(b)
}

func unmarshalList[T any](raw datatypes.JSON) []T {
	if len(raw) == 0 {
		return nil
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

func toUserModel(u domain.User) UserModel {
	row := UserModel{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		HeightCm:     u.HeightCm,
		WeightKg:     u.WeightKg,
		Gender:       string(u.Gender),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
	if !u.DateOfBirth.IsZero() {
		dob := u.DateOfBirth.Time
		row.DateOfBirth = &dob
	}
	if u.Preferences != nil {
		prefs := toPreferencesModel(u.ID, *u.Preferences)
		row.Preferences = &prefs
	}
	return row
}

func toPreferencesModel(userID string, p domain.UserPreferences) UserPreferencesModel {
	return UserPreferencesModel{
		UserID:               userID,
		ExperienceLevel:      string(p.ExperienceLevel),
		FitnessGoals:         marshalList(p.FitnessGoals),
		PreferredSportTypes:  marshalList(p.PreferredSportTypes),
		AvailableEquipment:   marshalList(p.AvailableEquipment),
		WorkoutDurationRange: p.WorkoutDurationRange,
		IntensityPreference:  string(p.IntensityPreference),
		HealthNotes:          p.HealthNotes,
		DislikedExercises:    marshalList(p.DislikedExercises),
	}
}

func fromUserModel(row UserModel) domain.User {
	u := domain.User{
		ID:           row.ID,
		Username:     row.Username,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		HeightCm:     row.HeightCm,
		WeightKg:     row.WeightKg,
		Gender:       domain.Gender(row.Gender),
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
	if row.DateOfBirth != nil {
		u.DateOfBirth = domain.DateOf(*row.DateOfBirth)
	}
	if row.Preferences != nil {
		prefs := fromPreferencesModel(*row.Preferences)
		u.Preferences = &prefs
	}
	return u
}

func fromPreferencesModel(row UserPreferencesModel) domain.UserPreferences {
	return domain.UserPreferences{
		ExperienceLevel:      domain.ExperienceLevel(row.ExperienceLevel),
		FitnessGoals:         unmarshalList[domain.FitnessGoal](row.FitnessGoals),
		PreferredSportTypes:  unmarshalList[domain.SportType](row.PreferredSportTypes),
		AvailableEquipment:   unmarshalList[domain.EquipmentItem](row.AvailableEquipment),
		WorkoutDurationRange: row.WorkoutDurationRange,
		IntensityPreference:  domain.IntensityPreference(row.IntensityPreference),
		HealthNotes:          row.HealthNotes,
		DislikedExercises:    unmarshalList[string](row.DislikedExercises),
	}
}
