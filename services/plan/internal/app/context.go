package app

import (
	"flexfit/pkg/domain"
	"flexfit/services/plan/internal/genai"
)

// Profile fallbacks used when the user never filled in the field. The
// workers require numeric values, so absence becomes a plausible default.
const (
	defaultHeightCm = 180
	defaultWeightKg = 75
	unknownGender   = "UNKNOWN"

	weeklyInstruction = "Generate a balanced 7-day workout plan with proper progression and recovery"
)

// buildDailyContext assembles the /generate payload. Pure data assembly:
// the field names are the worker contract and must stay stable.
func buildDailyContext(user domain.User, req GenerateRequest, history []domain.DailyWorkout, today domain.Date) genai.DailyPromptContext {
	return genai.DailyPromptContext{
		UserProfile: profileFacts(user, today),
		// Preferences pass through unchanged; the worker treats them as an
		// opaque object.
		UserPreferences: preferencesValue(user),
		DailyFocus: genai.DailyFocus{
			DayDate:                    req.DayDate.String(),
			FocusSportTypeForTheDay:    string(req.FocusSportType),
			TargetTotalDurationMinutes: req.TargetDurationMinutes,
		},
		Last7DaysExercises: dailyHistory(history),
		TextPrompt:         req.TextPrompt,
	}
}

// buildWeeklyContext assembles the /generate-weekly payload.
func buildWeeklyContext(user domain.User, req WeeklyRequest, history []domain.DailyWorkout) genai.WeeklyPromptContext {
	prompt := req.TextPrompt
	if prompt == "" {
		prompt = weeklyInstruction
	}
	profile := genai.WeeklyUserProfile{
		UserID:   user.ID,
		HeightCm: defaultHeightCm,
		WeightKg: defaultWeightKg,
		Gender:   unknownGender,
	}
	if !user.DateOfBirth.IsZero() {
		profile.DateOfBirth = user.DateOfBirth.String()
	}
	if user.HeightCm != nil {
		profile.HeightCm = float64(*user.HeightCm)
	}
	if user.WeightKg != nil {
		profile.WeightKg = *user.WeightKg
	}
	if user.Gender != "" {
		profile.Gender = string(user.Gender)
	}
	return genai.WeeklyPromptContext{
		UserProfile:        profile,
		UserPreferences:    preferencesValue(user),
		TextPrompt:         prompt,
		Last7DaysExercises: weeklyHistory(history),
	}
}

func profileFacts(user domain.User, today domain.Date) genai.UserProfile {
	facts := genai.UserProfile{
		Gender:   unknownGender,
		HeightCm: defaultHeightCm,
		WeightKg: defaultWeightKg,
	}
	if !user.DateOfBirth.IsZero() {
		facts.Age = user.DateOfBirth.YearsSince(today)
	}
	if user.Gender != "" {
		facts.Gender = string(user.Gender)
	}
	if user.HeightCm != nil {
		facts.HeightCm = float64(*user.HeightCm)
	}
	if user.WeightKg != nil {
		facts.WeightKg = *user.WeightKg
	}
	return facts
}

func preferencesValue(user domain.User) any {
	if user.Preferences == nil {
		return nil
	}
	return user.Preferences
}

func dailyHistory(history []domain.DailyWorkout) []genai.HistoricalDay {
	days := make([]genai.HistoricalDay, 0, len(history))
	for _, w := range history {
		day := genai.HistoricalDay{
			Date:             w.DayDate.String(),
			SportType:        string(w.FocusSportTypeForTheDay),
			CompletionStatus: string(w.CompletionStatus),
			Exercises:        make([]genai.HistoricalExercise, 0, len(w.ScheduledExercises)),
		}
		for _, ex := range w.ScheduledExercises {
			day.Exercises = append(day.Exercises, genai.HistoricalExercise{
				ExerciseName: ex.ExerciseName,
				SportType:    string(w.FocusSportTypeForTheDay),
				MuscleGroups: append(append([]string{}, ex.MuscleGroupsPrimary...), ex.MuscleGroupsSecondary...),
				Equipment:    equipmentNames(ex.EquipmentNeeded),
				Difficulty:   ex.Difficulty,
				SetsReps:     ex.PrescribedSetsRepsDuration,
			})
		}
		days = append(days, day)
	}
	return days
}

func weeklyHistory(history []domain.DailyWorkout) []genai.WeeklyHistoryDay {
	days := make([]genai.WeeklyHistoryDay, 0, len(history))
	for _, w := range history {
		day := genai.WeeklyHistoryDay{
			DayDate:   w.DayDate.String(),
			SportType: string(w.FocusSportTypeForTheDay),
		}
		seen := make(map[string]struct{})
		for _, ex := range w.ScheduledExercises {
			day.Exercises = append(day.Exercises, ex.ExerciseName)
			for _, g := range ex.MuscleGroupsPrimary {
				if _, ok := seen[g]; ok {
					continue
				}
				seen[g] = struct{}{}
				day.MuscleGroupsWorked = append(day.MuscleGroupsWorked, g)
			}
		}
		days = append(days, day)
	}
	return days
}

func equipmentNames(items []domain.EquipmentItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, string(it))
	}
	return out
}
