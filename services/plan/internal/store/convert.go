package store

import (
	"encoding/json"

	"gorm.io/datatypes"

	"flexfit/pkg/domain"
)

// List-valued exercise fields are stored as JSON columns. The element types
// are all strings underneath, so marshalling cannot fail.
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

func toWorkoutModel(w domain.DailyWorkout) (DailyWorkoutModel, []ScheduledExerciseModel) {
	row := DailyWorkoutModel{
		ID:                      w.ID,
		UserID:                  w.UserID,
		DayDate:                 w.DayDate.Time,
		FocusSportTypeForTheDay: string(w.FocusSportTypeForTheDay),
		CompletionStatus:        string(w.CompletionStatus),
		RPEOverallFeedback:      w.RPEOverallFeedback,
		CompletionNotes:         w.CompletionNotes,
		MarkdownContent:         w.MarkdownContent,
	}
	exercises := make([]ScheduledExerciseModel, 0, len(w.ScheduledExercises))
	for _, ex := range w.ScheduledExercises {
		exercises = append(exercises, ScheduledExerciseModel{
			ID:                         ex.ID,
			DailyWorkoutID:             w.ID,
			SequenceOrder:              ex.SequenceOrder,
			ExerciseName:               ex.ExerciseName,
			Description:                ex.Description,
			ApplicableSportTypes:       marshalList(ex.ApplicableSportTypes),
			MuscleGroupsPrimary:        marshalList(ex.MuscleGroupsPrimary),
			MuscleGroupsSecondary:      marshalList(ex.MuscleGroupsSecondary),
			EquipmentNeeded:            marshalList(ex.EquipmentNeeded),
			Difficulty:                 ex.Difficulty,
			PrescribedSetsRepsDuration: ex.PrescribedSetsRepsDuration,
			VoiceScriptCueText:         ex.VoiceScriptCueText,
			VideoURL:                   ex.VideoURL,
			RPEFeedback:                ex.RPEFeedback,
			CompletionStatus:           string(ex.CompletionStatus),
		})
	}
	return row, exercises
}

func fromWorkoutModel(row DailyWorkoutModel) domain.DailyWorkout {
	w := domain.DailyWorkout{
		ID:                      row.ID,
		UserID:                  row.UserID,
		DayDate:                 domain.DateOf(row.DayDate),
		FocusSportTypeForTheDay: domain.SportType(row.FocusSportTypeForTheDay),
		CompletionStatus:        domain.CompletionStatus(row.CompletionStatus),
		RPEOverallFeedback:      row.RPEOverallFeedback,
		CompletionNotes:         row.CompletionNotes,
		MarkdownContent:         row.MarkdownContent,
		ScheduledExercises:      make([]domain.ScheduledExercise, 0, len(row.ScheduledExercises)),
	}
	for _, ex := range row.ScheduledExercises {
		w.ScheduledExercises = append(w.ScheduledExercises, domain.ScheduledExercise{
			ID:                         ex.ID,
			SequenceOrder:              ex.SequenceOrder,
			ExerciseName:               ex.ExerciseName,
			Description:                ex.Description,
			ApplicableSportTypes:       unmarshalList[domain.SportType](ex.ApplicableSportTypes),
			MuscleGroupsPrimary:        unmarshalList[string](ex.MuscleGroupsPrimary),
			MuscleGroupsSecondary:      unmarshalList[string](ex.MuscleGroupsSecondary),
			EquipmentNeeded:            unmarshalList[domain.EquipmentItem](ex.EquipmentNeeded),
			Difficulty:                 ex.Difficulty,
			PrescribedSetsRepsDuration: ex.PrescribedSetsRepsDuration,
			VoiceScriptCueText:         ex.VoiceScriptCueText,
			VideoURL:                   ex.VideoURL,
			RPEFeedback:                ex.RPEFeedback,
			CompletionStatus:           domain.CompletionStatus(ex.CompletionStatus),
		})
	}
	return w
}
