package store

import "flexfit/pkg/domain"

// Store defines persistence for daily workouts and their exercises.
//
// SaveWorkout persists the whole aggregate: the workout row plus its exercise
// list, replacing any exercises that are no longer present (orphan removal).
// There is intentionally no uniqueness constraint on (userID, dayDate);
// callers that want one-workout-per-day semantics must check first.
type Store interface {
	SaveWorkout(workout domain.DailyWorkout) error
	GetWorkout(id string) (domain.DailyWorkout, bool, error)
	WorkoutByUserAndDate(userID string, date domain.Date) (domain.DailyWorkout, bool, error)
	WorkoutsInRange(userID string, start, end domain.Date) ([]domain.DailyWorkout, error)
	WorkoutByExercise(exerciseID string) (domain.DailyWorkout, bool, error)
}
