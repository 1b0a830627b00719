package app

import "errors"

var (
	// ErrUserProfileUnavailable indicates the user service could not supply
	// the profile a generation request depends on.
	ErrUserProfileUnavailable = errors.New("user profile unavailable")
	ErrGenerationFailed       = errors.New("workout generation failed")
	ErrWorkoutNotFound        = errors.New("workout not found")
	ErrExerciseNotFound       = errors.New("exercise not found")
)
