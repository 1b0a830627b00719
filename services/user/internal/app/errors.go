package app

import "errors"

// Conflict and auth error messages are part of the client contract; the
// HTTP layer serializes them verbatim.
var (
	ErrUsernameTaken      = errors.New("Username already exists")
	ErrEmailTaken         = errors.New("Email already registered")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)
