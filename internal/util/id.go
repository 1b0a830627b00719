package util

import "github.com/google/uuid"

// NewID returns a new identifier in canonical UUID string form.
func NewID() string {
	return uuid.NewString()
}
