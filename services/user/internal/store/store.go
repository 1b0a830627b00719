package store

import "flexfit/pkg/domain"

// Store defines persistence for user accounts and their preferences.
type Store interface {
	CreateUser(user domain.User) error
	GetUserByID(id string) (domain.User, bool, error)
	GetUserByEmail(email string) (domain.User, bool, error)
	UsernameExists(username string) (bool, error)
	EmailExists(email string) (bool, error)
	UpdatePreferences(userID string, prefs domain.UserPreferences) error
}
