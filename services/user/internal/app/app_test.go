package app

import (
	"context"
	"errors"
	"testing"

	"flexfit/pkg/domain"
	"flexfit/services/user/internal/store"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestApp(t *testing.T) *App {
	t.Helper()
	a, err := New(Config{
		Store:     store.NewMemoryStore(),
		JWTSecret: testSecret,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a
}

func register(t *testing.T, a *App, username, email string) domain.User {
	t.Helper()
	user, err := a.Register(context.Background(), RegisterRequest{
		Username: username,
		Email:    email,
		Password: "secret-password",
	})
	if err != nil {
		t.Fatalf("Register(%s): %v", username, err)
	}
	return user
}

func TestRegisterCreatesUserWithEmptyPreferences(t *testing.T) {
	a := newTestApp(t)
	user := register(t, a, "alex", "alex@example.com")
	if user.ID == "" {
		t.Fatal("expected generated id")
	}
	if user.PasswordHash == "" || user.PasswordHash == "secret-password" {
		t.Fatal("password must be stored hashed")
	}
	if user.Preferences == nil {
		t.Fatal("expected empty preferences row")
	}
}

func TestRegisterConflicts(t *testing.T) {
	a := newTestApp(t)
	register(t, a, "alex", "alex@example.com")

	_, err := a.Register(context.Background(), RegisterRequest{
		Username: "alex", Email: "other@example.com", Password: "secret-password",
	})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("err = %v, want ErrUsernameTaken", err)
	}
	_, err = a.Register(context.Background(), RegisterRequest{
		Username: "someone", Email: "alex@example.com", Password: "secret-password",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
}

func TestLogin(t *testing.T) {
	a := newTestApp(t)
	user := register(t, a, "alex", "alex@example.com")

	result, err := a.Login(context.Background(), "alex@example.com", "secret-password")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected a token")
	}
	if result.User.ID != user.ID {
		t.Fatalf("user id = %s, want %s", result.User.ID, user.ID)
	}

	if _, err := a.Login(context.Background(), "alex@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := a.Login(context.Background(), "nobody@example.com", "secret-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestUserByIDNotFound(t *testing.T) {
	a := newTestApp(t)
	if _, err := a.UserByID("missing"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}

func TestUpdatePreferences(t *testing.T) {
	a := newTestApp(t)
	user := register(t, a, "alex", "alex@example.com")

	updated, err := a.UpdatePreferences(user.ID, domain.UserPreferences{
		ExperienceLevel:     domain.ExperienceIntermediate,
		FitnessGoals:        []domain.FitnessGoal{domain.GoalMuscleGain},
		PreferredSportTypes: []domain.SportType{domain.SportStrength},
		AvailableEquipment:  []domain.EquipmentItem{domain.EquipmentKettlebell},
		IntensityPreference: domain.IntensityModerateHigh,
	})
	if err != nil {
		t.Fatalf("UpdatePreferences: %v", err)
	}
	if updated.Preferences == nil || updated.Preferences.ExperienceLevel != domain.ExperienceIntermediate {
		t.Fatalf("preferences not updated: %+v", updated.Preferences)
	}
	if len(updated.Preferences.FitnessGoals) != 1 || updated.Preferences.FitnessGoals[0] != domain.GoalMuscleGain {
		t.Fatalf("goals = %v", updated.Preferences.FitnessGoals)
	}

	if _, err := a.UpdatePreferences("missing", domain.UserPreferences{}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}
