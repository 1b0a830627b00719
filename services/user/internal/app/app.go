package app

import (
	"context"
	"fmt"
	"time"

	"flexfit/internal/usertoken"
	"flexfit/internal/util"
	"flexfit/pkg/auth"
	"flexfit/pkg/domain"
	"flexfit/services/user/internal/store"
)

// Config holds runtime configuration for the core application.
type Config struct {
	DatabaseURL string
	Store       store.Store
	JWTSecret   string
	TokenTTL    time.Duration
}

// App implements registration, login and profile management.
type App struct {
	store  store.Store
	signer *usertoken.Signer
}

// New constructs the application with database-backed user storage.
func New(cfg Config) (*App, error) {
	dataStore := cfg.Store
	if dataStore == nil {
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("database URL required")
		}
		var err error
		dataStore, err = store.NewGormStore(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("init postgres store: %w", err)
		}
	}
	signer, err := usertoken.NewSigner(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("init token signer: %w", err)
	}
	return &App{store: dataStore, signer: signer}, nil
}

// RegisterRequest is a validated registration request.
type RegisterRequest struct {
	Username    string
	Email       string
	Password    string
	DateOfBirth domain.Date
	HeightCm    *int
	WeightKg    *float64
	Gender      domain.Gender
}

// Register creates an account. Username and email conflicts surface as
// distinct errors so the client can report the exact field.
func (a *App) Register(ctx context.Context, req RegisterRequest) (domain.User, error) {
	logger := util.LoggerFromContext(ctx)
	taken, err := a.store.UsernameExists(req.Username)
	if err != nil {
		return domain.User{}, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return domain.User{}, ErrUsernameTaken
	}
	taken, err = a.store.EmailExists(req.Email)
	if err != nil {
		return domain.User{}, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return domain.User{}, ErrEmailTaken
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}
	now := time.Now().UTC()
	user := domain.User{
		ID:           util.NewID(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		DateOfBirth:  req.DateOfBirth,
		HeightCm:     req.HeightCm,
		WeightKg:     req.WeightKg,
		Gender:       req.Gender,
		// Every account starts with an empty preferences row.
		Preferences: &domain.UserPreferences{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := a.store.CreateUser(user); err != nil {
		return domain.User{}, fmt.Errorf("persist user: %w", err)
	}
	logger.Info("user registered", "userId", user.ID, "username", user.Username)
	return user, nil
}

// LoginResult carries the issued token along with the profile.
type LoginResult struct {
	Token string
	User  domain.User
}

// Login checks credentials and issues an access token. Unknown email and
// wrong password are indistinguishable to the caller.
func (a *App) Login(ctx context.Context, email, password string) (LoginResult, error) {
	logger := util.LoggerFromContext(ctx)
	user, ok, err := a.store.GetUserByEmail(email)
	if err != nil {
		return LoginResult{}, fmt.Errorf("lookup user: %w", err)
	}
	if !ok || !auth.CheckPassword(password, user.PasswordHash) {
		return LoginResult{}, ErrInvalidCredentials
	}
	token, err := a.signer.Sign(user.ID, user.Username, user.Email)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue token: %w", err)
	}
	logger.Info("user logged in", "userId", user.ID)
	return LoginResult{Token: token, User: user}, nil
}

// UserByID returns a profile with preferences.
func (a *App) UserByID(id string) (domain.User, error) {
	user, ok, err := a.store.GetUserByID(id)
	if err != nil {
		return domain.User{}, err
	}
	if !ok {
		return domain.User{}, ErrUserNotFound
	}
	return user, nil
}

// UpdatePreferences replaces the user's preferences wholesale and returns
// the refreshed profile.
func (a *App) UpdatePreferences(userID string, prefs domain.UserPreferences) (domain.User, error) {
	if _, ok, err := a.store.GetUserByID(userID); err != nil {
		return domain.User{}, err
	} else if !ok {
		return domain.User{}, ErrUserNotFound
	}
	if err := a.store.UpdatePreferences(userID, prefs); err != nil {
		return domain.User{}, fmt.Errorf("update preferences: %w", err)
	}
	return a.UserByID(userID)
}
