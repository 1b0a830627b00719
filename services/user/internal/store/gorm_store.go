package store

import (
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"flexfit/pkg/domain"
)

// GormStore persists users in Postgres.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.AutoMigrate(&UserModel{}, &UserPreferencesModel{}); err != nil {
		return nil, fmt.Errorf("migrate user schema: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) CreateUser(user domain.User) error {
	row := toUserModel(user)
	if err := s.db.Create(&row).Error; err != nil {
		return fmt.Errorf("create user %s: %w", user.Username, err)
	}
	return nil
}

func (s *GormStore) GetUserByID(id string) (domain.User, bool, error) {
	var row UserModel
	err := s.db.Preload("Preferences").First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, fmt.Errorf("get user %s: %w", id, err)
	}
	return fromUserModel(row), true, nil
}

func (s *GormStore) GetUserByEmail(email string) (domain.User, bool, error) {
	var row UserModel
	err := s.db.Preload("Preferences").First(&row, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.User{}, false, nil
	}
	if err != nil {
		return domain.User{}, false, fmt.Errorf("get user by email: %w", err)
	}
	return fromUserModel(row), true, nil
}

func (s *GormStore) UsernameExists(username string) (bool, error) {
	var count int64
	if err := s.db.Model(&UserModel{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count username: %w", err)
	}
	return count > 0, nil
}

func (s *GormStore) EmailExists(email string) (bool, error) {
	var count int64
	if err := s.db.Model(&UserModel{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count email: %w", err)
	}
	return count > 0, nil
}

func (s *GormStore) UpdatePreferences(userID string, prefs domain.UserPreferences) error {
	row := toPreferencesModel(userID, prefs)
	if err := s.db.Save(&row).Error; err != nil {
		return fmt.Errorf("update preferences for %s: %w", userID, err)
	}
	return nil
}
