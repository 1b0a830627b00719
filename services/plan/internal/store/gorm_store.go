package store

import (
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"flexfit/pkg/domain"
)

// GormStore persists workouts in Postgres.
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
	if err := db.AutoMigrate(&DailyWorkoutModel{}, &ScheduledExerciseModel{}); err != nil {
		return nil, fmt.Errorf("migrate workout schema: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) SaveWorkout(w domain.DailyWorkout) error {
	row, exercises := toWorkoutModel(w)
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("ScheduledExercises").
			Clauses(clause.OnConflict{UpdateAll: true}).
			Create(&row).Error; err != nil {
			return fmt.Errorf("save workout %s: %w", row.ID, err)
		}
		// Remove exercises dropped from the aggregate before upserting the
		// current list.
		keep := make([]string, 0, len(exercises))
		for _, ex := range exercises {
			keep = append(keep, ex.ID)
		}
		prune := tx.Where("daily_workout_id = ?", row.ID)
		if len(keep) > 0 {
			prune = prune.Where("id NOT IN ?", keep)
		}
		if err := prune.Delete(&ScheduledExerciseModel{}).Error; err != nil {
			return fmt.Errorf("prune exercises of workout %s: %w", row.ID, err)
		}
		if len(exercises) == 0 {
			return nil
		}
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).
			Create(&exercises).Error; err != nil {
			return fmt.Errorf("save exercises of workout %s: %w", row.ID, err)
		}
		return nil
	})
}

func (s *GormStore) GetWorkout(id string) (domain.DailyWorkout, bool, error) {
	var row DailyWorkoutModel
	err := s.preloaded().First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.DailyWorkout{}, false, nil
	}
	if err != nil {
		return domain.DailyWorkout{}, false, fmt.Errorf("get workout %s: %w", id, err)
	}
	return fromWorkoutModel(row), true, nil
}

func (s *GormStore) WorkoutByUserAndDate(userID string, date domain.Date) (domain.DailyWorkout, bool, error) {
	var row DailyWorkoutModel
	// Duplicates per day are allowed; the most recently created one wins.
	err := s.preloaded().
		Where("user_id = ? AND day_date = ?", userID, date.Time).
		Order("created_at DESC").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.DailyWorkout{}, false, nil
	}
	if err != nil {
		return domain.DailyWorkout{}, false, fmt.Errorf("workout for user %s on %s: %w", userID, date, err)
	}
	return fromWorkoutModel(row), true, nil
}

func (s *GormStore) WorkoutsInRange(userID string, start, end domain.Date) ([]domain.DailyWorkout, error) {
	var rows []DailyWorkoutModel
	err := s.preloaded().
		Where("user_id = ? AND day_date >= ? AND day_date <= ?", userID, start.Time, end.Time).
		Order("day_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("workouts for user %s in [%s, %s]: %w", userID, start, end, err)
	}
	out := make([]domain.DailyWorkout, 0, len(rows))
	for _, row := range rows {
		out = append(out, fromWorkoutModel(row))
	}
	return out, nil
}

func (s *GormStore) WorkoutByExercise(exerciseID string) (domain.DailyWorkout, bool, error) {
	var ex ScheduledExerciseModel
	err := s.db.First(&ex, "id = ?", exerciseID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.DailyWorkout{}, false, nil
	}
	if err != nil {
		return domain.DailyWorkout{}, false, fmt.Errorf("exercise %s: %w", exerciseID, err)
	}
	return s.GetWorkout(ex.DailyWorkoutID)
}

func (s *GormStore) preloaded() *gorm.DB {
	return s.db.Preload("ScheduledExercises", func(db *gorm.DB) *gorm.DB {
		return db.Order("sequence_order ASC")
	})
}
