package store

import (
	"sort"
	"sync"
	"time"

	"flexfit/pkg/domain"
)

// MemoryStore is an in-memory Store for tests.
type MemoryStore struct {
	mu        sync.RWMutex
	workouts  map[string]domain.DailyWorkout
	createdAt map[string]time.Time
	seq       int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		workouts:  make(map[string]domain.DailyWorkout),
		createdAt: make(map[string]time.Time),
	}
}

func (s *MemoryStore) SaveWorkout(w domain.DailyWorkout) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.workouts[w.ID]; !ok {
		// Monotonic stand-in for created_at so same-day duplicates order
		// deterministically.
		s.seq++
		s.createdAt[w.ID] = time.Unix(int64(s.seq), 0)
	}
	s.workouts[w.ID] = cloneWorkout(w)
	return nil
}

func (s *MemoryStore) GetWorkout(id string) (domain.DailyWorkout, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.workouts[id]
	if !ok {
		return domain.DailyWorkout{}, false, nil
	}
	return cloneWorkout(w), true, nil
}

func (s *MemoryStore) WorkoutByUserAndDate(userID string, date domain.Date) (domain.DailyWorkout, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var (
		found  bool
		latest domain.DailyWorkout
		at     time.Time
	)
	for id, w := range s.workouts {
		if w.UserID != userID || !w.DayDate.Equal(date) {
			continue
		}
		if !found || s.createdAt[id].After(at) {
			found, latest, at = true, w, s.createdAt[id]
		}
	}
	if !found {
		return domain.DailyWorkout{}, false, nil
	}
	return cloneWorkout(latest), true, nil
}

func (s *MemoryStore) WorkoutsInRange(userID string, start, end domain.Date) ([]domain.DailyWorkout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.DailyWorkout, 0)
	for _, w := range s.workouts {
		if w.UserID != userID || w.DayDate.Before(start) || end.Before(w.DayDate) {
			continue
		}
		out = append(out, cloneWorkout(w))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DayDate.Before(out[j].DayDate)
	})
	return out, nil
}

func (s *MemoryStore) WorkoutByExercise(exerciseID string) (domain.DailyWorkout, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, w := range s.workouts {
		for _, ex := range w.ScheduledExercises {
			if ex.ID == exerciseID {
				return cloneWorkout(w), true, nil
			}
		}
	}
	return domain.DailyWorkout{}, false, nil
}

func cloneWorkout(w domain.DailyWorkout) domain.DailyWorkout {
	out := w
	if w.RPEOverallFeedback != nil {
		v := *w.RPEOverallFeedback
		out.RPEOverallFeedback = &v
	}
	out.ScheduledExercises = make([]domain.ScheduledExercise, len(w.ScheduledExercises))
	for i, ex := range w.ScheduledExercises {
		c := ex
		if ex.RPEFeedback != nil {
			v := *ex.RPEFeedback
			c.RPEFeedback = &v
		}
		c.ApplicableSportTypes = append([]domain.SportType(nil), ex.ApplicableSportTypes...)
		c.MuscleGroupsPrimary = append([]string(nil), ex.MuscleGroupsPrimary...)
		c.MuscleGroupsSecondary = append([]string(nil), ex.MuscleGroupsSecondary...)
		c.EquipmentNeeded = append([]domain.EquipmentItem(nil), ex.EquipmentNeeded...)
		out.ScheduledExercises[i] = c
	}
	return out
}
