package store

import (
	"sync"

	"flexfit/pkg/domain"
)

// MemoryStore is an in-memory Store for tests.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]domain.User)}
}

func (s *MemoryStore) CreateUser(user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = cloneUser(user)
	return nil
}

func (s *MemoryStore) GetUserByID(id string) (domain.User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return domain.User{}, false, nil
	}
	return cloneUser(u), true, nil
}

func (s *MemoryStore) GetUserByEmail(email string) (domain.User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return cloneUser(u), true, nil
		}
	}
	return domain.User{}, false, nil
}

func (s *MemoryStore) UsernameExists(username string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) EmailExists(email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) UpdatePreferences(userID string, prefs domain.UserPreferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return nil
	}
	p := clonePreferences(prefs)
	u.Preferences = &p
	s.users[userID] = u
	return nil
}

func cloneUser(u domain.User) domain.User {
	out := u
	if u.HeightCm != nil {
		v := *u.HeightCm
		out.HeightCm = &v
	}
	if u.WeightKg != nil {
		v := *u.WeightKg
		out.WeightKg = &v
	}
	if u.Preferences != nil {
		p := clonePreferences(*u.Preferences)
		out.Preferences = &p
	}
	return out
}

func clonePreferences(p domain.UserPreferences) domain.UserPreferences {
	out := p
	out.FitnessGoals = append([]domain.FitnessGoal(nil), p.FitnessGoals...)
	out.PreferredSportTypes = append([]domain.SportType(nil), p.PreferredSportTypes...)
	out.AvailableEquipment = append([]domain.EquipmentItem(nil), p.AvailableEquipment...)
	out.DislikedExercises = append([]string(nil), p.DislikedExercises...)
	return out
}
