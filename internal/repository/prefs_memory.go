package repository

import (
	"context"
	"sort"
	"sync"

	"PredictPulse/internal/domain/models"
)

// MemoryPreferenceStore is the in-process fallback used when Redis is
// not configured. Same mutual-exclusivity rules as the Redis store.
type MemoryPreferenceStore struct {
	mu    sync.RWMutex
	users map[string]*userPrefs
}

type userPrefs struct {
	liked     map[string]struct{}
	dismissed map[string]struct{}
	clicked   map[string]struct{}
}

func NewMemoryPreferenceStore() *MemoryPreferenceStore {
	return &MemoryPreferenceStore{users: make(map[string]*userPrefs)}
}

func (s *MemoryPreferenceStore) user(userID string) *userPrefs {
	u, ok := s.users[userID]
	if !ok {
		u = &userPrefs{
			liked:     make(map[string]struct{}),
			dismissed: make(map[string]struct{}),
			clicked:   make(map[string]struct{}),
		}
		s.users[userID] = u
	}
	return u
}

func (s *MemoryPreferenceStore) Like(ctx context.Context, userID, ticker string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.user(userID)
	u.liked[ticker] = struct{}{}
	delete(u.dismissed, ticker)
	return nil
}

func (s *MemoryPreferenceStore) Dismiss(ctx context.Context, userID, ticker string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.user(userID)
	u.dismissed[ticker] = struct{}{}
	delete(u.liked, ticker)
	return nil
}

func (s *MemoryPreferenceStore) Click(ctx context.Context, userID, ticker string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user(userID).clicked[ticker] = struct{}{}
	return nil
}

func (s *MemoryPreferenceStore) Get(ctx context.Context, userID string) (models.Preferences, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return models.Preferences{}, nil
	}
	return models.Preferences{
		Liked:     sortedKeys(u.liked),
		Dismissed: sortedKeys(u.dismissed),
		Clicked:   sortedKeys(u.clicked),
	}, nil
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
