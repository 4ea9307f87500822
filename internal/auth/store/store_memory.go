package store

import (
	"context"
	"strings"
	"sync"

	"github.com/KoustavBera/Odoo25/internal/auth/models"
	"github.com/KoustavBera/Odoo25/pkg/platform/sentinel"
)

// MemoryUserStore keeps users in process memory. It favors clarity over
// performance and backs unit tests and store-less deployments.
type MemoryUserStore struct {
	mu      sync.RWMutex
	users   map[string]models.User // keyed by user ID
	byEmail map[string]string      // lowercased email -> user ID
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		users:   make(map[string]models.User),
		byEmail: make(map[string]string),
	}
}

func (s *MemoryUserStore) Save(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(user.Email)
	if existingID, ok := s.byEmail[email]; ok && existingID != user.ID.String() {
		return sentinel.ErrConflict
	}

	s.users[user.ID.String()] = user
	s.byEmail[email] = user.ID.String()
	return nil
}

func (s *MemoryUserStore) FindByID(_ context.Context, id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return models.User{}, sentinel.ErrNotFound
}

func (s *MemoryUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if userID, ok := s.byEmail[strings.ToLower(email)]; ok {
		return s.users[userID], nil
	}
	return models.User{}, sentinel.ErrNotFound
}
