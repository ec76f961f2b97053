package preferences

import (
	"context"
	"sync"

	"github.com/renthing/internal/assistant"
)

// Store supplies stated and inferred preferences for a user. Stated
// preferences come from profile settings; inferred preferences are
// derived from past booking activity.
type Store interface {
	GetUserContext(ctx context.Context, userID string) (assistant.StatedPreferences, assistant.InferredPreferences, error)
}

// InMemoryStore is a threadsafe in-memory store for tests
type InMemoryStore struct {
	mu       sync.RWMutex
	stated   map[string]assistant.StatedPreferences
	inferred map[string]assistant.InferredPreferences
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		stated:   make(map[string]assistant.StatedPreferences),
		inferred: make(map[string]assistant.InferredPreferences),
	}
}

// Set stores preferences for a user. Test helper.
func (s *InMemoryStore) Set(userID string, stated assistant.StatedPreferences, inferred assistant.InferredPreferences) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stated[userID] = stated
	s.inferred[userID] = inferred
}

func (s *InMemoryStore) GetUserContext(ctx context.Context, userID string) (assistant.StatedPreferences, assistant.InferredPreferences, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stated[userID], s.inferred[userID], nil
}
