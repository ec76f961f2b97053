package interactionlog

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Store interface {
	Append(ctx context.Context, e *Entry) error
	Aggregates(ctx context.Context, since time.Time) (*Aggregates, error)
}

// InMemoryStore is a threadsafe in-memory store for tests
type InMemoryStore struct {
	mu      sync.RWMutex
	entries []*Entry
	now     func() time.Time
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{now: time.Now}
}

func (s *InMemoryStore) Append(ctx context.Context, e *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}
	cp := *e
	s.entries = append(s.entries, &cp)
	return nil
}

func (s *InMemoryStore) Aggregates(ctx context.Context, since time.Time) (*Aggregates, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	agg := &Aggregates{ActionCounts: make(map[string]int64)}
	var ratingSum int64
	for _, e := range s.entries {
		if e.CreatedAt.Before(since) {
			continue
		}
		agg.TotalTurns++
		if e.ActionType != "" {
			agg.ActionCounts[e.ActionType]++
		}
		if e.Rating != nil {
			agg.RatedTurns++
			ratingSum += int64(*e.Rating)
		}
	}
	if agg.RatedTurns > 0 {
		agg.AverageRating = float64(ratingSum) / float64(agg.RatedTurns)
	}
	return agg, nil
}

// Entries returns a copy of all stored entries. Test helper.
func (s *InMemoryStore) Entries() []*Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Entry, 0, len(s.entries))
	for _, e := range s.entries {
		cp := *e
		out = append(out, &cp)
	}
	return out
}
