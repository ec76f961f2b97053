package catalog

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/renthing/pkg/models"
)

var ErrNotFound = errors.New("not found")

// SearchFilters narrows a catalog search. Zero values mean "no filter".
type SearchFilters struct {
	Category string  `json:"category,omitempty"`
	Location string  `json:"location,omitempty"`
	MinPrice float64 `json:"min_price,omitempty"`
	MaxPrice float64 `json:"max_price,omitempty"`
}

const maxSearchResults = 20

type Store interface {
	Search(ctx context.Context, query string, filters SearchFilters) ([]models.Listing, error)
	GetByID(ctx context.Context, id string) (*models.Listing, error)
	Exists(ctx context.Context, id string) (bool, error)
}

// InMemoryStore is a threadsafe in-memory store for tests
type InMemoryStore struct {
	mu   sync.RWMutex
	byID map[string]models.Listing
	now  func() time.Time
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		byID: make(map[string]models.Listing),
		now:  time.Now,
	}
}

// Add inserts or replaces a listing. Test helper, not part of Store.
func (s *InMemoryStore) Add(l models.Listing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l.CreatedAt.IsZero() {
		l.CreatedAt = s.now()
	}
	l.UpdatedAt = s.now()
	s.byID[l.ID] = l
}

func (s *InMemoryStore) Search(ctx context.Context, query string, filters SearchFilters) ([]models.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	terms := strings.Fields(strings.ToLower(query))
	out := make([]models.Listing, 0)
	for _, l := range s.byID {
		if !l.IsAvailable {
			continue
		}
		if !matchesFilters(l, filters) {
			continue
		}
		if len(terms) > 0 && !matchesTerms(l, terms) {
			continue
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	if len(out) > maxSearchResults {
		out = out[:maxSearchResults]
	}
	return out, nil
}

func (s *InMemoryStore) GetByID(ctx context.Context, id string) (*models.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := l
	return &cp, nil
}

func (s *InMemoryStore) Exists(ctx context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byID[id]
	return ok, nil
}

func matchesFilters(l models.Listing, f SearchFilters) bool {
	if f.Category != "" && !strings.EqualFold(l.Category, f.Category) {
		return false
	}
	if f.Location != "" && !strings.Contains(strings.ToLower(l.Location), strings.ToLower(f.Location)) {
		return false
	}
	if f.MinPrice > 0 && l.PricePerDay < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && l.PricePerDay > f.MaxPrice {
		return false
	}
	return true
}

func matchesTerms(l models.Listing, terms []string) bool {
	text := strings.ToLower(l.Title + " " + l.Description + " " + l.Category)
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}
