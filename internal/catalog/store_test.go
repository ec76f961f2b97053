package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/renthing/pkg/models"
)

func seededStore() *InMemoryStore {
	s := NewInMemoryStore()
	s.Add(models.Listing{ID: "cam-1", Title: "Canon EOS R6", Category: "camera", Location: "Makati", PricePerDay: 1500, Rating: 4.8, IsAvailable: true})
	s.Add(models.Listing{ID: "cam-2", Title: "GoPro Hero 12", Category: "camera", Location: "Quezon City", PricePerDay: 800, Rating: 4.5, IsAvailable: true})
	s.Add(models.Listing{ID: "car-1", Title: "Toyota Vios", Category: "vehicle", Location: "Makati", PricePerDay: 2500, Rating: 4.9, IsAvailable: true})
	s.Add(models.Listing{ID: "cam-3", Title: "Sony A7 III", Category: "camera", Location: "Cebu", PricePerDay: 1800, Rating: 4.9, IsAvailable: false})
	return s
}

func TestSearchByQueryTerms(t *testing.T) {
	s := seededStore()

	out, err := s.Search(context.Background(), "gopro", SearchFilters{})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(out) != 1 || out[0].ID != "cam-2" {
		t.Fatalf("got %+v, want just cam-2", out)
	}
}

func TestSearchFilters(t *testing.T) {
	s := seededStore()

	out, err := s.Search(context.Background(), "", SearchFilters{Category: "camera"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	// cam-3 is unavailable and must never show up.
	if len(out) != 2 {
		t.Fatalf("category filter returned %d listings, want 2", len(out))
	}

	out, _ = s.Search(context.Background(), "", SearchFilters{Location: "makati"})
	if len(out) != 2 {
		t.Fatalf("location filter returned %d listings, want 2", len(out))
	}

	out, _ = s.Search(context.Background(), "", SearchFilters{Category: "camera", MaxPrice: 1000})
	if len(out) != 1 || out[0].ID != "cam-2" {
		t.Fatalf("price filter got %+v, want just cam-2", out)
	}
}

func TestSearchSortsByRating(t *testing.T) {
	s := seededStore()

	out, err := s.Search(context.Background(), "", SearchFilters{})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	for i := 1; i < len(out); i++ {
		if out[i].Rating > out[i-1].Rating {
			t.Fatalf("results not sorted by rating: %v before %v", out[i-1].Rating, out[i].Rating)
		}
	}
}

func TestSearchNoMatches(t *testing.T) {
	s := seededStore()

	out, err := s.Search(context.Background(), "submarine", SearchFilters{})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected no matches, got %d", len(out))
	}
}

func TestGetByIDAndExists(t *testing.T) {
	s := seededStore()

	l, err := s.GetByID(context.Background(), "cam-1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if l.Title != "Canon EOS R6" {
		t.Errorf("got %q", l.Title)
	}

	if _, err := s.GetByID(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing listing returned %v, want ErrNotFound", err)
	}

	if ok, _ := s.Exists(context.Background(), "car-1"); !ok {
		t.Error("car-1 should exist")
	}
	if ok, _ := s.Exists(context.Background(), "nope"); ok {
		t.Error("nope should not exist")
	}
}
