package preferences

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/renthing/internal/assistant"
)

func TestInMemoryStoreRoundTrip(t *testing.T) {
	s := NewInMemoryStore()

	stated := assistant.StatedPreferences{
		Language:   "fil",
		Currency:   "PHP",
		Categories: []string{"camera", "drone"},
	}
	inferred := assistant.InferredPreferences{
		PreferredCategories: []string{"camera"},
		PreferredLocations:  []string{"makati"},
		PreferredPriceRange: &assistant.PriceRange{Min: 500, Max: 2000},
		BookingPatterns:     map[string]int{"camera": 3, "drone": 1},
	}
	s.Set("u1", stated, inferred)

	gotStated, gotInferred, err := s.GetUserContext(context.Background(), "u1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if diff := cmp.Diff(stated, gotStated); diff != "" {
		t.Errorf("stated preferences mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(inferred, gotInferred); diff != "" {
		t.Errorf("inferred preferences mismatch (-want +got):\n%s", diff)
	}
}

func TestInMemoryStoreUnknownUser(t *testing.T) {
	s := NewInMemoryStore()

	stated, inferred, err := s.GetUserContext(context.Background(), "stranger")
	if err != nil {
		t.Fatalf("unknown user must not error: %v", err)
	}
	if diff := cmp.Diff(assistant.StatedPreferences{}, stated); diff != "" {
		t.Errorf("expected zero stated preferences:\n%s", diff)
	}
	if diff := cmp.Diff(assistant.InferredPreferences{}, inferred); diff != "" {
		t.Errorf("expected zero inferred preferences:\n%s", diff)
	}
}
