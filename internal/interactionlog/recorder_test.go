package interactionlog

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestRecorderAppendsEntries(t *testing.T) {
	store := NewInMemoryStore()
	r := NewRecorder(store)

	r.Record(&Entry{UserInput: "hello", AIResponse: "Hi!", Intent: "greeting"})
	r.Record(&Entry{UserInput: "find a camera", AIResponse: "I found 2 listings.", ActionType: "search_results"})
	r.Close()

	entries := store.Entries()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].ID == "" || entries[0].CreatedAt.IsZero() {
		t.Errorf("store must assign id and timestamp: %+v", entries[0])
	}
}

func TestRecorderIgnoresNil(t *testing.T) {
	store := NewInMemoryStore()
	r := NewRecorder(store)

	r.Record(nil)
	r.Close()

	if n := len(store.Entries()); n != 0 {
		t.Fatalf("nil entry must be ignored, got %d entries", n)
	}
}

type failingStore struct {
	calls atomic.Int32
}

func (f *failingStore) Append(ctx context.Context, e *Entry) error {
	f.calls.Add(1)
	return errors.New("disk full")
}

func (f *failingStore) Aggregates(ctx context.Context, since time.Time) (*Aggregates, error) {
	return nil, errors.New("disk full")
}

func TestRecorderSwallowsStoreErrors(t *testing.T) {
	store := &failingStore{}
	r := NewRecorder(store)

	// Record must never panic or block on a failing store.
	for i := 0; i < 10; i++ {
		r.Record(&Entry{UserInput: "hello"})
	}
	r.Close()

	if store.calls.Load() != 10 {
		t.Errorf("store saw %d appends, want 10", store.calls.Load())
	}
}

func TestAggregates(t *testing.T) {
	store := NewInMemoryStore()
	now := time.Now()
	rating := 5

	must := func(e *Entry) {
		if err := store.Append(context.Background(), e); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}
	must(&Entry{UserInput: "old", CreatedAt: now.Add(-48 * time.Hour)})
	must(&Entry{UserInput: "a", ActionType: "search_results", CreatedAt: now})
	must(&Entry{UserInput: "b", ActionType: "search_results", CreatedAt: now})
	must(&Entry{UserInput: "c", ActionType: "navigate", Rating: &rating, CreatedAt: now})

	agg, err := store.Aggregates(context.Background(), now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("aggregates failed: %v", err)
	}
	if agg.TotalTurns != 3 {
		t.Errorf("total turns = %d, want 3 (old entry excluded)", agg.TotalTurns)
	}
	if agg.ActionCounts["search_results"] != 2 || agg.ActionCounts["navigate"] != 1 {
		t.Errorf("unexpected action counts: %v", agg.ActionCounts)
	}
	if agg.RatedTurns != 1 || agg.AverageRating != 5 {
		t.Errorf("ratings: rated=%d avg=%v, want 1 and 5", agg.RatedTurns, agg.AverageRating)
	}
}
