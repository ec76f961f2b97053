package websearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

const instantAnswerBody = `{
	"Heading": "Camera",
	"AbstractText": "A camera is an instrument used to capture images.",
	"AbstractURL": "https://en.wikipedia.org/wiki/Camera",
	"RelatedTopics": [
		{"Text": "Digital camera - A camera that stores images digitally.", "FirstURL": "https://duckduckgo.com/Digital_camera"},
		{"Text": "", "FirstURL": "https://example.com/skipped"},
		{"Text": "Camera lens - An optical lens used with a camera body.", "FirstURL": "https://duckduckgo.com/Camera_lens"}
	]
}`

func TestSearchParsesInstantAnswer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "camera" {
			t.Errorf("query param q = %q, want camera", got)
		}
		if got := r.URL.Query().Get("format"); got != "json" {
			t.Errorf("query param format = %q, want json", got)
		}
		w.Write([]byte(instantAnswerBody))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 2*time.Second, 100, 0)
	results, err := c.Search(context.Background(), "camera")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	// Abstract plus the two non-empty related topics.
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if results[0].Title != "Camera" || results[0].URL != "https://en.wikipedia.org/wiki/Camera" {
		t.Errorf("unexpected first result: %+v", results[0])
	}
	if results[1].Title != "Digital camera" {
		t.Errorf("related topic title = %q, want the blurb prefix", results[1].Title)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	c := NewClient("http://unused.invalid", time.Second, 100, 0)
	if _, err := c.Search(context.Background(), "   "); err == nil {
		t.Fatal("expected an error for an empty query")
	}
}

func TestSearchRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(instantAnswerBody))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 2*time.Second, 100, 2)
	results, err := c.Search(context.Background(), "camera")
	if err != nil {
		t.Fatalf("search failed after retry: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected results from the retried call")
	}
	if calls.Load() != 2 {
		t.Errorf("server saw %d calls, want 2", calls.Load())
	}
}

func TestSearchSurfacesPersistentFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 2*time.Second, 100, 1)
	if _, err := c.Search(context.Background(), "camera"); err == nil {
		t.Fatal("expected an error when every attempt fails")
	}
}

func TestSearchUsesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := NewCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Minute)

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(instantAnswerBody))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 2*time.Second, 100, 0, WithCache(cache))

	first, err := c.Search(context.Background(), "camera")
	if err != nil {
		t.Fatalf("first search failed: %v", err)
	}
	second, err := c.Search(context.Background(), "  Camera ")
	if err != nil {
		t.Fatalf("cached search failed: %v", err)
	}

	if calls.Load() != 1 {
		t.Errorf("upstream saw %d calls, want 1 (second should hit the cache)", calls.Load())
	}
	if len(first) != len(second) {
		t.Errorf("cached results differ: %d vs %d", len(first), len(second))
	}
}

func TestCacheOutageIsAMiss(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewCache(client, time.Minute)
	mr.Close()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(instantAnswerBody))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 2*time.Second, 100, 0, WithCache(cache))
	results, err := c.Search(context.Background(), "camera")
	if err != nil {
		t.Fatalf("search must survive a cache outage: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected upstream results despite the dead cache")
	}
}

func TestTopicTitle(t *testing.T) {
	if got := topicTitle("Digital camera - A camera that stores images digitally."); got != "Digital camera" {
		t.Errorf("topicTitle = %q", got)
	}
	long := "a blurb without a separator that keeps going well past the sixty character mark for titles"
	if got := topicTitle(long); len(got) != 60 {
		t.Errorf("long blurb trimmed to %d chars, want 60", len(got))
	}
}
