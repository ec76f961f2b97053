package routes

import (
	"context"
	"errors"
	"testing"
)

type fakeListings struct {
	ids map[string]bool
	err error
}

func (f *fakeListings) Exists(ctx context.Context, id string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.ids[id], nil
}

func newTestValidator(listings *fakeListings) *Validator {
	if listings == nil {
		listings = &fakeListings{ids: map[string]bool{}}
	}
	return NewValidator(DefaultRouteMap(), listings)
}

func TestIsValidPathStaticRoutes(t *testing.T) {
	v := newTestValidator(nil)

	cases := []struct {
		path string
		want bool
	}{
		{"/", true},
		{"/browse", true},
		{"/bookings", true},
		{"/help", true},
		{"/help/faq", true},
		{"/help/safety-guide", true},
		{"/browse/", true},
		{"/browse?sort=price", true},
		{"/browse#top", true},
		{"/admin", false},
		{"/api/internal", false},
		{"", false},
		{"/Browse", false},
	}

	for _, tc := range cases {
		got, err := v.IsValidPath(context.Background(), tc.path)
		if err != nil {
			t.Errorf("IsValidPath(%q) returned error: %v", tc.path, err)
		}
		if got != tc.want {
			t.Errorf("IsValidPath(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestIsValidPathListing(t *testing.T) {
	v := newTestValidator(&fakeListings{ids: map[string]bool{"abc123": true}})

	cases := []struct {
		path string
		want bool
	}{
		{"/listing/abc123", true},
		{"/listing/missing", false},
		{"/listing/", false},
		{"/listing/abc123/reviews", false},
	}
	for _, tc := range cases {
		got, err := v.IsValidPath(context.Background(), tc.path)
		if err != nil {
			t.Errorf("IsValidPath(%q) returned error: %v", tc.path, err)
		}
		if got != tc.want {
			t.Errorf("IsValidPath(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestIsValidPathListingStoreFailure(t *testing.T) {
	v := newTestValidator(&fakeListings{err: errors.New("db down")})

	got, err := v.IsValidPath(context.Background(), "/listing/abc123")
	if err == nil {
		t.Fatal("expected the store error to surface")
	}
	if got {
		t.Fatal("store failure must not validate the path")
	}
}

func TestIsValidPathProfile(t *testing.T) {
	// Any non-empty id passes; there is no user existence check here.
	v := newTestValidator(nil)

	if got, _ := v.IsValidPath(context.Background(), "/profile/u123"); !got {
		t.Error("/profile/u123 should be valid")
	}
	// A trailing slash normalizes down to the static /profile page.
	if got, _ := v.IsValidPath(context.Background(), "/profile/"); !got {
		t.Error("/profile/ should normalize to the static profile page")
	}
	if got, _ := v.IsValidPath(context.Background(), "/profile/u123/settings"); got {
		t.Error("extra segments under /profile are not navigable")
	}
}

func TestIsValidPathHelpSubtree(t *testing.T) {
	v := newTestValidator(nil)

	if got, _ := v.IsValidPath(context.Background(), "/help/anything-at-all"); !got {
		t.Error("unknown two-segment help paths are allowed")
	}
	if got, _ := v.IsValidPath(context.Background(), "/help/guides/renting"); !got {
		t.Error("three-segment help paths are allowed")
	}
	if got, _ := v.IsValidPath(context.Background(), "/help/anything/nested/too/deep"); got {
		t.Error("help paths deeper than three segments must be rejected")
	}
}
