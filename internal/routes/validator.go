package routes

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
)

// ListingChecker is the catalog lookup the validator needs for
// /listing/{id} paths.
type ListingChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// Validator guards navigation actions: a path must resolve to a real
// route before the caller is allowed to act on it. Unknown paths are
// invalid — default deny.
//
// The rules are deliberately uneven, matching current behavior:
// /listing/{id} requires the listing to exist in the catalog, while
// /profile/{id} only requires a non-empty id and /help/* allows any
// path of at most three segments. Do not tighten the profile/help
// rules without confirming the intended trust boundary.
type Validator struct {
	static  map[string]Route
	listing ListingChecker
}

func NewValidator(tree []Route, listing ListingChecker) *Validator {
	static := make(map[string]Route)
	flatten(tree, static)
	return &Validator{static: static, listing: listing}
}

// IsValidPath reports whether a navigation target resolves to a real
// route. The only error it can return comes from the catalog lookup
// behind /listing/{id}.
func (v *Validator) IsValidPath(ctx context.Context, path string) (bool, error) {
	path = normalizePath(path)
	if path == "" {
		return false, nil
	}

	// 1. Exact match against the static route map
	if _, ok := v.static[path]; ok {
		return true, nil
	}

	// 2. /listing/{id}: non-empty id and the listing must exist
	if id, ok := dynamicSegment(path, "/listing/"); ok {
		if id == "" {
			return false, nil
		}
		exists, err := v.listing.Exists(ctx, id)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Listing existence check failed, treating path as invalid")
			return false, err
		}
		return exists, nil
	}

	// 3. /profile/{id}: non-empty id, no existence check
	if id, ok := dynamicSegment(path, "/profile/"); ok {
		return id != "", nil
	}

	// 4. /help/{sub}: known sub-route (handled above) or at most three segments
	if strings.HasPrefix(path, "/help/") {
		return segmentCount(path) <= 3, nil
	}

	// 5. Everything else is invalid
	return false, nil
}

// normalizePath strips query strings, fragments, and a trailing slash
// (except for the root path).
func normalizePath(path string) string {
	if idx := strings.IndexAny(path, "?#"); idx >= 0 {
		path = path[:idx]
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

// dynamicSegment returns the single path segment after prefix. It
// does not match when the remainder contains further slashes.
func dynamicSegment(path, prefix string) (string, bool) {
	if !strings.HasPrefix(path, prefix) {
		return "", false
	}
	rest := strings.TrimPrefix(path, prefix)
	if strings.Contains(rest, "/") {
		return "", false
	}
	return rest, true
}

func segmentCount(path string) int {
	return len(strings.Split(strings.Trim(path, "/"), "/"))
}
