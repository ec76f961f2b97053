package assistant

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/renthing/internal/catalog"
	"github.com/renthing/internal/interactionlog"
	"github.com/renthing/internal/websearch"
	"github.com/renthing/pkg/models"
)

// Collaborator interfaces. All of them are implemented elsewhere; the
// core only depends on these contracts.

// CatalogSearcher is the platform inventory lookup
type CatalogSearcher interface {
	Search(ctx context.Context, query string, filters catalog.SearchFilters) ([]models.Listing, error)
	GetByID(ctx context.Context, id string) (*models.Listing, error)
	Exists(ctx context.Context, id string) (bool, error)
}

// WebSearcher is the external search provider. It must be treated as
// unreliable: timeouts, empty results, and errors are all expected.
type WebSearcher interface {
	Search(ctx context.Context, query string) ([]websearch.Result, error)
}

// PreferenceStore supplies stated and inferred preferences for a user
type PreferenceStore interface {
	GetUserContext(ctx context.Context, userID string) (StatedPreferences, InferredPreferences, error)
}

// PathValidator gates navigation actions before they reach the caller
type PathValidator interface {
	IsValidPath(ctx context.Context, path string) (bool, error)
}

// InteractionRecorder receives a fire-and-forget copy of each turn
type InteractionRecorder interface {
	Record(e *interactionlog.Entry)
}

// Assistant is the conversational orchestration core. It is stateless
// between calls: conversation context is supplied by the caller on
// every call and never stored or mutated here.
type Assistant struct {
	catalog    CatalogSearcher
	webSearch  WebSearcher
	prefs      PreferenceStore
	validator  PathValidator
	recorder   InteractionRecorder
	webTimeout time.Duration
}

// Option configures an Assistant
type Option func(*Assistant)

// WithPreferenceStore attaches the preference store collaborator
func WithPreferenceStore(p PreferenceStore) Option {
	return func(a *Assistant) { a.prefs = p }
}

// WithInteractionRecorder attaches the interaction log sink
func WithInteractionRecorder(r InteractionRecorder) Option {
	return func(a *Assistant) { a.recorder = r }
}

// WithWebSearchTimeout bounds each web search call
func WithWebSearchTimeout(d time.Duration) Option {
	return func(a *Assistant) {
		if d > 0 {
			a.webTimeout = d
		}
	}
}

func New(cat CatalogSearcher, web WebSearcher, validator PathValidator, opts ...Option) *Assistant {
	a := &Assistant{
		catalog:    cat,
		webSearch:  web,
		validator:  validator,
		webTimeout: 4 * time.Second,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ProcessMessage is the single synchronous entry point: classify the
// message, resolve the effect, run the optional search, assemble the
// reply, and validate any navigation target. Every failure mode
// degrades to a still-useful conversational reply; this method never
// returns an error to the caller.
func (a *Assistant) ProcessMessage(ctx context.Context, text string, convCtx *ConversationContext) AIResponse {
	convCtx = a.enrichContext(ctx, convCtx)

	intent := Classify(text)
	res := Resolve(intent, convCtx)

	var out SearchOutcome
	switch res.Kind {
	case ResolvePlatformSearch:
		listings, err := a.catalog.Search(ctx, res.Query, res.Filters)
		if err != nil {
			// A broken catalog degrades to the zero-results reply.
			log.Error().Err(err).Str("query", res.Query).Msg("Catalog search failed")
			listings = nil
		}
		out.Listings = listings

	case ResolveWebSearch:
		webCtx, cancel := context.WithTimeout(ctx, a.webTimeout)
		out.WebResults, out.Err = a.webSearch.Search(webCtx, res.Query)
		cancel()
		if out.Err != nil {
			log.Warn().Err(out.Err).Str("query", res.Query).Msg("Web search failed, synthesizing fallback results")
		}
	}

	resp := AssembleResponse(res, out)
	resp = a.gateNavigation(ctx, resp)

	a.record(convCtx, text, intent, resp)
	return resp
}

// SuggestListing proactively recommends a listing from the user's
// preferred categories. Returns nil when there is nothing to suggest.
func (a *Assistant) SuggestListing(ctx context.Context, convCtx *ConversationContext) *AIResponse {
	convCtx = a.enrichContext(ctx, convCtx)

	categories := convCtx.PreferredCategories()
	if len(categories) == 0 {
		return nil
	}

	for _, cat := range categories {
		listings, err := a.catalog.Search(ctx, "", catalog.SearchFilters{Category: cat})
		if err != nil {
			log.Warn().Err(err).Str("category", cat).Msg("Suggestion search failed")
			continue
		}
		if len(listings) == 0 {
			continue
		}
		top := listings[0]
		resp := &AIResponse{
			Text:        fmt.Sprintf("Since you like %s rentals, you might want to check out %q.", cat, top.Title),
			Suggestions: []string{"Show me more like this", "Not interested"},
			Action:      SuggestListingAction(top.ID),
		}
		a.record(convCtx, "", Intent{Kind: IntentOther}, *resp)
		return resp
	}
	return nil
}

// LookupListing builds a reply that shows a specific listing, used
// when the caller already knows which listing is in view.
func (a *Assistant) LookupListing(ctx context.Context, listingID string) (AIResponse, error) {
	l, err := a.catalog.GetByID(ctx, listingID)
	if err != nil {
		return AIResponse{}, fmt.Errorf("lookup listing %s: %w", listingID, err)
	}
	return AIResponse{
		Text:        fmt.Sprintf("%s — %s%.2f per day in %s. Want to book it?", l.Title, currencySymbol(l.Currency), l.PricePerDay, l.Location),
		Suggestions: []string{"Book this listing", "See reviews", "Find similar items"},
		Action:      ShowListingAction(l.ID),
	}, nil
}

// IsValidPath exposes the navigation validator so the caller can gate
// a route change before rendering it.
func (a *Assistant) IsValidPath(ctx context.Context, path string) (bool, error) {
	if a.validator == nil {
		return false, nil
	}
	return a.validator.IsValidPath(ctx, path)
}

// enrichContext fills missing preferences from the preference store.
// The caller's context value is never mutated; enrichment happens on
// a shallow copy. Store failures are logged and ignored.
func (a *Assistant) enrichContext(ctx context.Context, convCtx *ConversationContext) *ConversationContext {
	if convCtx == nil {
		return &ConversationContext{}
	}
	if a.prefs == nil || convCtx.UserID == "" {
		return convCtx
	}
	if len(convCtx.Stated.Categories) > 0 || len(convCtx.Inferred.PreferredCategories) > 0 {
		return convCtx
	}

	stated, inferred, err := a.prefs.GetUserContext(ctx, convCtx.UserID)
	if err != nil {
		log.Debug().Err(err).Str("user_id", convCtx.UserID).Msg("Preference lookup failed")
		return convCtx
	}

	enriched := *convCtx
	// Stated preferences from the caller always win over the store.
	if enriched.Stated.Language == "" {
		enriched.Stated.Language = stated.Language
	}
	if enriched.Stated.Currency == "" {
		enriched.Stated.Currency = stated.Currency
	}
	if len(enriched.Stated.Categories) == 0 {
		enriched.Stated.Categories = stated.Categories
	}
	enriched.Inferred = inferred
	return &enriched
}

// gateNavigation validates a navigate action before it reaches the
// caller. Invalid targets are dropped with a warning; the reply text
// degrades to a conversational pointer instead of an error.
func (a *Assistant) gateNavigation(ctx context.Context, resp AIResponse) AIResponse {
	if resp.Action == nil || resp.Action.Type != ActionNavigate {
		return resp
	}

	valid := false
	if a.validator != nil {
		var err error
		valid, err = a.validator.IsValidPath(ctx, resp.Action.Path)
		if err != nil {
			valid = false
		}
	}
	if valid {
		return resp
	}

	log.Warn().Str("path", resp.Action.Path).Msg("Dropping navigation to unknown route")
	resp.Action = nil
	resp.Text = "I can't take you there, but I can help with something else. What would you like to do?"
	resp.Suggestions = []string{"Browse listings", "Show my bookings", "Help"}
	return resp
}

// record sends a fire-and-forget copy of the turn to the interaction
// log. It never blocks or fails the response path.
func (a *Assistant) record(convCtx *ConversationContext, text string, intent Intent, resp AIResponse) {
	if a.recorder == nil {
		return
	}
	entry := &interactionlog.Entry{
		UserID:     convCtx.UserID,
		SessionID:  convCtx.SessionID,
		UserInput:  text,
		AIResponse: resp.Text,
		Intent:     string(intent.Kind),
		CreatedAt:  time.Now(),
	}
	if resp.Action != nil {
		entry.ActionType = string(resp.Action.Type)
	}
	a.recorder.Record(entry)
}

func currencySymbol(code string) string {
	switch code {
	case "", "PHP":
		return "₱"
	case "USD":
		return "$"
	default:
		return code + " "
	}
}
