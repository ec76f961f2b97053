package assistant

import (
	"github.com/renthing/internal/catalog"
	"github.com/renthing/internal/websearch"
	"github.com/renthing/pkg/models"
)

// MessageRole identifies who produced a history turn
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// HistoryMessage is one turn of caller-owned conversation history
type HistoryMessage struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// PriceRange summarizes the price band a user tends to book in
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Avg float64 `json:"avg"`
}

// StatedPreferences are preferences the user set explicitly. They
// always win over inferred preferences for the same field.
type StatedPreferences struct {
	Language   string   `json:"language,omitempty"`
	Currency   string   `json:"currency,omitempty"`
	Categories []string `json:"categories,omitempty"`
}

// InferredPreferences are derived from past activity by the
// preference store; the core never computes them itself.
type InferredPreferences struct {
	PreferredCategories []string       `json:"preferred_categories,omitempty"`
	PreferredPriceRange *PriceRange    `json:"preferred_price_range,omitempty"`
	PreferredLocations  []string       `json:"preferred_locations,omitempty"`
	BookingPatterns     map[string]int `json:"booking_patterns,omitempty"`
}

// ConversationContext is per-conversation state supplied by the caller
// on every call. The core reads it but never mutates it; the caller
// appends turns and decides what to persist.
type ConversationContext struct {
	UserID    string              `json:"user_id,omitempty"`
	SessionID string              `json:"session_id,omitempty"`
	History   []HistoryMessage    `json:"history,omitempty"`
	Stated    StatedPreferences   `json:"stated_preferences"`
	Inferred  InferredPreferences `json:"inferred_preferences"`
}

// PreferredCategories resolves the stated-wins-over-inferred rule for
// category preferences.
func (c *ConversationContext) PreferredCategories() []string {
	if c == nil {
		return nil
	}
	if len(c.Stated.Categories) > 0 {
		return c.Stated.Categories
	}
	return c.Inferred.PreferredCategories
}

// IntentKind is the coarse classification of a user message
type IntentKind string

const (
	IntentGreeting          IntentKind = "greeting"
	IntentSearch            IntentKind = "search"
	IntentWebSearch         IntentKind = "web_search"
	IntentBooking           IntentKind = "booking"
	IntentListingManagement IntentKind = "listing_management"
	IntentAccount           IntentKind = "account"
	IntentHelp              IntentKind = "help"
	IntentOther             IntentKind = "other"
)

// Intent is the classified purpose of a message plus the query and
// filters extracted from it. Created fresh per message, never persisted.
type Intent struct {
	Kind    IntentKind            `json:"kind"`
	Query   string                `json:"query"`
	Filters catalog.SearchFilters `json:"filters"`

	// Raw is the normalized message text, kept for downstream keyword
	// checks such as navigation request detection.
	Raw string `json:"-"`
}

// ActionType tags the ActionDescriptor variants
type ActionType string

const (
	ActionNavigate         ActionType = "navigate"
	ActionSuggestListing   ActionType = "suggest_listing"
	ActionShowListing      ActionType = "show_listing"
	ActionSearchResults    ActionType = "search_results"
	ActionWebSearchResults ActionType = "web_search_results"
)

// Action is a closed tagged union over the five action kinds. Exactly
// one payload field is set, matching Type. Use the constructors.
type Action struct {
	Type       ActionType         `json:"type"`
	Path       string             `json:"path,omitempty"`
	ListingID  string             `json:"listing_id,omitempty"`
	Results    []models.Listing   `json:"results,omitempty"`
	WebResults []websearch.Result `json:"web_results,omitempty"`
}

func NavigateAction(path string) *Action {
	return &Action{Type: ActionNavigate, Path: path}
}

func SuggestListingAction(listingID string) *Action {
	return &Action{Type: ActionSuggestListing, ListingID: listingID}
}

func ShowListingAction(listingID string) *Action {
	return &Action{Type: ActionShowListing, ListingID: listingID}
}

func SearchResultsAction(results []models.Listing) *Action {
	return &Action{Type: ActionSearchResults, Results: results}
}

func WebSearchResultsAction(results []websearch.Result) *Action {
	return &Action{Type: ActionWebSearchResults, WebResults: results}
}

// AIResponse is the assistant's reply for one turn. Text is never
// empty; Suggestions are ordered, first is the primary follow-up; at
// most one Action per response.
type AIResponse struct {
	Text        string   `json:"text"`
	Suggestions []string `json:"suggestions,omitempty"`
	Action      *Action  `json:"action,omitempty"`
}

// ResolutionKind is the downstream effect chosen for an intent
type ResolutionKind string

const (
	ResolvePlatformSearch ResolutionKind = "platform_search"
	ResolveWebSearch      ResolutionKind = "web_search"
	ResolveConversational ResolutionKind = "conversational"
)

// Resolution is the Action Resolver's decision for one turn
type Resolution struct {
	Kind    ResolutionKind
	Intent  Intent
	Query   string
	Filters catalog.SearchFilters

	// NavigateTo is set when a conversational turn asked to be taken
	// somewhere ("go to my bookings"); the target still has to pass
	// the navigation validator before the caller may act on it.
	NavigateTo string
}
