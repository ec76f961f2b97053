package assistant

import (
	"fmt"
	"net/url"

	"github.com/renthing/internal/websearch"
	"github.com/renthing/pkg/models"
)

// The Response Assembler builds the final reply for a turn: text that
// is never empty, up to four ordered follow-up suggestions, and at
// most one action descriptor.

const maxSuggestions = 4

// SearchOutcome carries whatever the optional search call produced.
// Err is only meaningful for web searches, where the assembler
// synthesizes fallback results instead of surfacing the failure.
type SearchOutcome struct {
	Listings   []models.Listing
	WebResults []websearch.Result
	Err        error
}

// AssembleResponse builds the AIResponse for a resolution and its
// search outcome.
func AssembleResponse(res Resolution, out SearchOutcome) AIResponse {
	switch res.Kind {
	case ResolvePlatformSearch:
		return assemblePlatformSearch(res, out.Listings)
	case ResolveWebSearch:
		return assembleWebSearch(res, out.WebResults, out.Err)
	default:
		return assembleConversational(res)
	}
}

func assemblePlatformSearch(res Resolution, listings []models.Listing) AIResponse {
	if len(listings) == 0 {
		return AIResponse{
			Text: fmt.Sprintf("Sorry, I couldn't find any listings for %q right now.", res.Query),
			Suggestions: clampSuggestions([]string{
				"Try a different search",
				fmt.Sprintf("Search the web for %s", res.Query),
				"Browse all listings",
			}),
		}
	}

	noun := "listings"
	if len(listings) == 1 {
		noun = "listing"
	}
	return AIResponse{
		Text: fmt.Sprintf("I found %d %s for %q. Tap one to see the details.", len(listings), noun, res.Query),
		Suggestions: clampSuggestions([]string{
			"Refine my search",
			"Sort by price",
			"Show only top-rated",
		}),
		Action: SearchResultsAction(listings),
	}
}

// assembleWebSearch never surfaces a provider failure: when the
// upstream call errored, timed out, or came back empty, it
// synthesizes generic results referencing the original query so the
// returned list always has at least one entry.
func assembleWebSearch(res Resolution, results []websearch.Result, err error) AIResponse {
	if err != nil || len(results) == 0 {
		results = fallbackWebResults(res.Query)
	}
	return AIResponse{
		Text: fmt.Sprintf("Here's what I found on the web about %q.", res.Query),
		Suggestions: clampSuggestions([]string{
			fmt.Sprintf("Search RenThing for %s", res.Query),
			"Ask me something else",
		}),
		Action: WebSearchResultsAction(results),
	}
}

func fallbackWebResults(query string) []websearch.Result {
	escaped := url.QueryEscape(query)
	return []websearch.Result{
		{
			Title:   fmt.Sprintf("Web results for %s", query),
			Snippet: fmt.Sprintf("I couldn't reach the search provider just now. Open this link to search the web for %q yourself.", query),
			URL:     "https://duckduckgo.com/?q=" + escaped,
		},
		{
			Title:   "RenThing Help Center",
			Snippet: "Guides on renting, listing, payments, and staying safe on RenThing.",
			URL:     "/help",
		},
	}
}

var conversationalReplies = map[IntentKind]struct {
	text        string
	suggestions []string
}{
	IntentGreeting: {
		text: "Hi, I'm REN! I can help you find rentals, manage bookings, or list your own items. What would you like to do?",
		suggestions: []string{
			"Find something to rent",
			"Show my bookings",
			"List an item",
			"How does RenThing work?",
		},
	},
	IntentBooking: {
		text: "I can help with bookings. You can review upcoming bookings, cancel one, or book something new.",
		suggestions: []string{
			"Show my bookings",
			"Book something new",
			"Cancel a booking",
			"How do payments work?",
		},
	},
	IntentListingManagement: {
		text: "Ready to earn from your items? I can walk you through listing, pricing, and managing your rentals.",
		suggestions: []string{
			"List an item",
			"Edit my listings",
			"Pricing tips",
			"What items rent well?",
		},
	},
	IntentAccount: {
		text: "I can help with your account — profile, wishlist, sign-in, and settings.",
		suggestions: []string{
			"Go to my profile",
			"Open my wishlist",
			"Reset my password",
		},
	},
	IntentHelp: {
		text: "Here to help! Ask me anything about renting, listing, payments, or safety on RenThing.",
		suggestions: []string{
			"How do I rent an item?",
			"How do I list an item?",
			"Payment options",
			"Safety guide",
		},
	},
	IntentOther: {
		text: "I'm not sure I got that. Could you tell me a bit more about what you're looking for?",
		suggestions: []string{
			"Find something to rent",
			"Show my bookings",
			"Talk to support",
		},
	},
}

func assembleConversational(res Resolution) AIResponse {
	// A search that produced no usable query becomes a clarifying
	// question, never an empty-query dispatch.
	if res.Intent.Kind == IntentSearch || res.Intent.Kind == IntentWebSearch {
		return AIResponse{
			Text: "What would you like to rent? Tell me the item, and optionally a place and budget.",
			Suggestions: clampSuggestions([]string{
				"Find a camera",
				"Find a car in Manila",
				"Browse all listings",
			}),
		}
	}

	reply, ok := conversationalReplies[res.Intent.Kind]
	if !ok {
		reply = conversationalReplies[IntentOther]
	}

	resp := AIResponse{
		Text:        reply.text,
		Suggestions: clampSuggestions(reply.suggestions),
	}

	if res.NavigateTo != "" {
		resp.Text = fmt.Sprintf("Taking you to %s.", res.NavigateTo)
		resp.Suggestions = nil
		resp.Action = NavigateAction(res.NavigateTo)
	}
	return resp
}

func clampSuggestions(s []string) []string {
	if len(s) > maxSuggestions {
		return s[:maxSuggestions]
	}
	return s
}
