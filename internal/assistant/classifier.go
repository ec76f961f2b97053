package assistant

import (
	"strings"
)

// The classifier is a fixed, ordered rule list: the first matching
// rule wins, so more specific vocabularies (booking, listing, account)
// are evaluated before the generic find/search bucket. Matching is
// keyword-based over a mixed English/Filipino vocabulary; no language
// detection is performed. Classify is a pure function of the text.

type rule struct {
	kind  IntentKind
	match func(text string) bool
}

var rules = []rule{
	{IntentGreeting, isGreeting},
	{IntentBooking, matchAnyPhrase(bookingVocab)},
	{IntentListingManagement, matchAnyPhrase(listingVocab)},
	{IntentAccount, matchAnyPhrase(accountVocab)},
	{IntentHelp, matchAnyPhrase(helpVocab)},
	{IntentWebSearch, matchAnyPhrase(webSearchVocab)},
	{IntentSearch, matchAnyPhrase(searchVocab)},
}

var (
	greetingVocab = []string{
		"hello", "hi", "hey", "yo", "good morning", "good afternoon",
		"good evening", "kumusta", "kamusta", "musta", "magandang araw",
	}
	bookingVocab = []string{
		"book", "booking", "reserve", "reservation", "rent this",
		"my bookings", "cancel my", "extend my", "irent ko", "magrent ako",
		"paupahan", "uupa ako",
	}
	listingVocab = []string{
		"list my", "list an item", "list my item", "post my", "create a listing",
		"my listing", "my listings", "edit my listing", "unlist", "how do i list",
		"ipaupa", "ipa-rent", "ipparenta",
	}
	accountVocab = []string{
		"my account", "my profile", "password", "login", "log in", "log out",
		"logout", "sign in", "sign up", "register", "wishlist", "account ko",
		"profile ko",
	}
	helpVocab = []string{
		"help", "tulong", "how does", "how do i", "how to", "paano", "faq",
		"support", "guide", "safety", "contact", "refund", "payment",
	}
	webSearchVocab = []string{
		"search the web", "search online", "google", "web search", "sa internet",
	}
	searchVocab = []string{
		"find", "search", "looking for", "hanap", "naghahanap", "i need",
		"kailangan ko", "show me", "available", "rent a", "rent an", "magkano",
		"do you have", "meron ba",
	}
)

// Classify maps raw user text to an Intent. Empty or whitespace-only
// input classifies as IntentOther; the caller turns that into a
// clarifying question rather than an error.
func Classify(text string) Intent {
	normalized := normalize(text)
	if normalized == "" {
		return Intent{Kind: IntentOther}
	}

	for _, r := range rules {
		if r.match(normalized) {
			intent := Intent{Kind: r.kind, Raw: normalized}
			if r.kind == IntentSearch || r.kind == IntentWebSearch {
				intent.Query = extractQuery(normalized)
				intent.Filters = extractFilters(normalized)
			}
			return intent
		}
	}
	return Intent{Kind: IntentOther, Query: normalized, Raw: normalized}
}

func normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// isGreeting matches only short salutation-style messages so that
// "hi, find me a camera" still falls through to the search rules.
func isGreeting(text string) bool {
	if len(strings.Fields(text)) > 4 {
		return false
	}
	return containsPhrase(text, greetingVocab)
}

func matchAnyPhrase(vocab []string) func(string) bool {
	return func(text string) bool {
		return containsPhrase(text, vocab)
	}
}

// containsPhrase matches multi-word phrases by substring and single
// words on word boundaries, so "hi" does not match inside "third".
func containsPhrase(text string, vocab []string) bool {
	var words []string
	for _, phrase := range vocab {
		if strings.ContainsRune(phrase, ' ') {
			if strings.Contains(text, phrase) {
				return true
			}
			continue
		}
		if words == nil {
			words = splitWords(text)
		}
		for _, w := range words {
			if w == phrase {
				return true
			}
		}
	}
	return false
}

func splitWords(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '\'':
			return false
		}
		return true
	})
}
