package assistant

import (
	"strings"

	"github.com/renthing/internal/catalog"
)

// The Action Resolver turns a classified intent into the downstream
// effect for this turn: a platform catalog search, an external web
// search, or a conversational reply. It never dispatches an
// empty-query search; those fall back to a clarifying reply.

var questionWords = []string{
	"what", "why", "how", "when", "where", "who", "which", "is", "are",
	"ano", "bakit", "paano", "kailan", "saan", "sino", "alin",
}

// navTargets maps navigation request keywords to route paths. Checked
// in order so more specific phrases win.
var navTargets = []struct {
	keyword string
	path    string
}{
	{"bookings", "/bookings"},
	{"wishlist", "/wishlist"},
	{"chat", "/chat"},
	{"messages", "/chat"},
	{"list-item", "/list-item"},
	{"list an item", "/list-item"},
	{"browse", "/browse"},
	{"faq", "/help/faq"},
	{"safety", "/help/safety-guide"},
	{"payments", "/help/payments"},
	{"help", "/help"},
	{"login", "/login"},
	{"sign in", "/login"},
	{"register", "/register"},
	{"sign up", "/register"},
	{"profile", "/profile"},
	{"account", "/profile"},
	{"home", "/"},
}

var navVerbs = []string{
	"go to", "open", "take me to", "take me", "bring me to", "pumunta sa",
	"navigate to", "show my", "see my", "view my",
}

// Resolve decides which effect a classified intent produces. The
// conversation context personalizes platform searches but never
// changes the chosen effect.
func Resolve(intent Intent, convCtx *ConversationContext) Resolution {
	res := Resolution{Kind: ResolveConversational, Intent: intent}

	switch intent.Kind {
	case IntentSearch:
		if intent.Query == "" {
			return res
		}
		if isGeneralKnowledge(intent.Query) {
			res.Kind = ResolveWebSearch
			res.Query = intent.Query
			return res
		}
		res.Kind = ResolvePlatformSearch
		res.Query = intent.Query
		res.Filters = personalizeFilters(intent, convCtx)
		return res

	case IntentWebSearch:
		if intent.Query == "" {
			return res
		}
		res.Kind = ResolveWebSearch
		res.Query = intent.Query
		return res

	default:
		res.NavigateTo = navigationTarget(intent)
		return res
	}
}

// isGeneralKnowledge flags search queries that the platform catalog
// cannot answer: question-word openers and queries with no rental
// vocabulary at all.
func isGeneralKnowledge(query string) bool {
	first := ""
	if fields := strings.Fields(query); len(fields) > 0 {
		first = fields[0]
	}
	for _, w := range questionWords {
		if first == w {
			return true
		}
	}
	return !hasRentalTerm(query)
}

// personalizeFilters fills filter gaps from the user's preferences.
// Extracted filters always win; stated preferences win over inferred.
func personalizeFilters(intent Intent, convCtx *ConversationContext) (f catalog.SearchFilters) {
	f = intent.Filters
	if convCtx == nil {
		return f
	}
	if f.Location == "" && len(convCtx.Inferred.PreferredLocations) > 0 {
		f.Location = convCtx.Inferred.PreferredLocations[0]
	}
	return f
}

// navigationTarget detects "take me to X" style requests inside
// otherwise conversational intents and returns the route path, or ""
// when the turn is not a navigation request. The returned path is
// validated before the caller may act on it.
func navigationTarget(intent Intent) string {
	if intent.Kind != IntentBooking && intent.Kind != IntentAccount && intent.Kind != IntentHelp {
		return ""
	}

	text := intent.Raw
	if text == "" {
		return ""
	}

	hasVerb := false
	for _, v := range navVerbs {
		if strings.Contains(text, v) {
			hasVerb = true
			break
		}
	}
	if !hasVerb {
		return ""
	}

	for _, t := range navTargets {
		if strings.Contains(text, t.keyword) {
			return t.path
		}
	}
	return ""
}
