package assistant

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/renthing/internal/catalog"
)

// Query and filter extraction for search-flavored intents. All of it
// is plain string surgery over the normalized message; anything that
// cannot be extracted is simply left at its zero value.

var leadingSearchPhrases = []string{
	"please", "pwede", "can you", "could you",
	"search the web for", "search the web", "search online for", "google",
	"find me", "find", "search for", "search", "looking for", "i am",
	"naghahanap ako ng", "naghahanap ng", "hanap ng", "hanap",
	"i need", "kailangan ko ng", "show me", "do you have", "meron ba kayong",
	"rent a", "rent an", "i want to rent", "magkano ang", "magkano",
	"a", "an", "ang", "ng", "mga", "some",
}

var categoryVocab = map[string]string{
	"camera":     "camera",
	"dslr":       "camera",
	"gopro":      "camera",
	"lens":       "camera",
	"drone":      "drone",
	"car":        "vehicle",
	"van":        "vehicle",
	"kotse":      "vehicle",
	"sasakyan":   "vehicle",
	"motorcycle": "motorcycle",
	"motor":      "motorcycle",
	"bike":       "bicycle",
	"bicycle":    "bicycle",
	"bisikleta":  "bicycle",
	"laptop":     "electronics",
	"projector":  "audio-visual",
	"speaker":    "audio-visual",
	"speakers":   "audio-visual",
	"sound":      "audio-visual",
	"tent":       "outdoor",
	"camping":    "outdoor",
	"gown":       "attire",
	"dress":      "attire",
	"barong":     "attire",
	"suit":       "attire",
	"tools":      "tools",
	"drill":      "tools",
	"ladder":     "tools",
	"venue":      "venue",
}

var knownLocations = []string{
	"quezon city", "manila", "makati", "taguig", "bgc", "pasig", "cebu",
	"davao", "baguio", "iloilo", "pasay", "mandaluyong",
}

var (
	maxPriceRe     = regexp.MustCompile(`(?:under|below|less than|max|hanggang)\s*(?:php|₱|p)?\s*([\d,]+)`)
	minPriceRe     = regexp.MustCompile(`(?:above|over|more than|at least|min)\s*(?:php|₱|p)?\s*([\d,]+)`)
	betweenPriceRe = regexp.MustCompile(`between\s*(?:php|₱|p)?\s*([\d,]+)\s*(?:and|to|-)\s*(?:php|₱|p)?\s*([\d,]+)`)
)

// extractQuery strips the leading search verbiage and returns what the
// user is actually asking about.
func extractQuery(text string) string {
	q := text
	for changed := true; changed; {
		changed = false
		for _, phrase := range leadingSearchPhrases {
			if strings.HasPrefix(q, phrase+" ") {
				q = strings.TrimSpace(q[len(phrase)+1:])
				changed = true
			}
		}
	}
	q = strings.Trim(q, " ?!.,")
	if q == text {
		// No leading verb matched; the whole message is the query.
		return q
	}
	return q
}

func extractFilters(text string) catalog.SearchFilters {
	var f catalog.SearchFilters

	for _, w := range splitWords(text) {
		if cat, ok := categoryVocab[w]; ok {
			f.Category = cat
			break
		}
	}

	for _, loc := range knownLocations {
		if strings.Contains(text, loc) {
			f.Location = loc
			break
		}
	}

	if m := betweenPriceRe.FindStringSubmatch(text); m != nil {
		f.MinPrice = parsePrice(m[1])
		f.MaxPrice = parsePrice(m[2])
	} else {
		if m := maxPriceRe.FindStringSubmatch(text); m != nil {
			f.MaxPrice = parsePrice(m[1])
		}
		if m := minPriceRe.FindStringSubmatch(text); m != nil {
			f.MinPrice = parsePrice(m[1])
		}
	}

	return f
}

func parsePrice(s string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0
	}
	return v
}

// hasRentalTerm reports whether the text names a rental category or
// uses rental vocabulary at all; its absence is one signal that a
// search is really a general-knowledge question.
func hasRentalTerm(text string) bool {
	for _, w := range splitWords(text) {
		if _, ok := categoryVocab[w]; ok {
			return true
		}
		switch w {
		case "rent", "rental", "rentals", "hire", "lease", "upa", "upahan", "renta":
			return true
		}
	}
	return false
}
