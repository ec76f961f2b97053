package assistant

import (
	"testing"
)

func TestClassifyKinds(t *testing.T) {
	cases := []struct {
		text string
		want IntentKind
	}{
		{"hello", IntentGreeting},
		{"Kumusta!", IntentGreeting},
		{"Good morning po", IntentGreeting},
		{"I want to book this camera", IntentBooking},
		{"show my bookings please", IntentBooking},
		{"cancel my reservation", IntentBooking},
		{"how do I list my item?", IntentListingManagement},
		{"I want to create a listing", IntentListingManagement},
		{"edit my listing", IntentListingManagement},
		{"reset my password", IntentAccount},
		{"open my wishlist", IntentAccount},
		{"sign up", IntentAccount},
		{"help", IntentHelp},
		{"paano gumagana ang RenThing?", IntentHelp},
		{"how does payment work", IntentHelp},
		{"search the web for camera maintenance tips", IntentWebSearch},
		{"Find camera rentals", IntentSearch},
		{"naghahanap ako ng drone", IntentSearch},
		{"I need a projector for Saturday", IntentSearch},
		{"magkano ang rent ng sasakyan", IntentSearch},
		{"asdfghjkl", IntentOther},
		{"", IntentOther},
		{"   \t  ", IntentOther},
	}

	for _, tc := range cases {
		got := Classify(tc.text)
		if got.Kind != tc.want {
			t.Errorf("Classify(%q).Kind = %s, want %s", tc.text, got.Kind, tc.want)
		}
	}
}

func TestClassifySpecificityOrder(t *testing.T) {
	// Booking vocabulary must win over the generic search bucket.
	got := Classify("find my bookings")
	if got.Kind != IntentBooking {
		t.Fatalf("expected booking to win over search, got %s", got.Kind)
	}

	// A greeting buried in a longer request must not shadow the request.
	got = Classify("hi, find me a camera for the weekend")
	if got.Kind != IntentSearch {
		t.Fatalf("expected search for greeting-prefixed request, got %s", got.Kind)
	}

	// Single greeting words only match on word boundaries.
	got = Classify("third hand tools")
	if got.Kind == IntentGreeting {
		t.Fatalf("'hi' inside 'third' must not classify as greeting")
	}
}

func TestClassifyDeterminism(t *testing.T) {
	for _, text := range []string{"Find camera rentals", "hello", "paano mag-book"} {
		first := Classify(text)
		second := Classify(text)
		if first != second {
			t.Errorf("Classify(%q) not deterministic: %+v vs %+v", text, first, second)
		}
	}
}

func TestClassifyExtractsQuery(t *testing.T) {
	got := Classify("Find camera rentals")
	if got.Query != "camera rentals" {
		t.Errorf("query = %q, want %q", got.Query, "camera rentals")
	}
	if got.Filters.Category != "camera" {
		t.Errorf("category = %q, want camera", got.Filters.Category)
	}

	got = Classify("looking for a car in Makati under 3000")
	if got.Filters.Category != "vehicle" {
		t.Errorf("category = %q, want vehicle", got.Filters.Category)
	}
	if got.Filters.Location != "makati" {
		t.Errorf("location = %q, want makati", got.Filters.Location)
	}
	if got.Filters.MaxPrice != 3000 {
		t.Errorf("max price = %v, want 3000", got.Filters.MaxPrice)
	}

	got = Classify("find a gown between 500 and 1,500")
	if got.Filters.MinPrice != 500 || got.Filters.MaxPrice != 1500 {
		t.Errorf("price range = %v-%v, want 500-1500", got.Filters.MinPrice, got.Filters.MaxPrice)
	}
}
