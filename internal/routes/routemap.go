package routes

// RouteType distinguishes what a route map entry points at
type RouteType string

const (
	TypePage      RouteType = "page"
	TypeAPI       RouteType = "api"
	TypeDirectory RouteType = "directory"
)

// Route is one entry in the static route map. The map is built once
// at process start and read-only afterwards, so it may be shared
// across requests without locking.
type Route struct {
	Path         string    `json:"path"`
	Description  string    `json:"description"`
	Type         RouteType `json:"type"`
	AuthRequired bool      `json:"auth_required,omitempty"`
	Children     []Route   `json:"children,omitempty"`
}

// DefaultRouteMap returns the RenThing web app's navigable routes.
func DefaultRouteMap() []Route {
	return []Route{
		{Path: "/", Description: "Home page", Type: TypePage},
		{Path: "/browse", Description: "Browse all listings", Type: TypePage},
		{Path: "/login", Description: "Sign in", Type: TypePage},
		{Path: "/register", Description: "Create an account", Type: TypePage},
		{Path: "/profile", Description: "Your profile", Type: TypePage, AuthRequired: true},
		{Path: "/wishlist", Description: "Saved listings", Type: TypePage, AuthRequired: true},
		{Path: "/bookings", Description: "Your bookings", Type: TypePage, AuthRequired: true},
		{Path: "/chat", Description: "Messages", Type: TypePage, AuthRequired: true},
		{Path: "/list-item", Description: "List an item for rent", Type: TypePage, AuthRequired: true},
		{
			Path:        "/help",
			Description: "Help center",
			Type:        TypeDirectory,
			Children: []Route{
				{Path: "/help/faq", Description: "Frequently asked questions", Type: TypePage},
				{Path: "/help/how-to-rent", Description: "Renting walkthrough", Type: TypePage},
				{Path: "/help/how-to-list", Description: "Listing walkthrough", Type: TypePage},
				{Path: "/help/payments", Description: "Payment options and fees", Type: TypePage},
				{Path: "/help/safety-guide", Description: "Safety guide", Type: TypePage},
				{Path: "/help/contact", Description: "Contact support", Type: TypePage},
			},
		},
	}
}

// flatten walks the route tree into a path → route lookup table
func flatten(tree []Route, into map[string]Route) {
	for _, r := range tree {
		into[r.Path] = r
		if len(r.Children) > 0 {
			flatten(r.Children, into)
		}
	}
}
