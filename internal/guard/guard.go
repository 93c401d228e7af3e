// Package guard decides where the user is allowed to be. The policy is
// a pure transition function so the TUI can re-evaluate it on every
// route or session change without side effects.
package guard

// Route identifies a screen for guard purposes.
type Route string

const (
	RouteLogin     Route = "login"
	RouteSignup    Route = "signup"
	RouteHome      Route = "home"
	RouteClients   Route = "clients"
	RouteMembers   Route = "members"
	RouteRefunds   Route = "refunds"
	RouteNewRefund Route = "refunds/new"
	RouteReports   Route = "reports"
)

// publicRoutes are reachable without a session.
var publicRoutes = map[Route]bool{
	RouteLogin:  true,
	RouteSignup: true,
}

// IsPublic reports whether route requires no authentication.
func IsPublic(route Route) bool {
	return publicRoutes[route]
}

// Evaluate returns the route to redirect to, or redirect=false to stay.
// Exactly two combinations move: an authenticated user on a public
// route goes home, an unauthenticated user on a protected route goes to
// login. Re-evaluating with unchanged inputs is a no-op, since the
// destination never mismatches the same session state.
func Evaluate(route Route, authenticated bool) (target Route, redirect bool) {
	if IsPublic(route) && authenticated {
		return RouteHome, true
	}
	if !IsPublic(route) && !authenticated {
		return RouteLogin, true
	}
	return route, false
}
