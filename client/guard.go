package client

// DecisionKind tags what a route guard decided.
type DecisionKind int

const (
	Allow DecisionKind = iota
	ShowLoading
	RedirectLogin
	RedirectDashboard
)

// RouteDecision is the guard's verdict. RedirectTo is set for either
// redirect kind; From preserves the originally requested route so a
// login flow can bounce back to it.
type RouteDecision struct {
	Kind       DecisionKind
	RedirectTo string
	From       string
}

// Guard runs the three access checks in order: still loading, signed
// in, and role match. requiredRole may be empty for routes any signed-in
// user can see.
func Guard(state AuthState, requiredRole, from string) RouteDecision {
	if state.Loading {
		return RouteDecision{Kind: ShowLoading}
	}
	if !state.Authenticated {
		return RouteDecision{Kind: RedirectLogin, RedirectTo: "/login", From: from}
	}
	if requiredRole != "" && (state.User == nil || state.User.Role != requiredRole) {
		return RouteDecision{Kind: RedirectDashboard, RedirectTo: "/dashboard"}
	}
	return RouteDecision{Kind: Allow}
}
