package client

// AuthDecision is the outcome of the authentication guard.
type AuthDecision int

const (
	// AuthPending means session restoration has not settled yet. Render
	// nothing and wait.
	AuthPending AuthDecision = iota

	// AuthRedirectToLogin means there is no signed-in account.
	AuthRedirectToLogin

	// AuthAllowed means the protected content may render.
	AuthAllowed
)

// RoleOutcome is the outcome of the role guard.
type RoleOutcome int

const (
	// RoleAllowed means the account holds the required role.
	RoleAllowed RoleOutcome = iota

	// RoleHidden means there is no account at all; the content should be
	// treated exactly like the auth guard's redirect case.
	RoleHidden

	// RoleDenied means the account exists but holds an insufficient role.
	RoleDenied
)

// RoleDecision carries the role guard outcome plus the roles involved, for
// rendering a useful denial message.
type RoleDecision struct {
	Outcome  RoleOutcome
	Required string
	Held     string
}

// RequireAuth decides whether protected content may render for the given
// session state. While restoration is pending no decision is made, so a
// slow startup never flashes a login redirect at a user who is actually
// signed in.
func RequireAuth(s State) AuthDecision {
	if s.Loading {
		return AuthPending
	}
	if !s.Authenticated() {
		return AuthRedirectToLogin
	}
	return AuthAllowed
}

// RequireRole decides whether role-gated content may render. It assumes
// restoration has settled; run RequireAuth first.
func RequireRole(s State, required string) RoleDecision {
	if !s.Authenticated() {
		return RoleDecision{Outcome: RoleHidden, Required: required}
	}
	if s.User.Role != required {
		return RoleDecision{Outcome: RoleDenied, Required: required, Held: s.User.Role}
	}
	return RoleDecision{Outcome: RoleAllowed, Required: required, Held: s.User.Role}
}
