package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequireAuth(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  AuthDecision
	}{
		{"still loading", State{Loading: true}, AuthPending},
		{"loading with user", State{Loading: true, User: &User{ID: "u"}}, AuthPending},
		{"signed out", State{}, AuthRedirectToLogin},
		{"signed in", State{User: &User{ID: "u"}}, AuthAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RequireAuth(tt.state))
		})
	}
}

func TestRequireRole(t *testing.T) {
	admin := &User{ID: "u1", Role: "ADMIN"}
	user := &User{ID: "u2", Role: "USER"}

	tests := []struct {
		name     string
		state    State
		required string
		want     RoleOutcome
	}{
		{"no account", State{}, "ADMIN", RoleHidden},
		{"insufficient role", State{User: user}, "ADMIN", RoleDenied},
		{"exact role", State{User: admin}, "ADMIN", RoleAllowed},
		{"user route as user", State{User: user}, "USER", RoleAllowed},
		{"user route as admin", State{User: admin}, "USER", RoleDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := RequireRole(tt.state, tt.required)
			assert.Equal(t, tt.want, decision.Outcome)
			assert.Equal(t, tt.required, decision.Required)
		})
	}
}

func TestRequireRoleCarriesHeldRole(t *testing.T) {
	decision := RequireRole(State{User: &User{ID: "u", Role: "USER"}}, "ADMIN")
	assert.Equal(t, RoleDenied, decision.Outcome)
	assert.Equal(t, "USER", decision.Held)
	assert.Equal(t, "ADMIN", decision.Required)
}
