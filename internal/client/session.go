package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrSuperseded is returned by Login and Register when a logout happened
// while the call was in flight. The result was discarded and the session
// remains signed out.
var ErrSuperseded = errors.New("session superseded by logout")

// API is the server surface the session depends on. *Client satisfies it.
type API interface {
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Register(ctx context.Context, email, password, name string) (*AuthResult, error)
	Me(ctx context.Context, token string) (*User, error)
}

// State is an immutable snapshot of the session for consumers.
//
// Loading is true from construction until the first Restore completes, so
// consumers can hold rendering decisions until persisted-token restoration
// has settled.
type State struct {
	User    *User
	Loading bool
	Err     string
}

// Authenticated reports whether the snapshot carries a signed-in account.
func (s State) Authenticated() bool {
	return s.User != nil
}

// Session owns the current token and account for one client instance.
//
// Sign-in calls are tagged with a generation counter captured before the
// network round-trip. Logout bumps the generation, so a sign-in result
// arriving after a logout is detected as stale and discarded instead of
// resurrecting the session.
type Session struct {
	mu         sync.Mutex
	api        API
	store      TokenStore
	token      string
	user       *User
	loading    bool
	errMsg     string
	generation uint64
	restored   bool
}

// NewSession creates a session in the loading state. Call Restore to settle
// it from the token store.
func NewSession(api API, store TokenStore) *Session {
	return &Session{
		api:     api,
		store:   store,
		loading: true,
	}
}

// Restore loads a persisted token and validates it against the server.
//
// A missing token, an expired token, or any server rejection settles the
// session as signed out without error: restoration failure is a normal
// startup condition, not a fault. Loading becomes false exactly once,
// whatever the outcome, and repeated calls after the first settlement are
// no-ops.
func (s *Session) Restore(ctx context.Context) error {
	s.mu.Lock()
	if s.restored {
		s.mu.Unlock()
		return nil
	}
	gen := s.generation
	s.mu.Unlock()

	token, err := s.store.Load()
	if err != nil {
		s.settleRestore(gen, "", nil)
		return fmt.Errorf("loading stored token: %w", err)
	}
	if token == "" {
		s.settleRestore(gen, "", nil)
		return nil
	}

	user, err := s.api.Me(ctx, token)
	if err != nil {
		// Stale or rejected token: clear it and settle signed out.
		//nolint:errcheck // best effort, the in-memory state is authoritative
		s.store.Clear()
		s.settleRestore(gen, "", nil)
		return nil
	}

	s.settleRestore(gen, token, user)
	return nil
}

// settleRestore applies a restoration outcome. A result from before a
// logout only clears the loading flag; it never installs a stale identity.
func (s *Session) settleRestore(gen uint64, token string, user *User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = false
	s.restored = true
	if gen != s.generation {
		return
	}
	s.token = token
	s.user = user
}

// Login signs in with credentials. On success the token is persisted and
// the session holds the returned account.
//
// If Logout ran while the request was in flight, the result is discarded
// and ErrSuperseded is returned.
func (s *Session) Login(ctx context.Context, email, password string) error {
	s.mu.Lock()
	gen := s.generation
	s.errMsg = ""
	s.mu.Unlock()

	result, err := s.api.Login(ctx, email, password)
	return s.settleSignIn(gen, result, err)
}

// Register creates an account and signs in with it. Same staleness rules
// as Login.
func (s *Session) Register(ctx context.Context, email, password, name string) error {
	s.mu.Lock()
	gen := s.generation
	s.errMsg = ""
	s.mu.Unlock()

	result, err := s.api.Register(ctx, email, password, name)
	return s.settleSignIn(gen, result, err)
}

// settleSignIn applies a sign-in result under the generation check.
func (s *Session) settleSignIn(gen uint64, result *AuthResult, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		// Logged out while the request was in flight. Whatever came
		// back, signed out wins.
		return ErrSuperseded
	}

	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			s.errMsg = apiErr.Message
		} else {
			s.errMsg = "request failed"
		}
		return err
	}

	s.token = result.Token
	s.user = &result.User
	s.errMsg = ""

	if saveErr := s.store.Save(result.Token); saveErr != nil {
		// The session is live either way; persistence is best effort.
		return fmt.Errorf("persisting token: %w", saveErr)
	}
	return nil
}

// Logout signs out immediately and invalidates any in-flight sign-in.
// It is synchronous and idempotent.
func (s *Session) Logout() error {
	s.mu.Lock()
	s.generation++
	s.token = ""
	s.user = nil
	s.errMsg = ""
	s.mu.Unlock()

	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("clearing stored token: %w", err)
	}
	return nil
}

// ClearError discards the last sign-in error message.
func (s *Session) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = ""
}

// Snapshot returns the current session state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	var user *User
	if s.user != nil {
		u := *s.user
		user = &u
	}
	return State{
		User:    user,
		Loading: s.loading,
		Err:     s.errMsg,
	}
}

// Token returns the current bearer token, empty when signed out.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}
