package auth

import (
	"errors"
	"regexp"
	"time"
)

// emailPattern is a pragmatic format check: something@something.something.
// Storage-layer uniqueness is the real gatekeeper; this only rejects obvious
// garbage before it reaches the database.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// maxEmailLength is the maximum accepted email length.
const maxEmailLength = 254

// IsValidEmail checks if an email address meets format requirements.
func IsValidEmail(email string) bool {
	return len(email) <= maxEmailLength && emailPattern.MatchString(email)
}

// MinPasswordLength is the minimum accepted password length at registration.
const MinPasswordLength = 6

// Role represents an authorisation tier in the system.
// The set is closed: every account is exactly USER or ADMIN.
type Role string

const (
	// RoleUser is a regular account. Sees and mutates only its own tasks.
	RoleUser Role = "USER"

	// RoleAdmin additionally has access to the admin surface
	// (user listing, aggregate statistics).
	RoleAdmin Role = "ADMIN"
)

// ValidRoles is the set of valid account roles.
var ValidRoles = []Role{RoleUser, RoleAdmin}

// IsValidRole returns true if the role is a member of the closed role set.
func IsValidRole(r Role) bool {
	for _, v := range ValidRoles {
		if r == v {
			return true
		}
	}
	return false
}

// User represents a persisted account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"-"` // never serialised
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserWithTaskCount is a user joined with the number of tasks they own.
// Used by the admin listing.
type UserWithTaskCount struct {
	User
	TaskCount int `json:"task_count"`
}

// Sentinel errors for auth operations.
var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password. The two causes must stay indistinguishable on the wire.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrEmailExists  = errors.New("email already registered")
	ErrUserNotFound = errors.New("user not found")
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token has expired")
)
