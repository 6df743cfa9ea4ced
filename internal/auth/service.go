package auth

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Service implements the credential issuer: registration, login, and
// self-resolution. Token issuance is bound to the configured secret and TTL;
// verification (ParseToken) must use the same pairing.
type Service struct {
	users     UserRepository
	secret    string
	tokenTTL  time.Duration
	decoyHash string
}

// NewService constructs a Service from a user repository and token settings.
func NewService(users UserRepository, secret string, tokenTTL time.Duration) (*Service, error) {
	// Hashed once at startup; Login verifies against this when the email is
	// unknown, so both failure paths do comparable work and the response
	// timing does not reveal whether the address is registered.
	decoy, err := HashPassword("taskvault-decoy-credential")
	if err != nil {
		return nil, fmt.Errorf("preparing decoy hash: %w", err)
	}

	return &Service{
		users:     users,
		secret:    secret,
		tokenTTL:  tokenTTL,
		decoyHash: decoy,
	}, nil
}

// Register creates a new account with role USER and issues a token.
// The plaintext password is never stored, only its Argon2id verifier.
// A duplicate email fails with ErrEmailExists.
func (s *Service) Register(ctx context.Context, email, password, name string) (*User, string, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("hashing password: %w", err)
	}

	user := &User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         RoleUser,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := IssueToken(user, s.secret, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Login verifies credentials and issues a token. An unknown email and a
// wrong password both fail with the identical ErrInvalidCredentials; the
// caller must not be able to tell which part was wrong.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// Burn the same verification cost as the known-email path.
			_, _ = VerifyPassword(password, s.decoyHash) //nolint:errcheck // result intentionally discarded
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	match, err := VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, "", fmt.Errorf("verifying password: %w", err)
	}
	if !match {
		return nil, "", ErrInvalidCredentials
	}

	token, err := IssueToken(user, s.secret, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// ResolveSelf returns the profile for a verified subject ID.
// Fails with ErrUserNotFound if the account no longer exists (deleted
// between token issuance and use).
func (s *Service) ResolveSelf(ctx context.Context, subjectID string) (*User, error) {
	return s.users.GetByID(ctx, subjectID)
}
