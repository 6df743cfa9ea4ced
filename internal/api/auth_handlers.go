package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/isaiasfl/taskvault/internal/auth"
)

// userResponse is the wire representation of a user account. The password
// hash never leaves the server.
type userResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toUserResponse(u *auth.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse carries the account and its freshly issued token.
type authResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

// validateCredentials checks the register payload and returns field-level
// problems. An empty slice means the payload is acceptable.
func validateCredentials(email, password string) []string {
	var problems []string
	if !auth.IsValidEmail(email) {
		problems = append(problems, "email must be a valid address")
	}
	if len(password) < auth.MinPasswordLength {
		problems = append(problems, fmt.Sprintf("password must be at least %d characters", auth.MinPasswordLength))
	}
	return problems
}

// handleRegister creates a new account and returns it with a signed token.
//
// POST /api/auth/register
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "invalid request body", nil)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)

	if problems := validateCredentials(req.Email, req.Password); len(problems) > 0 {
		writeValidationError(w, "invalid registration payload", problems)
		return
	}

	user, token, err := s.svc.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, auth.ErrEmailExists) {
			writeError(w, http.StatusConflict, CodeEmailExists, "email already registered")
			return
		}
		s.logger.Error("register failed", "error", err)
		s.writeInternalError(w, err.Error())
		return
	}

	writeSuccess(w, http.StatusCreated, authResponse{
		User:  toUserResponse(user),
		Token: token,
	})
}

// handleLogin verifies credentials and returns the account with a signed
// token. An unknown email and a wrong password produce byte-identical
// responses.
//
// POST /api/auth/login
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "invalid request body", nil)
		return
	}

	if req.Email == "" || req.Password == "" {
		writeValidationError(w, "email and password are required", nil)
		return
	}

	user, token, err := s.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, CodeInvalidCredentials, "invalid credentials")
			return
		}
		s.logger.Error("login failed", "error", err)
		s.writeInternalError(w, err.Error())
		return
	}

	writeSuccess(w, http.StatusOK, authResponse{
		User:  toUserResponse(user),
		Token: token,
	})
}

// handleMe returns the current state of the authenticated account, read
// fresh from storage rather than echoed from the token.
//
// GET /api/auth/me
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, CodeUnauthorized, "missing bearer token")
		return
	}

	user, err := s.svc.ResolveSelf(r.Context(), claims.Subject)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, CodeUserNotFound, "user not found")
			return
		}
		s.logger.Error("resolving current user failed", "error", err)
		s.writeInternalError(w, err.Error())
		return
	}

	writeSuccess(w, http.StatusOK, toUserResponse(user))
}
