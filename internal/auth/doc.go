// Package auth provides authentication and authorisation for TaskVault.
//
// It implements a two-tier role model (USER / ADMIN) with:
//   - Argon2id password hashing (OWASP 2025 recommendation)
//   - Stateless JWT access tokens (HS256, claims carry subject, email, role)
//   - A credential service: register, login, resolve-self
//   - First-boot admin seeding
//
// Tokens are self-contained: verification is pure computation over the token
// and the server secret, with no storage lookup. The trade-off is that a role
// change or account deletion does not take effect until the token expires,
// and logout is a purely client-side action; there is no server-side
// revocation list.
//
// Login failures for an unknown email and for a wrong password are
// deliberately indistinguishable (same error, same message), so the API never
// confirms whether an address is registered.
package auth
