// Package api implements the HTTP JSON API for TaskVault.
//
// This package provides:
//   - Auth endpoints (register, login, me) backed by the credential service
//   - Ownership-scoped task CRUD with pagination and search
//   - Admin endpoints gated on the ADMIN role
//   - Middleware stack (request ID, logging, recovery, CORS, body size
//     limit, fixed-window rate limiting, bearer-token verification, role gate)
//
// # Wire contract
//
// Every response uses one envelope:
//
//	{ "ok": true,  "data": <payload> }
//	{ "ok": false, "error": { "code": "...", "message": "...", "details": ... } }
//
// Error codes are stable, machine-readable strings (UNAUTHORIZED,
// INVALID_TOKEN, TOKEN_EXPIRED, FORBIDDEN, EMAIL_EXISTS,
// INVALID_CREDENTIALS, USER_NOT_FOUND, TASK_NOT_FOUND, VALIDATION_ERROR,
// NOT_FOUND, RATE_LIMITED, INTERNAL_ERROR).
//
// # Security
//
// The server is the sole trust boundary: any client-side route guarding is a
// UX mirror of this package's requireAuth/requireRole middleware, never a
// substitute for it. Token verification is pure computation without storage
// lookups, so the middleware cannot detect accounts deleted or role-changed
// after issuance; those tokens simply age out at expiry.
package api
