// Package client provides the Go client for the TaskVault API.
//
// It has three layers:
//
//   - Client: a thin HTTP wrapper that speaks the server's response
//     envelope and surfaces server error codes as *APIError values.
//   - Session: an in-memory authenticated session that owns the current
//     token and account snapshot, persists the token through a TokenStore,
//     and restores it on startup.
//   - Guards: pure decision functions that translate session state into
//     allow/redirect/deny outcomes for UI routing.
//
// Thread Safety: Session methods are safe for concurrent use. Client and
// the guard functions are stateless and safe by construction.
package client
