package api

import (
	"encoding/json"
	"net/http"
)

// errorBody is the error half of the response envelope.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// envelope is the stable response wrapper for every endpoint.
type envelope struct {
	OK    bool       `json:"ok"`
	Data  any        `json:"data,omitempty"`
	Error *errorBody `json:"error,omitempty"`
}

// Stable error codes surfaced across the wire.
const (
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeTokenExpired       = "TOKEN_EXPIRED"
	CodeForbidden          = "FORBIDDEN"
	CodeEmailExists        = "EMAIL_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeTaskNotFound       = "TASK_NOT_FOUND"
	CodeValidationError    = "VALIDATION_ERROR"
	CodeNotFound           = "NOT_FOUND"
	CodeRateLimited        = "RATE_LIMITED"
	CodeInternal           = "INTERNAL_ERROR"
)

// writeJSON writes a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // Best-effort write to response; connection may be closed
	json.NewEncoder(w).Encode(v)
}

// writeSuccess writes a success envelope.
func writeSuccess(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{OK: true, Data: data})
}

// writeError writes an error envelope.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, envelope{OK: false, Error: &errorBody{
		Code:    code,
		Message: message,
	}})
}

// writeErrorDetails writes an error envelope with a details payload
// (field-level validation information).
func writeErrorDetails(w http.ResponseWriter, status int, code, message string, details any) {
	writeJSON(w, status, envelope{OK: false, Error: &errorBody{
		Code:    code,
		Message: message,
		Details: details,
	}})
}

// writeValidationError writes a 400 validation error response.
func writeValidationError(w http.ResponseWriter, message string, details any) {
	writeErrorDetails(w, http.StatusBadRequest, CodeValidationError, message, details)
}

// writeInternalError writes a 500 error response. The detail message is only
// exposed in development mode; production gets a generic message.
func (s *Server) writeInternalError(w http.ResponseWriter, detail string) {
	message := "internal server error"
	if s.cfg.IsDevelopment() && detail != "" {
		message = detail
	}
	writeError(w, http.StatusInternalServerError, CodeInternal, message)
}
