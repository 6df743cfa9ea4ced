// Package task provides the ownership-scoped task resource.
//
// Every query is filtered by the owning user: a task belonging to someone
// else is indistinguishable from a task that does not exist. Admin-facing
// aggregate counts are the only cross-user reads.
package task

import (
	"errors"
	"time"
)

// Task represents a single to-do item owned by a user.
type Task struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListQuery is the paging/search request for a task listing.
type ListQuery struct {
	// Page is 1-based. Values below 1 are treated as 1.
	Page int

	// Limit is the page size. Values below 1 fall back to DefaultLimit.
	Limit int

	// Search is a case-insensitive title substring filter. Empty matches all.
	Search string
}

// DefaultLimit is the page size when none is requested.
const DefaultLimit = 10

// MaxLimit caps the page size regardless of what was requested.
const MaxLimit = 100

// Normalise clamps the query to sane values.
func (q ListQuery) Normalise() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	return q
}

// Offset returns the row offset for the normalised query.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Counts holds aggregate task statistics for the admin surface.
type Counts struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

// ErrTaskNotFound is returned when a task does not exist for the requesting
// owner, including when it exists but belongs to someone else.
var ErrTaskNotFound = errors.New("task not found")
