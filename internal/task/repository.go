package task

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for task persistence.
// All single-task operations take the owner's user ID and scope to it.
type Repository interface {
	List(ctx context.Context, userID string, q ListQuery) ([]Task, int, error)
	GetByID(ctx context.Context, id, userID string) (*Task, error)
	Create(ctx context.Context, t *Task) error
	Update(ctx context.Context, t *Task) error
	Delete(ctx context.Context, id, userID string) error
	CountAll(ctx context.Context) (Counts, error)
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewRepository creates a new SQLite-backed task repository.
func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const taskColumns = "id, user_id, title, completed, created_at, updated_at"

// List returns one page of the user's tasks, newest first, plus the total
// number of matches. Search filters on a case-insensitive title substring
// (SQLite LIKE is case-insensitive for ASCII).
func (r *SQLiteRepository) List(ctx context.Context, userID string, q ListQuery) ([]Task, int, error) {
	q = q.Normalise()

	where := "WHERE user_id = ?"
	args := []any{userID}
	if q.Search != "" {
		where += " AND title LIKE ?"
		args = append(args, "%"+q.Search+"%")
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM tasks "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting tasks: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+taskColumns+" FROM tasks "+where+" ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?",
		append(args, q.Limit, q.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	tasks := []Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, 0, err
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating tasks: %w", err)
	}

	return tasks, total, nil
}

// GetByID retrieves a task by ID, scoped to its owner.
func (r *SQLiteRepository) GetByID(ctx context.Context, id, userID string) (*Task, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE id = ? AND user_id = ?", id, userID)
	t, err := scanTaskRow(row)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Create inserts a new task. The ID is generated if empty.
func (r *SQLiteRepository) Create(ctx context.Context, t *Task) error {
	if t.ID == "" {
		t.ID = "tsk-" + uuid.NewString()[:8]
	}

	now := time.Now().UTC().Format(time.RFC3339)
	t.CreatedAt, _ = time.Parse(time.RFC3339, now) //nolint:errcheck // format is controlled
	t.UpdatedAt = t.CreatedAt

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (id, user_id, title, completed, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.Title, boolToInt(t.Completed), now, now,
	)
	if err != nil {
		return fmt.Errorf("creating task: %w", err)
	}

	return nil
}

// Update modifies a task's mutable fields (title, completed), scoped to its
// owner. Updating a missing or foreign task fails with ErrTaskNotFound.
func (r *SQLiteRepository) Update(ctx context.Context, t *Task) error {
	now := time.Now().UTC().Format(time.RFC3339)
	t.UpdatedAt, _ = time.Parse(time.RFC3339, now) //nolint:errcheck // format is controlled

	result, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET title = ?, completed = ?, updated_at = ? WHERE id = ? AND user_id = ?`,
		t.Title, boolToInt(t.Completed), now, t.ID, t.UserID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if rows == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// Delete removes a task, scoped to its owner.
func (r *SQLiteRepository) Delete(ctx context.Context, id, userID string) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM tasks WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if rows == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// CountAll returns system-wide task counts for the admin stats endpoint.
func (r *SQLiteRepository) CountAll(ctx context.Context) (Counts, error) {
	var c Counts
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(completed), 0) FROM tasks").Scan(&c.Total, &c.Completed)
	if err != nil {
		return Counts{}, fmt.Errorf("counting tasks: %w", err)
	}
	return c, nil
}

// scanner is an interface for sql.Row and sql.Rows Scan methods.
type scanner interface {
	Scan(dest ...any) error
}

func scanTask(rows *sql.Rows) (*Task, error) {
	return scanTaskFrom(rows)
}

func scanTaskRow(row *sql.Row) (*Task, error) {
	return scanTaskFrom(row)
}

func scanTaskFrom(s scanner) (*Task, error) {
	var t Task
	var completed int
	var createdAt, updatedAt string

	err := s.Scan(&t.ID, &t.UserID, &t.Title, &completed, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	t.Completed = completed != 0
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // format is controlled
	t.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt) //nolint:errcheck // format is controlled

	return &t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
