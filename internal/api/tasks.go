package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/isaiasfl/taskvault/internal/task"
)

// maxTitleLength caps task titles. Matches the storage column intent rather
// than any hard SQLite limit.
const maxTitleLength = 500

// paginationMeta describes the page window of a task listing.
type paginationMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

type taskListResponse struct {
	Tasks      []task.Task    `json:"tasks"`
	Pagination paginationMeta `json:"pagination"`
}

type createTaskRequest struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// updateTaskRequest uses pointers so absent fields are left untouched.
type updateTaskRequest struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

// handleListTasks returns the caller's tasks, newest first, with pagination
// and optional title search.
//
// GET /api/tasks?page=&limit=&search=
func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, CodeUnauthorized, "missing bearer token")
		return
	}

	q := task.ListQuery{
		Page:   queryInt(r, "page", 1),
		Limit:  queryInt(r, "limit", task.DefaultLimit),
		Search: strings.TrimSpace(r.URL.Query().Get("search")),
	}.Normalise()

	tasks, total, err := s.tasks.List(r.Context(), claims.Subject, q)
	if err != nil {
		s.logger.Error("listing tasks failed", "error", err)
		s.writeInternalError(w, err.Error())
		return
	}

	totalPages := (total + q.Limit - 1) / q.Limit
	if totalPages < 1 {
		totalPages = 1
	}

	writeSuccess(w, http.StatusOK, taskListResponse{
		Tasks: tasks,
		Pagination: paginationMeta{
			Page:       q.Page,
			Limit:      q.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	})
}

// handleCreateTask creates a task owned by the caller.
//
// POST /api/tasks
func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, CodeUnauthorized, "missing bearer token")
		return
	}

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "invalid request body", nil)
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || len(req.Title) > maxTitleLength {
		writeValidationError(w, "title is required and must be at most 500 characters", nil)
		return
	}

	t := &task.Task{
		UserID:    claims.Subject,
		Title:     req.Title,
		Completed: req.Completed,
	}
	if err := s.tasks.Create(r.Context(), t); err != nil {
		s.logger.Error("creating task failed", "error", err)
		s.writeInternalError(w, err.Error())
		return
	}

	writeSuccess(w, http.StatusCreated, t)
}

// handleGetTask returns a single task. Tasks owned by other users are
// reported as missing, not forbidden.
//
// GET /api/tasks/{id}
func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, CodeUnauthorized, "missing bearer token")
		return
	}

	t, err := s.tasks.GetByID(r.Context(), chi.URLParam(r, "id"), claims.Subject)
	if err != nil {
		s.taskError(w, err, "fetching task failed")
		return
	}

	writeSuccess(w, http.StatusOK, t)
}

// handleUpdateTask applies a partial update to a task owned by the caller.
//
// PUT /api/tasks/{id}
func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, CodeUnauthorized, "missing bearer token")
		return
	}

	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeValidationError(w, "invalid request body", nil)
		return
	}
	if req.Title == nil && req.Completed == nil {
		writeValidationError(w, "at least one of title or completed is required", nil)
		return
	}

	t, err := s.tasks.GetByID(r.Context(), chi.URLParam(r, "id"), claims.Subject)
	if err != nil {
		s.taskError(w, err, "fetching task failed")
		return
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" || len(title) > maxTitleLength {
			writeValidationError(w, "title must be non-empty and at most 500 characters", nil)
			return
		}
		t.Title = title
	}
	if req.Completed != nil {
		t.Completed = *req.Completed
	}

	if err := s.tasks.Update(r.Context(), t); err != nil {
		s.taskError(w, err, "updating task failed")
		return
	}

	writeSuccess(w, http.StatusOK, t)
}

// handleDeleteTask removes a task owned by the caller.
//
// DELETE /api/tasks/{id}
func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, CodeUnauthorized, "missing bearer token")
		return
	}

	if err := s.tasks.Delete(r.Context(), chi.URLParam(r, "id"), claims.Subject); err != nil {
		s.taskError(w, err, "deleting task failed")
		return
	}

	writeSuccess(w, http.StatusOK, map[string]string{"message": "task deleted"})
}

// taskError maps repository errors to wire responses.
func (s *Server) taskError(w http.ResponseWriter, err error, logMsg string) {
	if errors.Is(err, task.ErrTaskNotFound) {
		writeError(w, http.StatusNotFound, CodeTaskNotFound, "task not found")
		return
	}
	s.logger.Error(logMsg, "error", err)
	s.writeInternalError(w, err.Error())
}

// queryInt parses an integer query parameter, falling back to def when the
// parameter is absent or malformed.
func queryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
