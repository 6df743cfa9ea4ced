package api

import (
	"net/http"
)

// adminUserResponse is a user row in the admin listing, including how many
// tasks the account owns.
type adminUserResponse struct {
	userResponse
	TaskCount int `json:"task_count"`
}

// statsResponse is the aggregate view of the system for the admin dashboard.
type statsResponse struct {
	TotalUsers     int `json:"total_users"`
	TotalTasks     int `json:"total_tasks"`
	CompletedTasks int `json:"completed_tasks"`
	PendingTasks   int `json:"pending_tasks"`
}

// handleListUsers returns every account with its task count.
//
// GET /api/admin/users
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.ListWithTaskCounts(r.Context())
	if err != nil {
		s.logger.Error("listing users failed", "error", err)
		s.writeInternalError(w, err.Error())
		return
	}

	out := make([]adminUserResponse, 0, len(users))
	for i := range users {
		out = append(out, adminUserResponse{
			userResponse: toUserResponse(&users[i].User),
			TaskCount:    users[i].TaskCount,
		})
	}

	writeSuccess(w, http.StatusOK, out)
}

// handleStats returns aggregate user and task counts.
//
// GET /api/admin/stats
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	userCount, err := s.users.Count(r.Context())
	if err != nil {
		s.logger.Error("counting users failed", "error", err)
		s.writeInternalError(w, err.Error())
		return
	}

	counts, err := s.tasks.CountAll(r.Context())
	if err != nil {
		s.logger.Error("counting tasks failed", "error", err)
		s.writeInternalError(w, err.Error())
		return
	}

	writeSuccess(w, http.StatusOK, statsResponse{
		TotalUsers:     userCount,
		TotalTasks:     counts.Total,
		CompletedTasks: counts.Completed,
		PendingTasks:   counts.Total - counts.Completed,
	})
}
