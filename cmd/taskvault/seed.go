package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/isaiasfl/taskvault/internal/auth"
	"github.com/isaiasfl/taskvault/internal/infrastructure/logging"
	"github.com/isaiasfl/taskvault/internal/task"
)

// Demo credentials for classroom setups. Only created when seed.demo is
// enabled in configuration.
const (
	demoEmail    = "user@example.com"
	demoPassword = "user123"
	demoName     = "Demo User"
)

var demoTaskTitles = []string{
	"Read the getting started guide",
	"Create your first task",
	"Mark a task as completed",
}

// seedDemo creates a demo USER account with a few sample tasks. Re-running
// against a database that already has the account is a no-op.
func seedDemo(ctx context.Context, svc *auth.Service, tasks task.Repository, log *logging.Logger) error {
	user, _, err := svc.Register(ctx, demoEmail, demoPassword, demoName)
	if err != nil {
		if errors.Is(err, auth.ErrEmailExists) {
			return nil
		}
		return fmt.Errorf("creating demo user: %w", err)
	}

	for i, title := range demoTaskTitles {
		t := &task.Task{
			UserID:    user.ID,
			Title:     title,
			Completed: i == 0,
		}
		if err := tasks.Create(ctx, t); err != nil {
			return fmt.Errorf("creating demo task: %w", err)
		}
	}

	log.Info("demo account seeded", "email", demoEmail, "tasks", len(demoTaskTitles))
	return nil
}
