package task

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrOptimisticLocking = errors.New("task was modified concurrently")
)

// Repository defines the interface for task persistence.
type Repository interface {
	// Save inserts or updates a task. Updates fail with ErrOptimisticLocking
	// when the stored version no longer matches.
	Save(ctx context.Context, task *Task) error
	FindByID(ctx context.Context, id uuid.UUID) (*Task, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*Task, error)
	// FindOpen returns the user's tasks that are not done.
	FindOpen(ctx context.Context, userID uuid.UUID) ([]*Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
