// Package commands holds the write side of the productivity context. Every
// handler runs in one unit of work and writes the events its aggregates raise
// to the outbox before committing.
package commands

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/task"
	sharedApplication "github.com/felixgeelhaar/focusflow/internal/shared/application"
	"github.com/felixgeelhaar/focusflow/internal/shared/domain"
	"github.com/felixgeelhaar/focusflow/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
)

// ErrParentNotFound is returned when a subtask names a parent the user does
// not own.
var ErrParentNotFound = errors.New("parent task not found")

// loadOwned returns the task when it exists and belongs to userID. Tasks of
// other users are reported as missing.
func loadOwned(ctx context.Context, repo task.Repository, id, userID uuid.UUID) (*task.Task, error) {
	t, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.UserID() != userID {
		return nil, task.ErrTaskNotFound
	}
	return t, nil
}

// persist saves tasks and records their pending events.
func persist(ctx context.Context, repo task.Repository, w outbox.Writer, userID uuid.UUID, tasks ...*task.Task) error {
	var events []domain.DomainEvent
	for _, t := range tasks {
		if err := repo.Save(ctx, t); err != nil {
			return err
		}
		events = append(events, t.DomainEvents()...)
	}

	sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(ctx, userID))
	if err := outbox.Record(ctx, w, events); err != nil {
		return err
	}

	for _, t := range tasks {
		t.ClearDomainEvents()
	}
	return nil
}
