package commands

import (
	"context"
	"time"

	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/task"
	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/value_objects"
	sharedApplication "github.com/felixgeelhaar/focusflow/internal/shared/application"
	"github.com/felixgeelhaar/focusflow/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
)

// UpdateTaskCommand edits a task. Nil fields are left unchanged.
type UpdateTaskCommand struct {
	TaskID          uuid.UUID
	UserID          uuid.UUID
	Title           *string
	Description     *string
	Category        *string
	Quadrant        *string
	Energy          *string
	Deadline        *time.Time
	ClearDeadline   bool
	EstimateMinutes *int
}

// UpdateTaskResult reports whether anything changed.
type UpdateTaskResult struct {
	Changed bool
}

// UpdateTaskHandler handles the UpdateTaskCommand.
type UpdateTaskHandler struct {
	taskRepo   task.Repository
	outboxRepo outbox.Writer
	uow        sharedApplication.UnitOfWork
}

// NewUpdateTaskHandler creates a new UpdateTaskHandler.
func NewUpdateTaskHandler(taskRepo task.Repository, outboxRepo outbox.Writer, uow sharedApplication.UnitOfWork) *UpdateTaskHandler {
	return &UpdateTaskHandler{
		taskRepo:   taskRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the UpdateTaskCommand. An edit that changes nothing is not
// saved.
func (h *UpdateTaskHandler) Handle(ctx context.Context, cmd UpdateTaskCommand) (*UpdateTaskResult, error) {
	result := &UpdateTaskResult{}

	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		t, err := loadOwned(txCtx, h.taskRepo, cmd.TaskID, cmd.UserID)
		if err != nil {
			return err
		}

		if err := applyUpdate(t, cmd); err != nil {
			return err
		}

		if !t.FlushUpdates() {
			return nil
		}
		result.Changed = true
		return persist(txCtx, h.taskRepo, h.outboxRepo, cmd.UserID, t)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func applyUpdate(t *task.Task, cmd UpdateTaskCommand) error {
	if cmd.Title != nil {
		if err := t.SetTitle(*cmd.Title); err != nil {
			return err
		}
	}
	if cmd.Description != nil {
		t.SetDescription(*cmd.Description)
	}
	if cmd.Category != nil {
		c, err := value_objects.ParseCategory(*cmd.Category)
		if err != nil {
			return err
		}
		if err := t.SetCategory(c); err != nil {
			return err
		}
	}
	if cmd.Quadrant != nil {
		q, err := value_objects.ParseQuadrant(*cmd.Quadrant)
		if err != nil {
			return err
		}
		if err := t.SetQuadrant(q); err != nil {
			return err
		}
	}
	if cmd.Energy != nil {
		e, err := value_objects.ParseEnergyLevel(*cmd.Energy)
		if err != nil {
			return err
		}
		if err := t.SetEnergy(e); err != nil {
			return err
		}
	}
	if cmd.EstimateMinutes != nil {
		estimate, err := value_objects.EstimateFromMinutes(*cmd.EstimateMinutes)
		if err != nil {
			return err
		}
		t.SetEstimate(estimate)
	}
	switch {
	case cmd.ClearDeadline:
		t.SetDeadline(nil)
	case cmd.Deadline != nil:
		t.SetDeadline(cmd.Deadline)
	}
	return nil
}
