package commands

import (
	"context"
	"errors"
	"time"

	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/task"
	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/value_objects"
	sharedApplication "github.com/felixgeelhaar/focusflow/internal/shared/application"
	"github.com/felixgeelhaar/focusflow/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
)

// CreateTaskCommand contains the data needed to create a task.
type CreateTaskCommand struct {
	UserID          uuid.UUID
	Title           string
	Description     string
	Category        string
	Quadrant        string
	Energy          string
	Deadline        *time.Time
	EstimateMinutes int
	ManualPriority  *int
	ParentID        *uuid.UUID
}

// CreateTaskResult contains the result of creating a task.
type CreateTaskResult struct {
	TaskID uuid.UUID
}

// CreateTaskHandler handles the CreateTaskCommand.
type CreateTaskHandler struct {
	taskRepo   task.Repository
	outboxRepo outbox.Writer
	uow        sharedApplication.UnitOfWork
}

// NewCreateTaskHandler creates a new CreateTaskHandler.
func NewCreateTaskHandler(taskRepo task.Repository, outboxRepo outbox.Writer, uow sharedApplication.UnitOfWork) *CreateTaskHandler {
	return &CreateTaskHandler{
		taskRepo:   taskRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the CreateTaskCommand. With ParentID set the new task is
// linked both ways to the parent.
func (h *CreateTaskHandler) Handle(ctx context.Context, cmd CreateTaskCommand) (*CreateTaskResult, error) {
	t, err := task.NewTask(cmd.UserID, cmd.Title)
	if err != nil {
		return nil, err
	}
	if err := applyAttributes(t, cmd); err != nil {
		return nil, err
	}

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		toSave := []*task.Task{t}

		if cmd.ParentID != nil {
			parent, err := loadOwned(txCtx, h.taskRepo, *cmd.ParentID, cmd.UserID)
			if errors.Is(err, task.ErrTaskNotFound) {
				return ErrParentNotFound
			}
			if err != nil {
				return err
			}
			if err := t.AttachToParent(parent.ID()); err != nil {
				return err
			}
			if err := parent.AddSubtask(t.ID()); err != nil {
				return err
			}
			parent.FlushUpdates()
			toSave = append(toSave, parent)
		}

		// Attributes set before the first save are part of the creation, so the
		// new task raises no TaskUpdated.
		return persist(txCtx, h.taskRepo, h.outboxRepo, cmd.UserID, toSave...)
	})
	if err != nil {
		return nil, err
	}

	return &CreateTaskResult{TaskID: t.ID()}, nil
}

func applyAttributes(t *task.Task, cmd CreateTaskCommand) error {
	t.SetDescription(cmd.Description)

	category, err := value_objects.ParseCategory(cmd.Category)
	if err != nil {
		return err
	}
	if err := t.SetCategory(category); err != nil {
		return err
	}

	quadrant, err := value_objects.ParseQuadrant(cmd.Quadrant)
	if err != nil {
		return err
	}
	if err := t.SetQuadrant(quadrant); err != nil {
		return err
	}

	energy, err := value_objects.ParseEnergyLevel(cmd.Energy)
	if err != nil {
		return err
	}
	if err := t.SetEnergy(energy); err != nil {
		return err
	}

	if cmd.EstimateMinutes != 0 {
		estimate, err := value_objects.EstimateFromMinutes(cmd.EstimateMinutes)
		if err != nil {
			return err
		}
		t.SetEstimate(estimate)
	}

	t.SetDeadline(cmd.Deadline)

	return t.SetManualPriority(cmd.ManualPriority)
}
