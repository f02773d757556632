package commands

import (
	"context"

	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/task"
	sharedApplication "github.com/felixgeelhaar/focusflow/internal/shared/application"
	"github.com/felixgeelhaar/focusflow/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
)

// TransitionTaskCommand moves a task to another workflow status.
type TransitionTaskCommand struct {
	TaskID uuid.UUID
	UserID uuid.UUID
	Status string
}

// TransitionTaskResult contains the status before and after the move.
type TransitionTaskResult struct {
	From task.Status
	To   task.Status
}

// TransitionTaskHandler handles the TransitionTaskCommand.
type TransitionTaskHandler struct {
	taskRepo   task.Repository
	outboxRepo outbox.Writer
	uow        sharedApplication.UnitOfWork
}

// NewTransitionTaskHandler creates a new TransitionTaskHandler.
func NewTransitionTaskHandler(taskRepo task.Repository, outboxRepo outbox.Writer, uow sharedApplication.UnitOfWork) *TransitionTaskHandler {
	return &TransitionTaskHandler{
		taskRepo:   taskRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the TransitionTaskCommand.
func (h *TransitionTaskHandler) Handle(ctx context.Context, cmd TransitionTaskCommand) (*TransitionTaskResult, error) {
	to, err := task.ParseStatus(cmd.Status)
	if err != nil {
		return nil, err
	}

	var result *TransitionTaskResult
	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		t, err := loadOwned(txCtx, h.taskRepo, cmd.TaskID, cmd.UserID)
		if err != nil {
			return err
		}

		from := t.Status()
		if err := t.TransitionTo(to); err != nil {
			return err
		}
		result = &TransitionTaskResult{From: from, To: to}

		if from == to {
			return nil
		}
		return persist(txCtx, h.taskRepo, h.outboxRepo, cmd.UserID, t)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
