package commands

import (
	"context"

	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/task"
	sharedApplication "github.com/felixgeelhaar/focusflow/internal/shared/application"
	"github.com/felixgeelhaar/focusflow/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
)

// SetPriorityOverrideCommand pins a task's score. A nil Score clears the
// override.
type SetPriorityOverrideCommand struct {
	TaskID uuid.UUID
	UserID uuid.UUID
	Score  *int
}

// SetPriorityOverrideHandler handles the SetPriorityOverrideCommand.
type SetPriorityOverrideHandler struct {
	taskRepo   task.Repository
	outboxRepo outbox.Writer
	uow        sharedApplication.UnitOfWork
}

// NewSetPriorityOverrideHandler creates a new SetPriorityOverrideHandler.
func NewSetPriorityOverrideHandler(taskRepo task.Repository, outboxRepo outbox.Writer, uow sharedApplication.UnitOfWork) *SetPriorityOverrideHandler {
	return &SetPriorityOverrideHandler{
		taskRepo:   taskRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the SetPriorityOverrideCommand.
func (h *SetPriorityOverrideHandler) Handle(ctx context.Context, cmd SetPriorityOverrideCommand) error {
	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		t, err := loadOwned(txCtx, h.taskRepo, cmd.TaskID, cmd.UserID)
		if err != nil {
			return err
		}

		if err := t.SetManualPriority(cmd.Score); err != nil {
			return err
		}
		if len(t.DomainEvents()) == 0 {
			return nil
		}

		return persist(txCtx, h.taskRepo, h.outboxRepo, cmd.UserID, t)
	})
}
