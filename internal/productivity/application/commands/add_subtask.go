package commands

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/task"
	sharedApplication "github.com/felixgeelhaar/focusflow/internal/shared/application"
	"github.com/felixgeelhaar/focusflow/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
)

// AddSubtaskCommand links an existing task under a parent.
type AddSubtaskCommand struct {
	UserID   uuid.UUID
	ParentID uuid.UUID
	ChildID  uuid.UUID
}

// AddSubtaskHandler handles the AddSubtaskCommand.
type AddSubtaskHandler struct {
	taskRepo   task.Repository
	outboxRepo outbox.Writer
	uow        sharedApplication.UnitOfWork
}

// NewAddSubtaskHandler creates a new AddSubtaskHandler.
func NewAddSubtaskHandler(taskRepo task.Repository, outboxRepo outbox.Writer, uow sharedApplication.UnitOfWork) *AddSubtaskHandler {
	return &AddSubtaskHandler{
		taskRepo:   taskRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the AddSubtaskCommand. Only one level of nesting is
// tracked: the parent must not itself be a subtask of the child.
func (h *AddSubtaskHandler) Handle(ctx context.Context, cmd AddSubtaskCommand) error {
	if cmd.ParentID == cmd.ChildID {
		return task.ErrSelfReference
	}

	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		parent, err := loadOwned(txCtx, h.taskRepo, cmd.ParentID, cmd.UserID)
		if errors.Is(err, task.ErrTaskNotFound) {
			return ErrParentNotFound
		}
		if err != nil {
			return err
		}
		child, err := loadOwned(txCtx, h.taskRepo, cmd.ChildID, cmd.UserID)
		if err != nil {
			return err
		}
		if p := parent.ParentID(); p != nil && *p == child.ID() {
			return task.ErrSelfReference
		}

		toSave := []*task.Task{parent, child}

		// Moving a subtask detaches it from its previous parent.
		if previous := child.ParentID(); previous != nil && *previous != parent.ID() {
			old, err := loadOwned(txCtx, h.taskRepo, *previous, cmd.UserID)
			switch {
			case err == nil:
				old.RemoveSubtask(child.ID())
				if old.FlushUpdates() {
					toSave = append(toSave, old)
				}
			case !errors.Is(err, task.ErrTaskNotFound):
				return err
			}
		}

		if err := parent.AddSubtask(child.ID()); err != nil {
			return err
		}
		if err := child.AttachToParent(parent.ID()); err != nil {
			return err
		}
		parent.FlushUpdates()
		child.FlushUpdates()

		return persist(txCtx, h.taskRepo, h.outboxRepo, cmd.UserID, toSave...)
	})
}
