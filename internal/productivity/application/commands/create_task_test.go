package commands

import (
	"context"
	"testing"
	"time"

	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/task"
	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/value_objects"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateTaskHandler_Handle(t *testing.T) {
	userID := uuid.New()

	t.Run("successfully creates task with minimal fields", func(t *testing.T) {
		f := newFixture(true)
		f.taskRepo.On("Save", f.txCtx, mock.AnythingOfType("*task.Task")).Return(nil)
		f.expectEvents(task.RoutingKeyCreated)

		handler := NewCreateTaskHandler(f.taskRepo, f.outbox, f.uow)
		result, err := handler.Handle(f.ctx, CreateTaskCommand{UserID: userID, Title: "Test task"})

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, result.TaskID)
		f.assertExpectations(t)
	})

	t.Run("successfully creates task with all fields", func(t *testing.T) {
		f := newFixture(true)
		var saved *task.Task
		f.taskRepo.On("Save", f.txCtx, mock.AnythingOfType("*task.Task")).
			Run(func(args mock.Arguments) { saved = args.Get(1).(*task.Task) }).
			Return(nil)
		f.expectEvents(task.RoutingKeyCreated, task.RoutingKeyPriorityOverridden)

		due := time.Now().Add(48 * time.Hour)
		handler := NewCreateTaskHandler(f.taskRepo, f.outbox, f.uow)
		_, err := handler.Handle(f.ctx, CreateTaskCommand{
			UserID:          userID,
			Title:           "Prepare sermon",
			Description:     "Notes for Sunday",
			Category:        "ministry",
			Quadrant:        "q2",
			Energy:          "high",
			Deadline:        &due,
			EstimateMinutes: 90,
			ManualPriority:  intPtr(80),
		})

		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, value_objects.CategoryMinistry, saved.Category())
		assert.Equal(t, value_objects.QuadrantImportantNotUrgent, saved.Quadrant())
		assert.Equal(t, value_objects.EnergyHigh, saved.Energy())
		assert.Equal(t, 90, saved.Estimate().Minutes())
		assert.Equal(t, 80, *saved.ManualPriority())
		assert.Empty(t, saved.DomainEvents())
		f.assertExpectations(t)
	})

	t.Run("links a subtask to its parent", func(t *testing.T) {
		f := newFixture(true)
		parent, err := task.NewTask(userID, "Parent")
		require.NoError(t, err)
		parent.ClearDomainEvents()

		f.taskRepo.On("FindByID", f.txCtx, parent.ID()).Return(parent, nil)
		f.taskRepo.On("Save", f.txCtx, mock.AnythingOfType("*task.Task")).Return(nil).Twice()
		f.expectEvents(task.RoutingKeyCreated, task.RoutingKeyUpdated)

		handler := NewCreateTaskHandler(f.taskRepo, f.outbox, f.uow)
		parentID := parent.ID()
		result, err := handler.Handle(f.ctx, CreateTaskCommand{UserID: userID, Title: "Child", ParentID: &parentID})

		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{result.TaskID}, parent.SubtaskIDs())
		f.assertExpectations(t)
	})

	t.Run("parent of another user is not found", func(t *testing.T) {
		f := newFixture(false)
		parent, err := task.NewTask(uuid.New(), "Someone else's")
		require.NoError(t, err)
		f.taskRepo.On("FindByID", f.txCtx, parent.ID()).Return(parent, nil)

		handler := NewCreateTaskHandler(f.taskRepo, f.outbox, f.uow)
		parentID := parent.ID()
		_, err = handler.Handle(f.ctx, CreateTaskCommand{UserID: userID, Title: "Child", ParentID: &parentID})

		assert.ErrorIs(t, err, ErrParentNotFound)
		f.taskRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("validation happens before the transaction", func(t *testing.T) {
		uow := new(mockUnitOfWork)
		handler := NewCreateTaskHandler(new(mockTaskRepo), new(mockOutbox), uow)

		tests := []struct {
			name string
			cmd  CreateTaskCommand
			want error
		}{
			{"empty title", CreateTaskCommand{UserID: userID}, task.ErrEmptyTitle},
			{"bad category", CreateTaskCommand{UserID: userID, Title: "x", Category: "hobby"}, value_objects.ErrInvalidCategory},
			{"bad quadrant", CreateTaskCommand{UserID: userID, Title: "x", Quadrant: "q5"}, value_objects.ErrInvalidQuadrant},
			{"bad energy", CreateTaskCommand{UserID: userID, Title: "x", Energy: "max"}, value_objects.ErrInvalidEnergyLevel},
			{"bad estimate", CreateTaskCommand{UserID: userID, Title: "x", EstimateMinutes: -5}, value_objects.ErrNegativeEstimate},
			{"bad override", CreateTaskCommand{UserID: userID, Title: "x", ManualPriority: intPtr(150)}, task.ErrInvalidOverride},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := handler.Handle(context.Background(), tt.cmd)
				assert.ErrorIs(t, err, tt.want)
			})
		}
		uow.AssertNotCalled(t, "Begin", mock.Anything)
	})
}
