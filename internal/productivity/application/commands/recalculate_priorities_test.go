package commands

import (
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/focusflow/internal/productivity/application/services"
	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/task"
	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/value_objects"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func fixedEngine() *services.PriorityEngine {
	return services.NewPriorityEngine(func() time.Time {
		return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	})
}

func TestRecalculatePrioritiesHandler_Handle(t *testing.T) {
	userID := uuid.New()

	t.Run("scores open tasks and replaces score records", func(t *testing.T) {
		f := newFixture(true)
		scores := new(mockScoreRepo)
		cache := new(mockScoreCache)

		urgent := existingTask(t, userID, "Urgent")
		require.NoError(t, urgent.SetQuadrant(value_objects.QuadrantUrgentImportant))
		require.NoError(t, urgent.SetEnergy(value_objects.EnergyLow))
		pinned := existingTask(t, userID, "Pinned")
		require.NoError(t, pinned.SetManualPriority(intPtr(90)))
		done := existingTask(t, userID, "Done")
		require.NoError(t, done.Complete())
		for _, tk := range []*task.Task{urgent, pinned, done} {
			tk.FlushUpdates()
			tk.ClearDomainEvents()
		}

		f.taskRepo.On("FindByUserID", f.txCtx, userID).Return([]*task.Task{urgent, pinned, done}, nil)
		f.taskRepo.On("Save", f.txCtx, urgent).Return(nil)
		f.taskRepo.On("Save", f.txCtx, pinned).Return(nil)
		scores.On("DeleteByUser", f.txCtx, userID).Return(nil)

		var saved []task.PriorityScore
		scores.On("Save", f.txCtx, mock.AnythingOfType("task.PriorityScore")).
			Run(func(args mock.Arguments) { saved = append(saved, args.Get(1).(task.PriorityScore)) }).
			Return(nil)
		f.expectEvents(task.RoutingKeyPriorityRecalculated, task.RoutingKeyPriorityRecalculated)
		cache.On("Invalidate", f.ctx, userID).Return(nil)

		handler := NewRecalculatePrioritiesHandler(f.taskRepo, scores, f.outbox, f.uow,
			fixedEngine(), services.StaticEnergy(value_objects.EnergyLow), cache)
		result, err := handler.Handle(f.ctx, RecalculatePrioritiesCommand{UserID: userID})

		require.NoError(t, err)
		assert.Equal(t, 2, result.ScoredCount)
		assert.Equal(t, 2, result.UpdatedCount)
		assert.Equal(t, value_objects.EnergyLow, result.Energy)

		// urgent: 40 + 5 (no deadline) + 20 (exact energy) + 5 = 70
		// pinned: override 90, computed 15 + 5 + 10 + 5 = 35
		assert.Equal(t, 70, *urgent.AutoPriority())
		assert.Equal(t, 35, *pinned.AutoPriority())
		assert.Nil(t, done.AutoPriority())
		assert.InDelta(t, 80.0, result.AverageScore, 0.001)

		require.Len(t, saved, 2)
		assert.Equal(t, 70, saved[0].Score)
		assert.Equal(t, "High", saved[0].Label())
		assert.Equal(t, "eisenhower=40 deadline=5 energy=20 dependency=5", saved[0].Explanation)
		assert.Equal(t, 90, saved[1].Score)
		assert.True(t, saved[1].Breakdown.Overridden)
		assert.Equal(t, value_objects.EnergyLow, saved[1].CurrentEnergy)

		f.assertExpectations(t)
		scores.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("unchanged scores are not saved again", func(t *testing.T) {
		f := newFixture(true)
		scores := new(mockScoreRepo)
		tk := existingTask(t, userID, "Stable")
		require.NoError(t, tk.RecordAutoPriority(35))
		tk.ClearDomainEvents()

		f.taskRepo.On("FindByUserID", f.txCtx, userID).Return([]*task.Task{tk}, nil)
		scores.On("DeleteByUser", f.txCtx, userID).Return(nil)
		scores.On("Save", f.txCtx, mock.Anything).Return(nil)

		handler := NewRecalculatePrioritiesHandler(f.taskRepo, scores, f.outbox, f.uow, fixedEngine(), nil, nil)
		result, err := handler.Handle(f.ctx, RecalculatePrioritiesCommand{UserID: userID})

		require.NoError(t, err)
		assert.Equal(t, 1, result.ScoredCount)
		assert.Equal(t, 0, result.UpdatedCount)
		f.taskRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		f.outbox.AssertNotCalled(t, "SaveBatch", mock.Anything, mock.Anything)
	})

	t.Run("explicit energy wins", func(t *testing.T) {
		f := newFixture(true)
		scores := new(mockScoreRepo)
		f.taskRepo.On("FindByUserID", f.txCtx, userID).Return([]*task.Task{}, nil)
		scores.On("DeleteByUser", f.txCtx, userID).Return(nil)

		handler := NewRecalculatePrioritiesHandler(f.taskRepo, scores, f.outbox, f.uow,
			fixedEngine(), services.StaticEnergy(value_objects.EnergyLow), nil)
		result, err := handler.Handle(f.ctx, RecalculatePrioritiesCommand{UserID: userID, Energy: "high"})

		require.NoError(t, err)
		assert.Equal(t, value_objects.EnergyHigh, result.Energy)
		assert.Zero(t, result.ScoredCount)
	})

	t.Run("repository failure is wrapped", func(t *testing.T) {
		f := newFixture(false)
		f.taskRepo.On("FindByUserID", f.txCtx, userID).Return(nil, errors.New("boom"))

		handler := NewRecalculatePrioritiesHandler(f.taskRepo, new(mockScoreRepo), f.outbox, f.uow, fixedEngine(), nil, nil)
		_, err := handler.Handle(f.ctx, RecalculatePrioritiesCommand{UserID: userID})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to recalc priorities")
		assert.Contains(t, err.Error(), "boom")
	})
}
