package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/focusflow/internal/productivity/application/services"
	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/task"
	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/value_objects"
	sharedApplication "github.com/felixgeelhaar/focusflow/internal/shared/application"
	"github.com/felixgeelhaar/focusflow/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
)

// RecalculatePrioritiesCommand contains the data needed to refresh scores.
type RecalculatePrioritiesCommand struct {
	UserID uuid.UUID
	// Energy overrides the user's current energy when set.
	Energy string
}

// RecalculatePrioritiesResult describes the outcome of the scan.
type RecalculatePrioritiesResult struct {
	ScoredCount  int
	UpdatedCount int
	AverageScore float64
	Energy       value_objects.EnergyLevel
}

// RecalculatePrioritiesHandler recalculates priority scores for open tasks.
type RecalculatePrioritiesHandler struct {
	taskRepo   task.Repository
	scoreRepo  task.PriorityScoreRepository
	outboxRepo outbox.Writer
	uow        sharedApplication.UnitOfWork
	engine     *services.PriorityEngine
	energy     services.EnergyProvider
	cache      services.ScoreCache
}

// NewRecalculatePrioritiesHandler creates a new handler. A nil engine uses
// the wall clock; a nil cache disables invalidation.
func NewRecalculatePrioritiesHandler(
	taskRepo task.Repository,
	scoreRepo task.PriorityScoreRepository,
	outboxRepo outbox.Writer,
	uow sharedApplication.UnitOfWork,
	engine *services.PriorityEngine,
	energy services.EnergyProvider,
	cache services.ScoreCache,
) *RecalculatePrioritiesHandler {
	if engine == nil {
		engine = services.NewPriorityEngine(nil)
	}
	if cache == nil {
		cache = services.NoopScoreCache{}
	}
	return &RecalculatePrioritiesHandler{
		taskRepo:   taskRepo,
		scoreRepo:  scoreRepo,
		outboxRepo: outboxRepo,
		uow:        uow,
		engine:     engine,
		energy:     energy,
		cache:      cache,
	}
}

// Handle scores every open task of the user against the full task list,
// caches the computed value on the task and replaces the user's score
// records.
func (h *RecalculatePrioritiesHandler) Handle(ctx context.Context, cmd RecalculatePrioritiesCommand) (*RecalculatePrioritiesResult, error) {
	energy, err := services.ResolveEnergy(ctx, h.energy, cmd.UserID, cmd.Energy)
	if err != nil {
		return nil, err
	}
	result := RecalculatePrioritiesResult{Energy: energy}

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		tasks, err := h.taskRepo.FindByUserID(txCtx, cmd.UserID)
		if err != nil {
			return err
		}

		if err := h.scoreRepo.DeleteByUser(txCtx, cmd.UserID); err != nil {
			return err
		}
		if len(tasks) == 0 {
			return nil
		}

		now := time.Now().UTC()
		evaluations := h.engine.EvaluateAll(tasks, energy)

		var changed []*task.Task
		total := 0
		for i, tk := range tasks {
			if tk.IsCompleted() {
				continue
			}
			ev := evaluations[i]

			if err := tk.RecordAutoPriority(ev.Computed.Total); err != nil {
				return err
			}
			if len(tk.DomainEvents()) > 0 {
				changed = append(changed, tk)
			}

			breakdown := ev.Computed
			breakdown.Overridden = ev.Overridden
			if err := h.scoreRepo.Save(txCtx, task.PriorityScore{
				TaskID:        tk.ID(),
				UserID:        cmd.UserID,
				Score:         ev.Score,
				Breakdown:     breakdown,
				CurrentEnergy: energy,
				Explanation:   ev.Explanation,
				UpdatedAt:     now,
			}); err != nil {
				return err
			}

			total += ev.Score
			result.ScoredCount++
		}

		if result.ScoredCount > 0 {
			result.AverageScore = float64(total) / float64(result.ScoredCount)
		}
		result.UpdatedCount = len(changed)

		return persist(txCtx, h.taskRepo, h.outboxRepo, cmd.UserID, changed...)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to recalc priorities: %w", err)
	}

	// The scores are committed; a stale cache entry expires on its own.
	_ = h.cache.Invalidate(ctx, cmd.UserID)

	return &result, nil
}
