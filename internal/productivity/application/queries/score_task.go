package queries

import (
	"context"

	"github.com/felixgeelhaar/focusflow/internal/productivity/application/services"
	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/task"
	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/value_objects"
	"github.com/google/uuid"
)

// ScoreTaskQuery asks for a fresh score breakdown of one task.
type ScoreTaskQuery struct {
	TaskID uuid.UUID
	UserID uuid.UUID
	Energy string // Empty means current
}

// ScoreTaskResult explains a task's score.
type ScoreTaskResult struct {
	TaskID        uuid.UUID                 `json:"task_id"`
	Title         string                    `json:"title"`
	Score         int                       `json:"score"`
	Label         string                    `json:"label"`
	Color         string                    `json:"color"`
	Eisenhower    int                       `json:"eisenhower"`
	Deadline      int                       `json:"deadline"`
	Energy        int                       `json:"energy"`
	Dependency    int                       `json:"dependency"`
	Computed      int                       `json:"computed"`
	Overridden    bool                      `json:"overridden"`
	CurrentEnergy value_objects.EnergyLevel `json:"current_energy"`
	Explanation   string                    `json:"explanation"`
}

// ScoreTaskHandler handles the ScoreTaskQuery.
type ScoreTaskHandler struct {
	taskRepo task.Repository
	engine   *services.PriorityEngine
	energy   services.EnergyProvider
}

// NewScoreTaskHandler creates a new ScoreTaskHandler.
func NewScoreTaskHandler(taskRepo task.Repository, engine *services.PriorityEngine, energy services.EnergyProvider) *ScoreTaskHandler {
	if engine == nil {
		engine = services.NewPriorityEngine(nil)
	}
	return &ScoreTaskHandler{taskRepo: taskRepo, engine: engine, energy: energy}
}

// Handle scores the task against the user's other tasks. Nothing is stored.
func (h *ScoreTaskHandler) Handle(ctx context.Context, query ScoreTaskQuery) (*ScoreTaskResult, error) {
	energy, err := services.ResolveEnergy(ctx, h.energy, query.UserID, query.Energy)
	if err != nil {
		return nil, err
	}

	t, err := findOwned(ctx, h.taskRepo, query.TaskID, query.UserID)
	if err != nil {
		return nil, err
	}
	all, err := h.taskRepo.FindByUserID(ctx, query.UserID)
	if err != nil {
		return nil, err
	}

	ev := h.engine.Evaluate(t, energy, all)
	return &ScoreTaskResult{
		TaskID:        t.ID(),
		Title:         t.Title(),
		Score:         ev.Score,
		Label:         ev.Label(),
		Color:         ev.Color(),
		Eisenhower:    ev.Computed.Eisenhower,
		Deadline:      ev.Computed.Deadline,
		Energy:        ev.Computed.Energy,
		Dependency:    ev.Computed.Dependency,
		Computed:      ev.Computed.Total,
		Overridden:    ev.Overridden,
		CurrentEnergy: energy,
		Explanation:   ev.Explanation,
	}, nil
}
