package queries

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/focusflow/internal/productivity/application/services"
	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/priority"
	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/task"
	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/value_objects"
	"github.com/felixgeelhaar/focusflow/pkg/observability"
	"github.com/google/uuid"
)

// ErrNoOpenTasks is returned when the user has nothing left to do.
var ErrNoOpenTasks = errors.New("no open tasks")

// NextTaskQuery asks what to work on now.
type NextTaskQuery struct {
	UserID uuid.UUID
	Energy string // Empty means current
}

// NextTaskResult is the recommendation.
type NextTaskResult struct {
	Task      TaskDTO                   `json:"task"`
	Score     int                       `json:"score"`
	Label     string                    `json:"label"`
	Color     string                    `json:"color"`
	Energy    value_objects.EnergyLevel `json:"energy"`
	FromCache bool                      `json:"from_cache"`
}

// NextTaskHandler handles the NextTaskQuery. Answers are cached per user and
// energy level until the user's tasks or energy change.
type NextTaskHandler struct {
	taskRepo task.Repository
	engine   *services.PriorityEngine
	energy   services.EnergyProvider
	cache    services.ScoreCache
	metrics  observability.Metrics
}

// NewNextTaskHandler creates a new handler. A nil cache disables caching.
func NewNextTaskHandler(taskRepo task.Repository, engine *services.PriorityEngine, energy services.EnergyProvider, cache services.ScoreCache) *NextTaskHandler {
	if engine == nil {
		engine = services.NewPriorityEngine(nil)
	}
	if cache == nil {
		cache = services.NoopScoreCache{}
	}
	return &NextTaskHandler{
		taskRepo: taskRepo,
		engine:   engine,
		energy:   energy,
		cache:    cache,
		metrics:  observability.NoopMetrics{},
	}
}

func (h *NextTaskHandler) WithMetrics(m observability.Metrics) *NextTaskHandler {
	if m != nil {
		h.metrics = m
	}
	return h
}

// Handle executes the NextTaskQuery.
func (h *NextTaskHandler) Handle(ctx context.Context, query NextTaskQuery) (*NextTaskResult, error) {
	energy, err := services.ResolveEnergy(ctx, h.energy, query.UserID, query.Energy)
	if err != nil {
		return nil, err
	}

	if result, ok := h.fromCache(ctx, query.UserID, energy); ok {
		h.metrics.Counter(observability.MetricPriorityCacheHits, 1)
		return result, nil
	}
	h.metrics.Counter(observability.MetricPriorityCacheMisses, 1)

	tasks, err := h.taskRepo.FindByUserID(ctx, query.UserID)
	if err != nil {
		return nil, err
	}

	next, ok := h.engine.Next(tasks, energy)
	if !ok {
		return nil, ErrNoOpenTasks
	}

	score, cached := next.Priority()
	if !cached {
		score = h.engine.Evaluate(next, energy, tasks).Score
	}

	// A cache write failure only costs the next lookup.
	_ = h.cache.SetNext(ctx, query.UserID, energy, services.CachedNext{TaskID: next.ID(), Score: score})

	return newNextResult(next, score, energy, false), nil
}

// fromCache returns the cached answer if the task it names is still open.
func (h *NextTaskHandler) fromCache(ctx context.Context, userID uuid.UUID, energy value_objects.EnergyLevel) (*NextTaskResult, bool) {
	hit, ok, err := h.cache.GetNext(ctx, userID, energy)
	if err != nil || !ok {
		return nil, false
	}
	t, err := findOwned(ctx, h.taskRepo, hit.TaskID, userID)
	if err != nil || t.IsCompleted() {
		return nil, false
	}
	return newNextResult(t, hit.Score, energy, true), true
}

func newNextResult(t *task.Task, score int, energy value_objects.EnergyLevel, fromCache bool) *NextTaskResult {
	return &NextTaskResult{
		Task:      toTaskDTO(t),
		Score:     score,
		Label:     priority.GetPriorityLabel(score),
		Color:     priority.GetPriorityColor(score),
		Energy:    energy,
		FromCache: fromCache,
	}
}
