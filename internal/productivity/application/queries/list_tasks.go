package queries

import (
	"context"
	"fmt"
	"sort"

	"github.com/felixgeelhaar/focusflow/internal/productivity/application/services"
	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/task"
	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/value_objects"
	"github.com/google/uuid"
)

// Sort orders accepted by ListTasksQuery.
const (
	SortByPriority = "priority"
	SortByDeadline = "deadline"
	SortByCreated  = "created"
)

// ListTasksQuery contains the parameters for listing tasks.
type ListTasksQuery struct {
	UserID           uuid.UUID
	Status           string // Empty for every open status
	Category         string
	IncludeCompleted bool
	SortBy           string // "priority" (default), "deadline", "created"
	Energy           string // Energy used for priority sorting; empty means current
	Limit            int    // 0 = no limit
}

// ListTasksHandler handles the ListTasksQuery.
type ListTasksHandler struct {
	taskRepo task.Repository
	engine   *services.PriorityEngine
	energy   services.EnergyProvider
}

// NewListTasksHandler creates a new ListTasksHandler.
func NewListTasksHandler(taskRepo task.Repository, engine *services.PriorityEngine, energy services.EnergyProvider) *ListTasksHandler {
	if engine == nil {
		engine = services.NewPriorityEngine(nil)
	}
	return &ListTasksHandler{taskRepo: taskRepo, engine: engine, energy: energy}
}

// Handle executes the ListTasksQuery.
func (h *ListTasksHandler) Handle(ctx context.Context, query ListTasksQuery) ([]TaskDTO, error) {
	var status task.Status
	if query.Status != "" {
		s, err := task.ParseStatus(query.Status)
		if err != nil {
			return nil, err
		}
		status = s
	}
	category, err := value_objects.ParseCategory(query.Category)
	if err != nil {
		return nil, err
	}

	var tasks []*task.Task
	if query.IncludeCompleted || status == task.StatusDone {
		tasks, err = h.taskRepo.FindByUserID(ctx, query.UserID)
	} else {
		tasks, err = h.taskRepo.FindOpen(ctx, query.UserID)
	}
	if err != nil {
		return nil, err
	}

	filtered := make([]*task.Task, 0, len(tasks))
	for _, t := range tasks {
		if status != "" && t.Status() != status {
			continue
		}
		if category != value_objects.CategoryNone && t.Category() != category {
			continue
		}
		filtered = append(filtered, t)
	}

	sorted, err := h.sort(ctx, filtered, query)
	if err != nil {
		return nil, err
	}

	if query.Limit > 0 && len(sorted) > query.Limit {
		sorted = sorted[:query.Limit]
	}
	return toTaskDTOs(sorted), nil
}

func (h *ListTasksHandler) sort(ctx context.Context, tasks []*task.Task, query ListTasksQuery) ([]*task.Task, error) {
	switch query.SortBy {
	case "", SortByPriority:
		energy, err := services.ResolveEnergy(ctx, h.energy, query.UserID, query.Energy)
		if err != nil {
			return nil, err
		}
		return h.engine.Rank(tasks, energy), nil

	case SortByDeadline:
		// Tasks without a deadline go last.
		sort.SliceStable(tasks, func(i, j int) bool {
			di, dj := tasks[i].Deadline(), tasks[j].Deadline()
			switch {
			case di == nil:
				return false
			case dj == nil:
				return true
			default:
				return di.Before(*dj)
			}
		})
		return tasks, nil

	case SortByCreated:
		sort.SliceStable(tasks, func(i, j int) bool {
			return tasks[i].CreatedAt().Before(tasks[j].CreatedAt())
		})
		return tasks, nil

	default:
		return nil, fmt.Errorf("unknown sort order %q", query.SortBy)
	}
}
