package task

import (
	"time"

	"github.com/felixgeelhaar/focusflow/internal/shared/domain"
	"github.com/google/uuid"
)

const (
	AggregateType = "Task"

	RoutingKeyCreated              = "core.task.created"
	RoutingKeyUpdated              = "core.task.updated"
	RoutingKeyStatusChanged        = "core.task.status_changed"
	RoutingKeyCompleted            = "core.task.completed"
	RoutingKeyPriorityOverridden   = "core.task.priority_overridden"
	RoutingKeyPriorityRecalculated = "core.task.priority_recalculated"
)

// TaskCreated is emitted when a new task is created.
type TaskCreated struct {
	domain.BaseEvent
	Title string `json:"title"`
}

func NewTaskCreated(taskID uuid.UUID, title string) *TaskCreated {
	return &TaskCreated{
		BaseEvent: domain.NewBaseEvent(taskID, AggregateType, RoutingKeyCreated),
		Title:     title,
	}
}

// TaskUpdated lists the fields an edit changed.
type TaskUpdated struct {
	domain.BaseEvent
	Fields []string `json:"fields"`
}

func NewTaskUpdated(taskID uuid.UUID, fields []string) *TaskUpdated {
	return &TaskUpdated{
		BaseEvent: domain.NewBaseEvent(taskID, AggregateType, RoutingKeyUpdated),
		Fields:    fields,
	}
}

// TaskStatusChanged is emitted for every workflow move.
type TaskStatusChanged struct {
	domain.BaseEvent
	From string `json:"from"`
	To   string `json:"to"`
}

func NewTaskStatusChanged(taskID uuid.UUID, from, to Status) *TaskStatusChanged {
	return &TaskStatusChanged{
		BaseEvent: domain.NewBaseEvent(taskID, AggregateType, RoutingKeyStatusChanged),
		From:      from.String(),
		To:        to.String(),
	}
}

// TaskCompleted is emitted alongside TaskStatusChanged when a task reaches done.
type TaskCompleted struct {
	domain.BaseEvent
	CompletedAt time.Time `json:"completed_at"`
}

func NewTaskCompleted(taskID uuid.UUID, completedAt time.Time) *TaskCompleted {
	return &TaskCompleted{
		BaseEvent:   domain.NewBaseEvent(taskID, AggregateType, RoutingKeyCompleted),
		CompletedAt: completedAt,
	}
}

// PriorityOverridden carries the new manual score; nil means cleared.
type PriorityOverridden struct {
	domain.BaseEvent
	Override *int `json:"override"`
}

func NewPriorityOverridden(taskID uuid.UUID, override *int) *PriorityOverridden {
	return &PriorityOverridden{
		BaseEvent: domain.NewBaseEvent(taskID, AggregateType, RoutingKeyPriorityOverridden),
		Override:  override,
	}
}

// PriorityRecalculated is emitted when the cached score changes.
type PriorityRecalculated struct {
	domain.BaseEvent
	Score    int  `json:"score"`
	Previous *int `json:"previous,omitempty"`
}

func NewPriorityRecalculated(taskID uuid.UUID, score int, previous *int) *PriorityRecalculated {
	return &PriorityRecalculated{
		BaseEvent: domain.NewBaseEvent(taskID, AggregateType, RoutingKeyPriorityRecalculated),
		Score:     score,
		Previous:  previous,
	}
}
