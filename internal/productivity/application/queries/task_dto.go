package queries

import (
	"time"

	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/priority"
	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/task"
	"github.com/google/uuid"
)

// TaskDTO is a data transfer object for tasks.
type TaskDTO struct {
	ID              uuid.UUID   `json:"id"`
	Title           string      `json:"title"`
	Description     string      `json:"description,omitempty"`
	Status          string      `json:"status"`
	Category        string      `json:"category,omitempty"`
	Quadrant        string      `json:"quadrant,omitempty"`
	Energy          string      `json:"energy,omitempty"`
	EstimateMinutes int         `json:"estimate_minutes,omitempty"`
	Deadline        *time.Time  `json:"deadline,omitempty"`
	ManualPriority  *int        `json:"manual_priority,omitempty"`
	AutoPriority    *int        `json:"auto_priority,omitempty"`
	Priority        *int        `json:"priority,omitempty"`
	PriorityLabel   string      `json:"priority_label,omitempty"`
	ParentID        *uuid.UUID  `json:"parent_id,omitempty"`
	SubtaskIDs      []uuid.UUID `json:"subtask_ids,omitempty"`
	CompletedAt     *time.Time  `json:"completed_at,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

func toTaskDTO(t *task.Task) TaskDTO {
	dto := TaskDTO{
		ID:              t.ID(),
		Title:           t.Title(),
		Description:     t.Description(),
		Status:          t.Status().String(),
		Category:        string(t.Category()),
		Quadrant:        string(t.Quadrant()),
		Energy:          string(t.Energy()),
		EstimateMinutes: t.Estimate().Minutes(),
		Deadline:        t.Deadline(),
		ManualPriority:  t.ManualPriority(),
		AutoPriority:    t.AutoPriority(),
		ParentID:        t.ParentID(),
		SubtaskIDs:      t.SubtaskIDs(),
		CompletedAt:     t.CompletedAt(),
		CreatedAt:       t.CreatedAt(),
		UpdatedAt:       t.UpdatedAt(),
	}
	if score, ok := t.Priority(); ok {
		dto.Priority = &score
		dto.PriorityLabel = priority.GetPriorityLabel(score)
	}
	return dto
}

func toTaskDTOs(tasks []*task.Task) []TaskDTO {
	out := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		out[i] = toTaskDTO(t)
	}
	return out
}
