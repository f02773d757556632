package task

import (
	"context"
	"time"

	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/priority"
	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/value_objects"
	"github.com/google/uuid"
)

// PriorityScore is the last computed score for a task, kept with the
// breakdown and the energy it was computed against.
type PriorityScore struct {
	TaskID        uuid.UUID
	UserID        uuid.UUID
	Score         int
	Breakdown     priority.Breakdown
	CurrentEnergy value_objects.EnergyLevel
	Explanation   string
	UpdatedAt     time.Time
}

// Label names the score band, e.g. "High".
func (s PriorityScore) Label() string {
	return priority.GetPriorityLabel(s.Score)
}

// PriorityScoreRepository persists one score record per task.
type PriorityScoreRepository interface {
	Save(ctx context.Context, score PriorityScore) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]PriorityScore, error)
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}
