package services

import (
	"context"

	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/value_objects"
	"github.com/google/uuid"
)

// CachedNext is the remembered answer to "what next" for one energy level.
type CachedNext struct {
	TaskID uuid.UUID `json:"task_id"`
	Score  int       `json:"score"`
}

// ScoreCache remembers recommendations per user and energy level. Any write
// to the user's tasks or energy should invalidate it.
type ScoreCache interface {
	GetNext(ctx context.Context, userID uuid.UUID, energy value_objects.EnergyLevel) (CachedNext, bool, error)
	SetNext(ctx context.Context, userID uuid.UUID, energy value_objects.EnergyLevel, next CachedNext) error
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

// NoopScoreCache never hits.
type NoopScoreCache struct{}

func (NoopScoreCache) GetNext(context.Context, uuid.UUID, value_objects.EnergyLevel) (CachedNext, bool, error) {
	return CachedNext{}, false, nil
}

func (NoopScoreCache) SetNext(context.Context, uuid.UUID, value_objects.EnergyLevel, CachedNext) error {
	return nil
}

func (NoopScoreCache) Invalidate(context.Context, uuid.UUID) error { return nil }
