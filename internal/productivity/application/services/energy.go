package services

import (
	"context"

	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/value_objects"
	"github.com/google/uuid"
)

// EnergyProvider resolves the energy level a user is scored against.
type EnergyProvider interface {
	CurrentEnergy(ctx context.Context, userID uuid.UUID) (value_objects.EnergyLevel, error)
}

// StaticEnergy always reports the same level.
type StaticEnergy value_objects.EnergyLevel

func (s StaticEnergy) CurrentEnergy(context.Context, uuid.UUID) (value_objects.EnergyLevel, error) {
	return value_objects.EnergyLevel(s), nil
}

// ResolveEnergy prefers an explicit level and falls back to provider.
func ResolveEnergy(ctx context.Context, provider EnergyProvider, userID uuid.UUID, explicit string) (value_objects.EnergyLevel, error) {
	if explicit != "" {
		return value_objects.ParseEnergyLevel(explicit)
	}
	if provider == nil {
		return value_objects.EnergyNone, nil
	}
	return provider.CurrentEnergy(ctx, userID)
}
