package cache

import (
	"context"
	"log/slog"

	"github.com/felixgeelhaar/focusflow/internal/productivity/application/services"
	"github.com/felixgeelhaar/focusflow/internal/shared/infrastructure/eventbus"
	"github.com/google/uuid"
)

// Invalidator drops a user's cached answers whenever one of their tasks or
// their energy changes.
type Invalidator struct {
	cache  services.ScoreCache
	logger *slog.Logger
}

var _ eventbus.EventConsumer = (*Invalidator)(nil)

func NewInvalidator(cache services.ScoreCache, logger *slog.Logger) *Invalidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Invalidator{cache: cache, logger: logger}
}

func (i *Invalidator) EventTypes() []string {
	return []string{"core.task.#", "core.energy.#"}
}

func (i *Invalidator) Handle(ctx context.Context, event *eventbus.ConsumedEvent) error {
	userID := event.Metadata.UserID
	if userID == uuid.Nil {
		i.logger.Warn("event without user, cache left as is",
			"routing_key", event.RoutingKey,
			"event_id", event.EventID,
		)
		return nil
	}

	if err := i.cache.Invalidate(ctx, userID); err != nil {
		return err
	}
	i.logger.Debug("next task cache invalidated",
		"user_id", userID,
		"routing_key", event.RoutingKey,
	)
	return nil
}
