// Package cache keeps "next task" answers in Redis between recalculations.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/focusflow/internal/productivity/application/services"
	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/value_objects"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultTTL bounds how long an answer survives without an invalidation.
const DefaultTTL = 15 * time.Minute

const keyPrefix = "focusflow:next:"

// RedisScoreCache implements services.ScoreCache. Each user has one hash
// keyed by energy level, so a single DEL drops every answer for the user.
// Keys look like focusflow:next:{user_id}.
type RedisScoreCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisScoreCache creates a cache. A ttl <= 0 means DefaultTTL.
func NewRedisScoreCache(client *redis.Client, ttl time.Duration) *RedisScoreCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisScoreCache{client: client, ttl: ttl}
}

type entry struct {
	TaskID uuid.UUID `json:"task_id"`
	Score  int       `json:"score"`
}

func userKey(userID uuid.UUID) string {
	return keyPrefix + userID.String()
}

func energyField(energy value_objects.EnergyLevel) string {
	if !energy.IsSet() {
		return "none"
	}
	return string(energy)
}

func (c *RedisScoreCache) GetNext(ctx context.Context, userID uuid.UUID, energy value_objects.EnergyLevel) (services.CachedNext, bool, error) {
	raw, err := c.client.HGet(ctx, userKey(userID), energyField(energy)).Bytes()
	if errors.Is(err, redis.Nil) {
		return services.CachedNext{}, false, nil
	}
	if err != nil {
		return services.CachedNext{}, false, fmt.Errorf("read next task cache: %w", err)
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		// Unreadable entries count as a miss and get overwritten.
		return services.CachedNext{}, false, nil
	}
	return services.CachedNext{TaskID: e.TaskID, Score: e.Score}, true, nil
}

func (c *RedisScoreCache) SetNext(ctx context.Context, userID uuid.UUID, energy value_objects.EnergyLevel, next services.CachedNext) error {
	raw, err := json.Marshal(entry{TaskID: next.TaskID, Score: next.Score})
	if err != nil {
		return err
	}

	key := userKey(userID)
	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, key, energyField(energy), raw)
	pipe.Expire(ctx, key, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("write next task cache: %w", err)
	}
	return nil
}

// Invalidate drops every cached answer for the user.
func (c *RedisScoreCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	if err := c.client.Del(ctx, userKey(userID)).Err(); err != nil {
		return fmt.Errorf("invalidate next task cache: %w", err)
	}
	return nil
}
