package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/felixgeelhaar/focusflow/internal/productivity/application/commands"
	"github.com/felixgeelhaar/focusflow/internal/productivity/application/queries"
	"github.com/felixgeelhaar/focusflow/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/focusflow/pkg/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func localConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		AppEnv:              "test",
		DatabaseDriver:      "sqlite",
		SQLitePath:          filepath.Join(t.TempDir(), "focusflow.db"),
		OutboxBatchSize:     50,
		OutboxMaxRetries:    3,
		OutboxRetentionDays: 7,
	}
}

func TestNewContainer_LocalMode(t *testing.T) {
	ctx := context.Background()
	c, err := NewContainer(ctx, localConfig(t), nil)
	require.NoError(t, err)
	t.Cleanup(c.Close)

	assert.Equal(t, database.DriverSQLite, c.DBDriver)
	assert.Nil(t, c.RedisClient)
	require.NotNil(t, c.InProcessEventBus)
	assert.Same(t, c.InProcessEventBus, c.EventPublisher)
	assert.NotNil(t, c.OutboxProcessor)

	health := c.Health.Check(ctx)
	assert.Contains(t, health.Checks, "database")
}

func TestContainer_TaskFlow(t *testing.T) {
	ctx := context.Background()
	c, err := NewContainer(ctx, localConfig(t), nil)
	require.NoError(t, err)
	t.Cleanup(c.Close)

	userID := uuid.New()
	created, err := c.CreateTaskHandler.Handle(ctx, commands.CreateTaskCommand{
		UserID:   userID,
		Title:    "Ship release notes",
		Quadrant: "urgent-important",
		Energy:   "high",
	})
	require.NoError(t, err)

	next, err := c.NextTaskHandler.Handle(ctx, queries.NextTaskQuery{UserID: userID})
	require.NoError(t, err)
	assert.Equal(t, created.TaskID, next.Task.ID)

	pending, err := c.OutboxRepo.CountPending(ctx)
	require.NoError(t, err)
	assert.Positive(t, pending)

	require.NoError(t, c.DrainOutbox(ctx))

	pending, err = c.OutboxRepo.CountPending(ctx)
	require.NoError(t, err)
	assert.Zero(t, pending)
}

func TestContainer_RedisCacheInvalidatedByOutbox(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	cfg := localConfig(t)
	cfg.RedisEnabled = true
	cfg.RedisURL = "redis://" + mr.Addr() + "/0"

	c, err := NewContainer(ctx, cfg, nil)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	require.NotNil(t, c.RedisClient)

	userID := uuid.New()
	_, err = c.CreateTaskHandler.Handle(ctx, commands.CreateTaskCommand{UserID: userID, Title: "First"})
	require.NoError(t, err)
	require.NoError(t, c.DrainOutbox(ctx))

	_, err = c.NextTaskHandler.Handle(ctx, queries.NextTaskQuery{UserID: userID})
	require.NoError(t, err)
	key := "focusflow:next:" + userID.String()
	assert.True(t, mr.Exists(key))

	cached, err := c.NextTaskHandler.Handle(ctx, queries.NextTaskQuery{UserID: userID})
	require.NoError(t, err)
	assert.True(t, cached.FromCache)

	_, err = c.CreateTaskHandler.Handle(ctx, commands.CreateTaskCommand{UserID: userID, Title: "Second"})
	require.NoError(t, err)
	require.NoError(t, c.DrainOutbox(ctx))

	assert.False(t, mr.Exists(key))
}

func TestContainer_RedisUnavailableOutsideProduction(t *testing.T) {
	cfg := localConfig(t)
	cfg.RedisEnabled = true
	cfg.RedisURL = "redis://127.0.0.1:1/0"

	c, err := NewContainer(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(c.Close)

	assert.Nil(t, c.RedisClient)
}

func TestNewContainer_InvalidDriver(t *testing.T) {
	cfg := localConfig(t)
	cfg.DatabaseDriver = "oracle"

	_, err := NewContainer(context.Background(), cfg, nil)
	require.ErrorIs(t, err, database.ErrUnsupportedDriver)
}
