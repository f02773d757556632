package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	energyCommands "github.com/felixgeelhaar/focusflow/internal/energy/application/commands"
	energyQueries "github.com/felixgeelhaar/focusflow/internal/energy/application/queries"
	"github.com/felixgeelhaar/focusflow/internal/energy/domain/checkin"
	"github.com/felixgeelhaar/focusflow/internal/productivity/application/commands"
	"github.com/felixgeelhaar/focusflow/internal/productivity/application/queries"
	"github.com/felixgeelhaar/focusflow/internal/productivity/application/services"
	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/task"
	"github.com/felixgeelhaar/focusflow/internal/productivity/infrastructure/cache"
	sharedApplication "github.com/felixgeelhaar/focusflow/internal/shared/application"
	"github.com/felixgeelhaar/focusflow/internal/shared/infrastructure/database"
	_ "github.com/felixgeelhaar/focusflow/internal/shared/infrastructure/database/postgres" // Register PostgreSQL driver
	_ "github.com/felixgeelhaar/focusflow/internal/shared/infrastructure/database/sqlite"   // Register SQLite driver
	"github.com/felixgeelhaar/focusflow/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/focusflow/internal/shared/infrastructure/migrations"
	"github.com/felixgeelhaar/focusflow/internal/shared/infrastructure/outbox"
	"github.com/felixgeelhaar/focusflow/internal/shared/infrastructure/security"
	"github.com/felixgeelhaar/focusflow/pkg/config"
	"github.com/felixgeelhaar/focusflow/pkg/observability"
	"github.com/redis/go-redis/v9"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Observability
	Metrics *observability.PrometheusMetrics
	Health  *observability.HealthRegistry

	// Database
	DBConn   database.Connection
	DBDriver database.Driver

	// Redis (nil when the score cache is disabled)
	RedisClient *redis.Client

	// Repositories
	TaskRepo    task.Repository
	ScoreRepo   task.PriorityScoreRepository
	CheckInRepo checkin.Repository
	OutboxRepo  outbox.Repository

	// Unit of Work
	UnitOfWork sharedApplication.UnitOfWork

	// Priority
	PriorityEngine *services.PriorityEngine
	ScoreCache     services.ScoreCache

	// Events
	EventPublisher    eventbus.Publisher
	InProcessEventBus *eventbus.InProcessEventBus
	CacheInvalidator  *cache.Invalidator
	OutboxProcessor   *outbox.Processor

	// Task Command Handlers
	CreateTaskHandler     *commands.CreateTaskHandler
	UpdateTaskHandler     *commands.UpdateTaskHandler
	CompleteTaskHandler   *commands.CompleteTaskHandler
	TransitionTaskHandler *commands.TransitionTaskHandler
	AddSubtaskHandler     *commands.AddSubtaskHandler

	// Priority Command Handlers
	SetPriorityOverrideHandler   *commands.SetPriorityOverrideHandler
	RecalculatePrioritiesHandler *commands.RecalculatePrioritiesHandler

	// Task Query Handlers
	GetTaskHandler    *queries.GetTaskHandler
	ListTasksHandler  *queries.ListTasksHandler
	NextTaskHandler   *queries.NextTaskHandler
	ScoreTaskHandler  *queries.ScoreTaskHandler
	ListScoresHandler *queries.ListScoresHandler

	// Energy Handlers
	LogEnergyHandler     *energyCommands.LogEnergyHandler
	CurrentEnergyHandler *energyQueries.CurrentEnergyHandler
	EnergyHistoryHandler *energyQueries.EnergyHistoryHandler
}

// NewContainer creates and wires all dependencies. An empty DATABASE_URL
// selects local SQLite mode.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Container{
		Config:  cfg,
		Logger:  logger,
		Metrics: observability.NewPrometheusMetrics(),
		Health:  observability.NewHealthRegistry(),
	}

	conn, err := openDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	c.DBConn = conn
	c.DBDriver = conn.Driver()
	c.Health.Register("database", observability.DatabaseHealthChecker(conn.Ping))

	applied, err := migrations.Run(ctx, conn)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	if len(applied) > 0 {
		logger.Info("applied migrations", "count", len(applied), "driver", c.DBDriver)
	}

	factory, err := NewRepositoryFactory(conn)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	c.TaskRepo = factory.TaskRepository()
	c.ScoreRepo = factory.PriorityScoreRepository()
	c.CheckInRepo = factory.CheckInRepository()
	c.OutboxRepo = factory.OutboxRepository()
	c.UnitOfWork = factory.UnitOfWork()

	if err := c.connectRedis(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}

	if err := c.createPublisher(); err != nil {
		c.Close()
		return nil, err
	}

	c.OutboxProcessor = outbox.NewProcessor(c.OutboxRepo, c.EventPublisher, outbox.ProcessorConfig{
		PollInterval:    cfg.OutboxPollInterval,
		BatchSize:       cfg.OutboxBatchSize,
		MaxRetries:      cfg.OutboxMaxRetries,
		RetentionDays:   cfg.OutboxRetentionDays,
		CleanupInterval: cfg.OutboxCleanupInterval,
	}, logger).WithMetrics(c.Metrics)

	c.wireHandlers()
	return c, nil
}

func openDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (database.Connection, error) {
	driver, err := database.ParseDriver(cfg.DatabaseDriver)
	if err != nil {
		return nil, err
	}

	dbCfg := database.Config{
		Driver:   driver,
		URL:      cfg.DatabaseURL,
		MaxConns: cfg.DBMaxConns,
	}
	if cfg.IsLocal() {
		path, err := security.ValidateFilePath(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("invalid SQLite path: %w", err)
		}
		if err := database.EnsureDirectory(path); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		dbCfg.SQLitePath = path
	}

	conn, err := database.NewConnection(ctx, dbCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	logger.Info("connected to database", "driver", conn.Driver())
	return conn, nil
}

// connectRedis enables the Redis score cache. Outside production an
// unreachable Redis only disables caching.
func (c *Container) connectRedis(ctx context.Context) error {
	c.ScoreCache = services.NoopScoreCache{}
	if !c.Config.RedisEnabled {
		return nil
	}

	opt, err := redis.ParseURL(c.Config.RedisURL)
	if err != nil {
		return fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		if c.Config.IsProduction() {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		c.Logger.Warn("Redis not available, score cache disabled", "error", err)
		return nil
	}

	c.RedisClient = client
	c.ScoreCache = cache.NewRedisScoreCache(client, c.Config.ScoreCacheTTL)
	c.Health.Register("redis", observability.RedisHealthChecker(func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}))
	c.Logger.Info("connected to Redis")
	return nil
}

// createPublisher picks RabbitMQ when configured and the in-process bus
// otherwise. The in-process bus delivers straight to the cache invalidator.
func (c *Container) createPublisher() error {
	c.CacheInvalidator = cache.NewInvalidator(c.ScoreCache, c.Logger)

	if c.Config.RabbitMQURL != "" {
		rabbit, err := eventbus.NewRabbitMQPublisher(c.Config.RabbitMQURL, c.Config.RabbitMQExchange, c.Logger)
		if err == nil {
			c.EventPublisher = eventbus.NewResilientPublisher(rabbit, eventbus.BreakerConfig{
				Name:        "rabbitmq",
				MaxFailures: c.Config.BreakerMaxFailures,
				OpenTimeout: c.Config.BreakerOpenTimeout,
			}, c.Logger)
			return nil
		}
		if c.Config.IsProduction() {
			return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
		}
		c.Logger.Warn("RabbitMQ not available, using in-process event bus", "error", err)
	}

	c.InProcessEventBus = eventbus.NewInProcessEventBus(c.Logger)
	c.InProcessEventBus.RegisterConsumer(c.CacheInvalidator)
	c.EventPublisher = c.InProcessEventBus
	return nil
}

func (c *Container) wireHandlers() {
	c.PriorityEngine = services.NewPriorityEngine(nil).WithMetrics(c.Metrics)

	c.CurrentEnergyHandler = energyQueries.NewCurrentEnergyHandler(c.CheckInRepo, nil)
	c.EnergyHistoryHandler = energyQueries.NewEnergyHistoryHandler(c.CheckInRepo, nil)
	c.LogEnergyHandler = energyCommands.NewLogEnergyHandler(c.CheckInRepo, c.OutboxRepo, c.UnitOfWork)

	energy := c.CurrentEnergyHandler

	c.CreateTaskHandler = commands.NewCreateTaskHandler(c.TaskRepo, c.OutboxRepo, c.UnitOfWork)
	c.UpdateTaskHandler = commands.NewUpdateTaskHandler(c.TaskRepo, c.OutboxRepo, c.UnitOfWork)
	c.CompleteTaskHandler = commands.NewCompleteTaskHandler(c.TaskRepo, c.OutboxRepo, c.UnitOfWork)
	c.TransitionTaskHandler = commands.NewTransitionTaskHandler(c.TaskRepo, c.OutboxRepo, c.UnitOfWork)
	c.AddSubtaskHandler = commands.NewAddSubtaskHandler(c.TaskRepo, c.OutboxRepo, c.UnitOfWork)
	c.SetPriorityOverrideHandler = commands.NewSetPriorityOverrideHandler(c.TaskRepo, c.OutboxRepo, c.UnitOfWork)
	c.RecalculatePrioritiesHandler = commands.NewRecalculatePrioritiesHandler(
		c.TaskRepo,
		c.ScoreRepo,
		c.OutboxRepo,
		c.UnitOfWork,
		c.PriorityEngine,
		energy,
		c.ScoreCache,
	)

	c.GetTaskHandler = queries.NewGetTaskHandler(c.TaskRepo)
	c.ListTasksHandler = queries.NewListTasksHandler(c.TaskRepo, c.PriorityEngine, energy)
	c.NextTaskHandler = queries.NewNextTaskHandler(c.TaskRepo, c.PriorityEngine, energy, c.ScoreCache).WithMetrics(c.Metrics)
	c.ScoreTaskHandler = queries.NewScoreTaskHandler(c.TaskRepo, c.PriorityEngine, energy)
	c.ListScoresHandler = queries.NewListScoresHandler(c.ScoreRepo)
}

// DrainOutbox publishes everything pending once. Short-lived processes call
// it after a command instead of running the polling processor.
func (c *Container) DrainOutbox(ctx context.Context) error {
	if c.OutboxProcessor == nil {
		return nil
	}
	return c.OutboxProcessor.ProcessOnce(ctx)
}

// Close releases all resources.
func (c *Container) Close() {
	if c.OutboxProcessor != nil && c.OutboxProcessor.IsRunning() {
		c.OutboxProcessor.Stop()
	}
	if c.EventPublisher != nil {
		if err := c.EventPublisher.Close(); err != nil {
			c.Logger.Warn("failed to close event publisher", "error", err)
		}
	}
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("failed to close Redis client", "error", err)
		}
	}
	if c.DBConn != nil {
		if err := c.DBConn.Close(); err != nil {
			c.Logger.Warn("failed to close database", "error", err)
		}
	}
}
