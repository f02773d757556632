package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/felixgeelhaar/focusflow/internal/app"
	"github.com/felixgeelhaar/focusflow/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/focusflow/pkg/config"
	"github.com/felixgeelhaar/focusflow/pkg/observability"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx, cancel); err != nil {
		slog.Error("worker failed", "error", err)
		cancel()
		os.Exit(1)
	}
}

var newContainer = app.NewContainer

// run blocks until ctx is done. Everything it opens is closed before it
// returns, on success and on error.
func run(ctx context.Context, cancel context.CancelFunc) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := observability.LoggerFromEnv().With("component", "worker")
	slog.SetDefault(logger)

	logger.Info("starting focusflow worker",
		"env", cfg.AppEnv,
		"driver", cfg.DatabaseDriver,
		"rabbitmq", cfg.RabbitMQURL != "",
	)

	container, err := newContainer(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	defer container.Close()

	processor := container.OutboxProcessor
	if err := processor.Start(ctx); err != nil {
		return fmt.Errorf("failed to start outbox processor: %w", err)
	}
	defer processor.Stop()

	if cfg.RabbitMQURL != "" {
		consumer, err := eventbus.NewRabbitMQConsumer(eventbus.RabbitMQConsumerConfig{
			URL:       cfg.RabbitMQURL,
			QueueName: eventbus.DefaultConsumerQueue,
			Exchange:  cfg.RabbitMQExchange,
			Logger:    logger,
		}, nil)
		if err != nil {
			return fmt.Errorf("failed to connect consumer: %w", err)
		}
		defer consumer.Close()

		consumer.RegisterConsumer(container.CacheInvalidator)

		go func() {
			if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("consumer stopped", "error", err)
				cancel()
			}
		}()
	}

	healthServer := &http.Server{
		Addr:              cfg.WorkerHealthAddr,
		Handler:           healthMux(container),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("health server listening", "addr", cfg.WorkerHealthAddr)
		if err := healthServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("health server error", "error", err)
		}
	}()

	if cfg.OutboxStatsInterval > 0 {
		go logStats(ctx, container, cfg.OutboxStatsInterval, logger)
	}

	<-ctx.Done()

	logger.Info("shutting down worker...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := healthServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("health server shutdown failed", "error", err)
	}

	logger.Info("Goodbye!")
	return nil
}

func healthMux(container *app.Container) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		stats := container.OutboxProcessor.GetStats()
		status := http.StatusOK
		if !stats.IsRunning {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, map[string]any{
			"running":           stats.IsRunning,
			"published":         stats.PublishedCount,
			"failed":            stats.FailedCount,
			"dead":              stats.DeadCount,
			"lag_seconds":       stats.LagSeconds,
			"last_error":        stats.LastError,
			"last_processed_at": stats.LastProcessedAt,
		})
	})

	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		health := container.Health.Check(ctx)
		status := http.StatusOK
		if health.Status == observability.HealthStatusUnhealthy {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, health)
	})

	mux.Handle("/metrics", container.Metrics.Handler())
	return mux
}

func logStats(ctx context.Context, container *app.Container, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := container.OutboxProcessor.GetStats()
			attrs := []any{
				"running", stats.IsRunning,
				"published", stats.PublishedCount,
				"failed", stats.FailedCount,
				"dead", stats.DeadCount,
				"lag_seconds", stats.LagSeconds,
			}
			if stats.OldestMessageAt != nil {
				attrs = append(attrs, "oldest_pending", stats.OldestMessageAt.Format(time.RFC3339))
			}
			if stats.LastErrorAt != nil {
				attrs = append(attrs, "last_error", stats.LastError, "last_error_at", stats.LastErrorAt.Format(time.RFC3339))
			}

			pending, err := container.OutboxRepo.CountPending(ctx)
			if err == nil {
				attrs = append(attrs, "pending", pending)
			}
			logger.Info("outbox stats", attrs...)
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
