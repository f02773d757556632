package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/focusflow/internal/app"
	mcpinternal "github.com/felixgeelhaar/focusflow/internal/mcp"
	"github.com/felixgeelhaar/focusflow/pkg/config"
	"github.com/felixgeelhaar/focusflow/pkg/observability"
	"github.com/google/uuid"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		observability.LoggerFromEnv().Error("mcp server error", "error", err)
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := observability.LoggerFromEnv().With("component", "mcp")

	userID, err := uuid.Parse(cfg.UserID)
	if err != nil {
		return fmt.Errorf("invalid USER_ID: %w", err)
	}

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	defer container.Close()

	// Tool calls write to the outbox; deliver in the background.
	if err := container.OutboxProcessor.Start(ctx); err != nil {
		return fmt.Errorf("failed to start outbox processor: %w", err)
	}

	cliApp := mcpinternal.NewCLIApp(container, userID)
	return mcpinternal.Serve(ctx, cfg, cliApp, logger)
}
