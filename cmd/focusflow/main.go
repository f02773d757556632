package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/focusflow/adapter/cli"
	"github.com/felixgeelhaar/focusflow/adapter/cli/energy"
	"github.com/felixgeelhaar/focusflow/adapter/cli/priority"
	"github.com/felixgeelhaar/focusflow/adapter/cli/task"
	"github.com/felixgeelhaar/focusflow/internal/app"
	"github.com/felixgeelhaar/focusflow/pkg/config"
	"github.com/felixgeelhaar/focusflow/pkg/observability"
	"github.com/google/uuid"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	// Handle shutdown signals
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config, using development mode:", err)
		cfg = &config.Config{AppEnv: "development", DatabaseDriver: "sqlite", UserID: config.DefaultUserID}
	}

	logger := observability.LoggerFromEnv()
	cli.SetLogger(logger)

	var cliApp *cli.App
	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		if !cfg.IsDevelopment() {
			logger.Error("failed to initialize container", "error", err)
			cancel()
			os.Exit(1)
		}
		// Commands that need storage report ErrNotInitialized.
		logger.Warn("failed to initialize container, running in limited mode", "error", err)
	} else {
		userID, err := uuid.Parse(cfg.UserID)
		if err != nil {
			logger.Error("invalid USER_ID", "error", err)
			container.Close()
			cancel()
			os.Exit(1)
		}
		cliApp = cli.NewApp(container)
		cliApp.SetCurrentUserID(userID)
	}

	cli.SetApp(cliApp)

	// Register commands
	cli.AddCommand(task.Cmd)
	cli.AddCommand(priority.Cmd)
	cli.AddCommand(energy.Cmd)

	err = cli.ExecuteContext(ctx)
	if container != nil {
		container.Close()
	}
	cancel()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
