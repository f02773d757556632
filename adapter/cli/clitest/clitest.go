// Package clitest wires a CLI application against a throwaway SQLite
// database for command tests.
package clitest

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/felixgeelhaar/focusflow/adapter/cli"
	internalApp "github.com/felixgeelhaar/focusflow/internal/app"
	"github.com/felixgeelhaar/focusflow/pkg/config"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// UserID is the user every test app acts as.
var UserID = uuid.MustParse(config.DefaultUserID)

// NewApp builds a local-mode application and installs it as the current
// CLI app until the test ends.
func NewApp(t testing.TB) *cli.App {
	t.Helper()

	cfg := &config.Config{
		AppEnv:           "test",
		DatabaseDriver:   "sqlite",
		SQLitePath:       filepath.Join(t.TempDir(), "test.db"),
		UserID:           UserID.String(),
		OutboxBatchSize:  100,
		OutboxMaxRetries: 3,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	container, err := internalApp.NewContainer(context.Background(), cfg, logger)
	require.NoError(t, err)

	app := cli.NewApp(container)
	app.SetCurrentUserID(UserID)
	cli.SetApp(app)

	t.Cleanup(func() {
		cli.SetApp(nil)
		container.Close()
	})
	return app
}

// ResetFlags restores every local flag of cmd to its default and clears
// the changed markers left by earlier tests.
func ResetFlags(t testing.TB, cmd *cobra.Command) {
	t.Helper()
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		require.NoError(t, f.Value.Set(f.DefValue))
		f.Changed = false
	})
}

// Run executes cmd's RunE with args and returns what it printed.
func Run(t testing.TB, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())
	defer cmd.SetOut(nil)

	err := cmd.RunE(cmd, args)
	return out.String(), err
}
