package migrations_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/felixgeelhaar/focusflow/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/focusflow/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/focusflow/internal/shared/infrastructure/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	for _, driver := range []database.Driver{database.DriverSQLite, database.DriverPostgres} {
		t.Run(driver.String(), func(t *testing.T) {
			list, err := migrations.List(driver)
			require.NoError(t, err)

			names := make([]string, len(list))
			for i, m := range list {
				names[i] = m.Name
				assert.NotEmpty(t, m.SQL)
			}
			assert.Equal(t, []string{
				"001_tasks.up.sql",
				"002_priority_scores.up.sql",
				"003_energy_checkins.up.sql",
				"004_outbox.up.sql",
			}, names)
		})
	}

	_, err := migrations.List("mysql")
	assert.ErrorIs(t, err, database.ErrUnsupportedDriver)
}

func TestRun_SQLite(t *testing.T) {
	ctx := context.Background()
	conn, err := sqlite.NewConnection(ctx, database.Config{SQLitePath: filepath.Join(t.TempDir(), "m.db")})
	require.NoError(t, err)
	defer conn.Close()

	applied, err := migrations.Run(ctx, conn)
	require.NoError(t, err)
	assert.Len(t, applied, 4)

	for _, table := range []string{"tasks", "priority_scores", "energy_checkins", "outbox"} {
		var n int
		err := conn.QueryRow(ctx, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&n)
		require.NoError(t, err)
		assert.Equal(t, 1, n, table)
	}

	again, err := migrations.Run(ctx, conn)
	require.NoError(t, err)
	assert.Empty(t, again)
}
