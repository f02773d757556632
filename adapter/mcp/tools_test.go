package mcp

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/focusflow/adapter/cli"
	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/priority"
	"github.com/felixgeelhaar/mcp-go"
	"github.com/felixgeelhaar/mcp-go/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *mcp.Server {
	return mcp.NewServer(mcp.ServerInfo{
		Name:    "test",
		Version: "1.0.0",
		Capabilities: mcp.Capabilities{
			Tools:     true,
			Resources: true,
			Prompts:   true,
		},
	})
}

func TestRegisterCLITools_ListTools(t *testing.T) {
	srv := newTestServer()

	app := &cli.App{}
	require.NoError(t, RegisterCLITools(srv, ToolDependencies{App: app}))

	tc := testutil.NewTestClient(t, srv)
	defer tc.Close()

	tools, err := tc.ListTools()
	require.NoError(t, err)

	names := make(map[string]bool, len(tools))
	for _, tool := range tools {
		if name, ok := tool["name"].(string); ok {
			names[name] = true
		}
	}

	for _, want := range []string{
		"task.create",
		"task.list",
		"task.get",
		"task.update",
		"task.complete",
		"task.move",
		"priority.recalculate",
		"priority.next",
		"priority.score",
		"priority.override",
		"energy.log",
		"energy.current",
	} {
		assert.True(t, names[want], "%s should be registered", want)
	}
}

func TestRegisterCLITools_RequiresDependencies(t *testing.T) {
	assert.Error(t, RegisterCLITools(nil, ToolDependencies{App: &cli.App{}}))
	assert.Error(t, RegisterCLITools(newTestServer(), ToolDependencies{}))
}

func TestRegisterResourcesAndPrompts(t *testing.T) {
	srv := newTestServer()
	deps := ToolDependencies{App: &cli.App{}}

	require.NoError(t, RegisterResources(srv, deps))
	require.NoError(t, RegisterPrompts(srv, deps))
	assert.Error(t, RegisterResources(nil, deps))
	assert.Error(t, RegisterPrompts(nil, deps))
}

func TestParseDeadline(t *testing.T) {
	t.Run("empty means none", func(t *testing.T) {
		d, err := parseDeadline("")
		require.NoError(t, err)
		assert.Nil(t, d)
	})

	t.Run("date is end of day in the server zone", func(t *testing.T) {
		d, err := parseDeadline("2026-03-12")
		require.NoError(t, err)
		require.NotNil(t, d)
		assert.Equal(t, time.Date(2026, 3, 12, 23, 59, 59, 0, time.Local), *d)
	})

	t.Run("date falls on the same calendar day the scorer sees", func(t *testing.T) {
		d, err := parseDeadline("2026-03-12")
		require.NoError(t, err)

		for _, hour := range []int{0, 12, 23} {
			now := time.Date(2026, 3, 12, hour, 0, 0, 0, time.Local)
			assert.Equal(t, 0, priority.CalendarDaysBetween(now, *d))
			assert.Equal(t, 28, priority.DeadlineScore(d, now))
		}
	})

	t.Run("timestamp keeps its zone", func(t *testing.T) {
		d, err := parseDeadline("2026-03-12T09:30:00+02:00")
		require.NoError(t, err)
		require.NotNil(t, d)
		assert.Equal(t, time.Date(2026, 3, 12, 7, 30, 0, 0, time.UTC), d.UTC())
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := parseDeadline("soon")
		assert.Error(t, err)
	})
}

func TestParseUUID(t *testing.T) {
	_, err := parseUUID("")
	assert.Error(t, err)

	_, err = parseUUID("not-a-uuid")
	assert.Error(t, err)

	id, err := parseOptionalUUID("")
	require.NoError(t, err)
	assert.Nil(t, id)

	id, err = parseOptionalUUID("550e8400-e29b-41d4-a716-446655440000")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", id.String())
}
