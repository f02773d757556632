package priority

import (
	"context"
	"testing"

	"github.com/felixgeelhaar/focusflow/adapter/cli"
	"github.com/felixgeelhaar/focusflow/adapter/cli/clitest"
	energyCommands "github.com/felixgeelhaar/focusflow/internal/energy/application/commands"
	"github.com/felixgeelhaar/focusflow/internal/productivity/application/commands"
	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/task"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTask(t *testing.T, app *cli.App, title, quadrant, energy string) uuid.UUID {
	t.Helper()
	result, err := app.CreateTaskHandler.Handle(context.Background(), commands.CreateTaskCommand{
		UserID:   app.CurrentUserID,
		Title:    title,
		Quadrant: quadrant,
		Energy:   energy,
	})
	require.NoError(t, err)
	return result.TaskID
}

func TestNextCmd(t *testing.T) {
	app := clitest.NewApp(t)
	energyFlag = ""

	t.Run("nothing open", func(t *testing.T) {
		out, err := clitest.Run(t, nextCmd)
		require.NoError(t, err)
		assert.Contains(t, out, "Nothing to do")
	})

	newTask(t, app, "Clean inbox", "q4", "")
	urgent := newTask(t, app, "Fix production bug", "q1", "")

	t.Run("highest score wins", func(t *testing.T) {
		out, err := clitest.Run(t, nextCmd)
		require.NoError(t, err)
		assert.Contains(t, out, "Next: Fix production bug")
		assert.Contains(t, out, urgent.String())
		assert.Contains(t, out, "Priority: 60 (High)")
	})

	t.Run("invalid energy", func(t *testing.T) {
		energyFlag = "sleepy"
		defer func() { energyFlag = "" }()

		_, err := clitest.Run(t, nextCmd)
		assert.Error(t, err)
	})
}

func TestScoreCmd(t *testing.T) {
	app := clitest.NewApp(t)
	id := newTask(t, app, "Prepare talk", "q1", "high")

	t.Run("explicit energy", func(t *testing.T) {
		energyFlag = "high"
		defer func() { energyFlag = "" }()

		out, err := clitest.Run(t, scoreCmd, id.String())
		require.NoError(t, err)
		assert.Contains(t, out, "Score:       70 (High)")
		assert.Contains(t, out, "Eisenhower:  40 / 40")
		assert.Contains(t, out, "Deadline:     5 / 30")
		assert.Contains(t, out, "Energy:      20 / 20")
		assert.Contains(t, out, "Dependency:   5 / 10")
	})

	t.Run("energy from today's check-in", func(t *testing.T) {
		energyFlag = ""
		_, err := app.LogEnergyHandler.Handle(context.Background(), energyCommands.LogEnergyCommand{
			UserID: app.CurrentUserID,
			Level:  "low",
		})
		require.NoError(t, err)

		out, err := clitest.Run(t, scoreCmd, id.String())
		require.NoError(t, err)
		assert.Contains(t, out, "Score:       55 (Medium)")
	})

	t.Run("unknown task", func(t *testing.T) {
		_, err := clitest.Run(t, scoreCmd, uuid.NewString())
		assert.ErrorIs(t, err, task.ErrTaskNotFound)
	})
}

func TestOverrideCmd(t *testing.T) {
	app := clitest.NewApp(t)
	id := newTask(t, app, "Renew passport", "q2", "")
	energyFlag = ""

	t.Run("sets score", func(t *testing.T) {
		clitest.ResetFlags(t, overrideCmd)
		out, err := clitest.Run(t, overrideCmd, id.String(), "95")
		require.NoError(t, err)
		assert.Contains(t, out, "Override set")

		out, err = clitest.Run(t, scoreCmd, id.String())
		require.NoError(t, err)
		assert.Contains(t, out, "Score:       95 (Critical)")
		assert.Contains(t, out, "Override:    yes")
	})

	t.Run("rejects out of range", func(t *testing.T) {
		clitest.ResetFlags(t, overrideCmd)
		_, err := clitest.Run(t, overrideCmd, id.String(), "150")
		assert.ErrorIs(t, err, task.ErrInvalidOverride)
	})

	t.Run("requires score or clear", func(t *testing.T) {
		clitest.ResetFlags(t, overrideCmd)
		_, err := clitest.Run(t, overrideCmd, id.String())
		assert.Error(t, err)
	})

	t.Run("clears", func(t *testing.T) {
		clitest.ResetFlags(t, overrideCmd)
		require.NoError(t, overrideCmd.Flags().Set("clear", "true"))

		out, err := clitest.Run(t, overrideCmd, id.String())
		require.NoError(t, err)
		assert.Contains(t, out, "Override cleared")

		out, err = clitest.Run(t, scoreCmd, id.String())
		require.NoError(t, err)
		assert.NotContains(t, out, "Override:")
	})
}

func TestRecalcAndScoresCmd(t *testing.T) {
	app := clitest.NewApp(t)
	energyFlag = ""
	clitest.ResetFlags(t, scoresCmd)

	out, err := clitest.Run(t, scoresCmd)
	require.NoError(t, err)
	assert.Contains(t, out, "No stored scores")

	newTask(t, app, "Book flights", "q1", "")
	newTask(t, app, "Sort photos", "q4", "")

	out, err = clitest.Run(t, recalcCmd)
	require.NoError(t, err)
	assert.Contains(t, out, "Recalculated 2 priority scores")

	out, err = clitest.Run(t, scoresCmd)
	require.NoError(t, err)
	assert.Contains(t, out, " 60 High")
	assert.Contains(t, out, " 30 Low")
}
