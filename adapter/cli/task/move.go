package task

import (
	"fmt"

	"github.com/felixgeelhaar/focusflow/adapter/cli"
	"github.com/felixgeelhaar/focusflow/internal/productivity/application/commands"
	"github.com/spf13/cobra"
)

var moveCmd = &cobra.Command{
	Use:   "move [task-id] [status]",
	Short: "Move a task to another workflow status",
	Long: `Move a task along the workflow.

Allowed moves:
  ready        -> in_progress, waiting, done
  in_progress  -> waiting, review, done, ready
  waiting      -> ready, in_progress
  review       -> in_progress, done
  done         -> ready

Examples:
  focusflow task move <id> in_progress
  focusflow task move <id> doing`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.TransitionTaskHandler == nil {
			return cli.ErrNotInitialized
		}

		taskID, err := cli.ParseTaskID(args[0])
		if err != nil {
			return err
		}

		result, err := app.TransitionTaskHandler.Handle(cmd.Context(), commands.TransitionTaskCommand{
			TaskID: taskID,
			UserID: app.CurrentUserID,
			Status: args[1],
		})
		if err != nil {
			return fmt.Errorf("failed to move task: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Task moved: %s -> %s\n", result.From, result.To)
		return nil
	},
}
