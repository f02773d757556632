package task

import (
	"fmt"

	"github.com/felixgeelhaar/focusflow/adapter/cli"
	"github.com/felixgeelhaar/focusflow/internal/productivity/application/commands"
	"github.com/spf13/cobra"
)

var subtaskCmd = &cobra.Command{
	Use:   "subtask [parent-id] [child-id]",
	Short: "Make one task a subtask of another",
	Long: `Link an existing task under a parent. A task that already has a
parent is moved.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.AddSubtaskHandler == nil {
			return cli.ErrNotInitialized
		}

		parentID, err := cli.ParseTaskID(args[0])
		if err != nil {
			return err
		}
		childID, err := cli.ParseTaskID(args[1])
		if err != nil {
			return err
		}

		if err := app.AddSubtaskHandler.Handle(cmd.Context(), commands.AddSubtaskCommand{
			UserID:   app.CurrentUserID,
			ParentID: parentID,
			ChildID:  childID,
		}); err != nil {
			return fmt.Errorf("failed to link subtask: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Subtask linked: %s -> %s\n", cli.ShortID(childID), cli.ShortID(parentID))
		return nil
	},
}
