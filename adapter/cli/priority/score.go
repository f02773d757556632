package priority

import (
	"fmt"

	"github.com/felixgeelhaar/focusflow/adapter/cli"
	"github.com/felixgeelhaar/focusflow/internal/productivity/application/queries"
	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score [task-id]",
	Short: "Explain a task's priority score",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ScoreTaskHandler == nil {
			return cli.ErrNotInitialized
		}

		taskID, err := cli.ParseTaskID(args[0])
		if err != nil {
			return err
		}

		result, err := app.ScoreTaskHandler.Handle(cmd.Context(), queries.ScoreTaskQuery{
			TaskID: taskID,
			UserID: app.CurrentUserID,
			Energy: energyFlag,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s\n", result.Title)
		fmt.Fprintf(out, "  Score:       %d (%s)\n", result.Score, result.Label)
		if result.Overridden {
			fmt.Fprintf(out, "  Override:    yes (computed %d)\n", result.Computed)
		}
		fmt.Fprintf(out, "  Eisenhower:  %2d / 40\n", result.Eisenhower)
		fmt.Fprintf(out, "  Deadline:    %2d / 30\n", result.Deadline)
		fmt.Fprintf(out, "  Energy:      %2d / 20\n", result.Energy)
		fmt.Fprintf(out, "  Dependency:  %2d / 10\n", result.Dependency)
		fmt.Fprintf(out, "  %s\n", result.Explanation)
		return nil
	},
}
