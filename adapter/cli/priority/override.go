package priority

import (
	"fmt"
	"strconv"

	"github.com/felixgeelhaar/focusflow/adapter/cli"
	"github.com/felixgeelhaar/focusflow/internal/productivity/application/commands"
	"github.com/spf13/cobra"
)

var clearOverride bool

var overrideCmd = &cobra.Command{
	Use:   "override [task-id] [score]",
	Short: "Pin a task's priority to a fixed score",
	Long: `Pin a task's priority to a score between 0 and 100, or remove the pin.

Examples:
  focusflow priority override <id> 95
  focusflow priority override <id> --clear`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.SetPriorityOverrideHandler == nil {
			return cli.ErrNotInitialized
		}

		taskID, err := cli.ParseTaskID(args[0])
		if err != nil {
			return err
		}

		overrideCmd := commands.SetPriorityOverrideCommand{
			TaskID: taskID,
			UserID: app.CurrentUserID,
		}
		switch {
		case clearOverride && len(args) == 2:
			return fmt.Errorf("give either a score or --clear, not both")
		case clearOverride:
		case len(args) == 2:
			score, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid score %q: %w", args[1], err)
			}
			overrideCmd.Score = &score
		default:
			return fmt.Errorf("a score or --clear is required")
		}

		if err := app.SetPriorityOverrideHandler.Handle(cmd.Context(), overrideCmd); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if overrideCmd.Score == nil {
			fmt.Fprintf(out, "Override cleared: %s\n", taskID)
			return nil
		}
		fmt.Fprintf(out, "Override set: %s = %d\n", taskID, *overrideCmd.Score)
		return nil
	},
}

func init() {
	overrideCmd.Flags().BoolVar(&clearOverride, "clear", false, "remove the override")
}
