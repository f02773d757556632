package priority

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/focusflow/adapter/cli"
	"github.com/felixgeelhaar/focusflow/internal/productivity/application/queries"
	"github.com/spf13/cobra"
)

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Show the task to work on now",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.NextTaskHandler == nil {
			return cli.ErrNotInitialized
		}

		out := cmd.OutOrStdout()
		result, err := app.NextTaskHandler.Handle(cmd.Context(), queries.NextTaskQuery{
			UserID: app.CurrentUserID,
			Energy: energyFlag,
		})
		if errors.Is(err, queries.ErrNoOpenTasks) {
			fmt.Fprintln(out, "Nothing to do. Enjoy the break.")
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "Next: %s\n", result.Task.Title)
		fmt.Fprintf(out, "  ID:       %s\n", result.Task.ID)
		fmt.Fprintf(out, "  Priority: %d (%s)\n", result.Score, result.Label)
		if result.Energy.IsSet() {
			fmt.Fprintf(out, "  Energy:   %s\n", result.Energy)
		}
		if result.Task.Deadline != nil {
			fmt.Fprintf(out, "  Due:      %s\n", result.Task.Deadline.Local().Format("2006-01-02 15:04"))
		}
		if cli.Verbose() && result.FromCache {
			fmt.Fprintln(out, "  (cached)")
		}
		return nil
	},
}
