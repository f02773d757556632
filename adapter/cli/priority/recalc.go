package priority

import (
	"fmt"

	"github.com/felixgeelhaar/focusflow/adapter/cli"
	"github.com/felixgeelhaar/focusflow/internal/productivity/application/commands"
	"github.com/spf13/cobra"
)

var recalcCmd = &cobra.Command{
	Use:   "recalc",
	Short: "Recalculate and store scores for all open tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.RecalculatePrioritiesHandler == nil {
			return cli.ErrNotInitialized
		}

		result, err := app.RecalculatePrioritiesHandler.Handle(cmd.Context(), commands.RecalculatePrioritiesCommand{
			UserID: app.CurrentUserID,
			Energy: energyFlag,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Recalculated %d priority scores (avg %.2f, %d changed)\n",
			result.ScoredCount, result.AverageScore, result.UpdatedCount)
		if result.Energy.IsSet() {
			fmt.Fprintf(out, "  energy: %s\n", result.Energy)
		}
		return nil
	},
}
