package energy

import (
	"fmt"

	"github.com/felixgeelhaar/focusflow/adapter/cli"
	energyQueries "github.com/felixgeelhaar/focusflow/internal/energy/application/queries"
	"github.com/spf13/cobra"
)

var days int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent check-ins",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.EnergyHistoryHandler == nil {
			return cli.ErrNotInitialized
		}

		checkIns, err := app.EnergyHistoryHandler.Handle(cmd.Context(), energyQueries.EnergyHistoryQuery{
			UserID: app.CurrentUserID,
			Days:   days,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(checkIns) == 0 {
			fmt.Fprintln(out, "No check-ins yet.")
			return nil
		}
		for _, c := range checkIns {
			line := fmt.Sprintf("%s  %-6s", c.Day, c.Level)
			if c.Note != "" {
				line += "  " + c.Note
			}
			fmt.Fprintln(out, line)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&days, "days", "d", energyQueries.DefaultHistoryDays, "number of days to look back")
}
