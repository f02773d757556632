package energy

import (
	"fmt"

	"github.com/felixgeelhaar/focusflow/adapter/cli"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:     "show",
	Short:   "Show today's energy level",
	Aliases: []string{"today", "current"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CurrentEnergyHandler == nil {
			return cli.ErrNotInitialized
		}

		today, err := app.CurrentEnergyHandler.Today(cmd.Context(), app.CurrentUserID)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if today == nil {
			fmt.Fprintln(out, "No check-in today. Log one with 'focusflow energy log <level>'.")
			return nil
		}
		fmt.Fprintf(out, "Energy today: %s\n", today.Level)
		if today.Note != "" {
			fmt.Fprintf(out, "  note: %s\n", today.Note)
		}
		return nil
	},
}
