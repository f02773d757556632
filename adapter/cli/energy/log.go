package energy

import (
	"fmt"

	"github.com/felixgeelhaar/focusflow/adapter/cli"
	energyCommands "github.com/felixgeelhaar/focusflow/internal/energy/application/commands"
	"github.com/felixgeelhaar/focusflow/internal/energy/domain/checkin"
	"github.com/spf13/cobra"
)

var (
	note string
	day  string
)

var logCmd = &cobra.Command{
	Use:   "log [low|medium|high]",
	Short: "Record today's energy level",
	Long: `Record your energy level. Logging twice on the same day replaces the
earlier entry.

Examples:
  focusflow energy log high
  focusflow energy log low --note "bad sleep"
  focusflow energy log medium --day 2026-03-09`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.LogEnergyHandler == nil {
			return cli.ErrNotInitialized
		}

		logCmd := energyCommands.LogEnergyCommand{
			UserID: app.CurrentUserID,
			Level:  args[0],
			Note:   note,
		}
		if day != "" {
			d, err := checkin.ParseDay(day)
			if err != nil {
				return err
			}
			logCmd.Day = d
		}

		result, err := app.LogEnergyHandler.Handle(cmd.Context(), logCmd)
		if err != nil {
			return fmt.Errorf("failed to log energy: %w", err)
		}

		verb := "Logged"
		if result.Replaced {
			verb = "Updated"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s energy for %s: %s\n", verb, result.Day.Format(checkin.DayLayout), result.Level)
		return nil
	},
}

func init() {
	logCmd.Flags().StringVar(&note, "note", "", "optional note")
	logCmd.Flags().StringVar(&day, "day", "", "day to log for (YYYY-MM-DD, default today)")
}
