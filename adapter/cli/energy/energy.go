package energy

import "github.com/spf13/cobra"

// Cmd is the energy command group.
var Cmd = &cobra.Command{
	Use:   "energy",
	Short: "Log and review your daily energy",
	Long: `Record how much energy you have today. Priority scores use today's
check-in unless a command is given --energy.`,
}

func init() {
	Cmd.AddCommand(logCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(historyCmd)
}
