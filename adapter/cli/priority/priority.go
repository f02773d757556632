package priority

import "github.com/spf13/cobra"

// Cmd is the priority command group.
var Cmd = &cobra.Command{
	Use:   "priority",
	Short: "Priority scoring tools",
	Long: `Score tasks and pick what to work on next.

A score is the sum of four parts, clamped to 0-100:
  eisenhower  0-40
  deadline    0-30
  energy      0-20
  dependency  0-10
A manual override replaces the computed score.`,
}

var energyFlag string

func init() {
	Cmd.PersistentFlags().StringVarP(&energyFlag, "energy", "e", "", "energy level to score against (defaults to today's check-in)")

	Cmd.AddCommand(recalcCmd)
	Cmd.AddCommand(nextCmd)
	Cmd.AddCommand(scoreCmd)
	Cmd.AddCommand(overrideCmd)
	Cmd.AddCommand(scoresCmd)
}
