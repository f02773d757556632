package priority

import (
	"fmt"

	"github.com/felixgeelhaar/focusflow/adapter/cli"
	"github.com/spf13/cobra"
)

var scoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "List the scores stored by the last recalculation",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListScoresHandler == nil {
			return cli.ErrNotInitialized
		}

		scores, err := app.ListScoresHandler.Handle(cmd.Context(), app.CurrentUserID, scoresLimit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(scores) == 0 {
			fmt.Fprintln(out, "No stored scores. Run 'focusflow priority recalc' first.")
			return nil
		}
		for _, s := range scores {
			marker := ""
			if s.Overridden {
				marker = " (override)"
			}
			fmt.Fprintf(out, "%3d %-8s %s%s\n", s.Score, s.Label, cli.ShortID(s.TaskID), marker)
		}
		return nil
	},
}

func init() {
	scoresCmd.Flags().IntVarP(&scoresLimit, "limit", "n", 10, "max number of scores to show (0 = all)")
}
