package cli

import (
	"fmt"

	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/task"
	"github.com/felixgeelhaar/focusflow/internal/productivity/domain/value_objects"
	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List categories, quadrants, energy levels and statuses",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, "Categories:")
		for _, c := range value_objects.AllCategories() {
			fmt.Fprintf(out, "  %s\n", c)
		}

		fmt.Fprintln(out, "Quadrants:")
		for _, q := range value_objects.Quadrants() {
			fmt.Fprintf(out, "  %s\n", q)
		}

		fmt.Fprintln(out, "Energy levels:")
		for _, e := range []value_objects.EnergyLevel{value_objects.EnergyLow, value_objects.EnergyMedium, value_objects.EnergyHigh} {
			fmt.Fprintf(out, "  %s\n", e)
		}

		fmt.Fprintln(out, "Statuses:")
		for _, s := range task.Statuses() {
			fmt.Fprintf(out, "  %s\n", s)
		}
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}
