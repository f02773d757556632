package task

import (
	"fmt"

	"github.com/felixgeelhaar/focusflow/adapter/cli"
	"github.com/felixgeelhaar/focusflow/internal/productivity/application/commands"
	"github.com/spf13/cobra"
)

var (
	updateTitle       string
	updateDescription string
	updateCategory    string
	updateQuadrant    string
	updateEnergy      string
	updateEstimate    int
	updateDue         string
	clearDue          bool
)

var updateCmd = &cobra.Command{
	Use:   "update [task-id]",
	Short: "Update a task",
	Long: `Update the properties of an existing task.

Examples:
  focusflow task update <id> --title "New title"
  focusflow task update <id> -q q2 -e low
  focusflow task update <id> --estimate 60 --due 2026-12-31
  focusflow task update <id> --clear-due`,
	Aliases: []string{"edit", "modify"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.UpdateTaskHandler == nil {
			return cli.ErrNotInitialized
		}

		taskID, err := cli.ParseTaskID(args[0])
		if err != nil {
			return err
		}

		updateTaskCmd := commands.UpdateTaskCommand{
			TaskID:        taskID,
			UserID:        app.CurrentUserID,
			ClearDeadline: clearDue,
		}

		flagsProvided := clearDue
		flags := cmd.Flags()

		if flags.Changed("title") {
			updateTaskCmd.Title = &updateTitle
			flagsProvided = true
		}
		if flags.Changed("description") {
			updateTaskCmd.Description = &updateDescription
			flagsProvided = true
		}
		if flags.Changed("category") {
			updateTaskCmd.Category = &updateCategory
			flagsProvided = true
		}
		if flags.Changed("quadrant") {
			updateTaskCmd.Quadrant = &updateQuadrant
			flagsProvided = true
		}
		if flags.Changed("energy") {
			updateTaskCmd.Energy = &updateEnergy
			flagsProvided = true
		}
		if flags.Changed("estimate") {
			updateTaskCmd.EstimateMinutes = &updateEstimate
			flagsProvided = true
		}
		if flags.Changed("due") {
			deadline, err := cli.ParseDeadlineFlag(updateDue)
			if err != nil {
				return err
			}
			updateTaskCmd.Deadline = deadline
			flagsProvided = true
		}

		if !flagsProvided {
			return fmt.Errorf("no updates provided - use flags like --title, --quadrant, --energy, --due, or --clear-due")
		}

		result, err := app.UpdateTaskHandler.Handle(cmd.Context(), updateTaskCmd)
		if err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}

		out := cmd.OutOrStdout()
		if !result.Changed {
			fmt.Fprintf(out, "Task unchanged: %s\n", taskID)
			return nil
		}
		fmt.Fprintf(out, "Task updated: %s\n", taskID)
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVarP(&updateTitle, "title", "t", "", "new title")
	updateCmd.Flags().StringVar(&updateDescription, "description", "", "new description")
	updateCmd.Flags().StringVarP(&updateCategory, "category", "c", "", "new category (empty clears)")
	updateCmd.Flags().StringVarP(&updateQuadrant, "quadrant", "q", "", "new eisenhower quadrant (empty clears)")
	updateCmd.Flags().StringVarP(&updateEnergy, "energy", "e", "", "new energy requirement (empty clears)")
	updateCmd.Flags().IntVarP(&updateEstimate, "estimate", "d", 0, "new estimate in minutes")
	updateCmd.Flags().StringVar(&updateDue, "due", "", "new deadline (YYYY-MM-DD or YYYY-MM-DDTHH:MM)")
	updateCmd.Flags().BoolVar(&clearDue, "clear-due", false, "clear the deadline")
}
