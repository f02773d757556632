package task

import (
	"fmt"

	"github.com/felixgeelhaar/focusflow/adapter/cli"
	"github.com/felixgeelhaar/focusflow/internal/productivity/application/commands"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	description    string
	category       string
	quadrant       string
	energy         string
	dueDate        string
	estimate       int
	manualPriority int
	parent         string
)

var createCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a new task",
	Long: `Create a new task with a title and optional properties.

Examples:
  focusflow task create "Finish quarterly report" -q q1 --due 2026-03-12
  focusflow task create "Plan sermon series" -q important -e high -c Ministry
  focusflow task create "Outline" --parent 550e8400-e29b-41d4-a716-446655440000`,
	Aliases: []string{"add"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CreateTaskHandler == nil {
			return cli.ErrNotInitialized
		}

		createCmd := commands.CreateTaskCommand{
			UserID:          app.CurrentUserID,
			Title:           args[0],
			Description:     description,
			Category:        category,
			Quadrant:        quadrant,
			Energy:          energy,
			EstimateMinutes: estimate,
		}

		deadline, err := cli.ParseDeadlineFlag(dueDate)
		if err != nil {
			return err
		}
		createCmd.Deadline = deadline

		if cmd.Flags().Changed("priority") {
			score := manualPriority
			createCmd.ManualPriority = &score
		}

		if parent != "" {
			parentID, err := cli.ParseTaskID(parent)
			if err != nil {
				return err
			}
			createCmd.ParentID = &parentID
		}

		result, err := app.CreateTaskHandler.Handle(cmd.Context(), createCmd)
		if err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}

		printCreated(cmd, result.TaskID, createCmd)
		return nil
	},
}

func printCreated(cmd *cobra.Command, id uuid.UUID, c commands.CreateTaskCommand) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Task created: %s\n", id)
	fmt.Fprintf(out, "  title: %s\n", c.Title)
	if c.Quadrant != "" {
		fmt.Fprintf(out, "  quadrant: %s\n", c.Quadrant)
	}
	if c.Deadline != nil {
		fmt.Fprintf(out, "  due: %s\n", c.Deadline.Format("2006-01-02 15:04"))
	}
	if c.ManualPriority != nil {
		fmt.Fprintf(out, "  priority override: %d\n", *c.ManualPriority)
	}
}

func init() {
	createCmd.Flags().StringVar(&description, "description", "", "task description")
	createCmd.Flags().StringVarP(&category, "category", "c", "", "category (see 'focusflow categories')")
	createCmd.Flags().StringVarP(&quadrant, "quadrant", "q", "", "eisenhower quadrant (q1-q4, do, schedule, delegate, eliminate)")
	createCmd.Flags().StringVarP(&energy, "energy", "e", "", "energy the task needs (low, medium, high)")
	createCmd.Flags().StringVar(&dueDate, "due", "", "deadline (YYYY-MM-DD or YYYY-MM-DDTHH:MM)")
	createCmd.Flags().IntVarP(&estimate, "estimate", "d", 0, "estimated duration in minutes")
	createCmd.Flags().IntVarP(&manualPriority, "priority", "p", 0, "manual priority override (0-100)")
	createCmd.Flags().StringVar(&parent, "parent", "", "parent task ID")
}
