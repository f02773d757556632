package task

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/focusflow/adapter/cli"
	"github.com/felixgeelhaar/focusflow/internal/productivity/application/queries"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [task-id]",
	Short: "Show task details",
	Long: `Display detailed information about a specific task.

Examples:
  focusflow task show 550e8400-e29b-41d4-a716-446655440000`,
	Aliases: []string{"get", "view"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.GetTaskHandler == nil {
			return cli.ErrNotInitialized
		}

		taskID, err := cli.ParseTaskID(args[0])
		if err != nil {
			return err
		}

		task, err := app.GetTaskHandler.Handle(cmd.Context(), queries.GetTaskQuery{
			TaskID: taskID,
			UserID: app.CurrentUserID,
		})
		if err != nil {
			return fmt.Errorf("failed to get task: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Task: %s\n", task.ID)
		fmt.Fprintf(out, "  Title:       %s\n", task.Title)
		fmt.Fprintf(out, "  Status:      %s\n", formatStatus(task.Status))
		fmt.Fprintf(out, "  Priority:    %s\n", cli.PriorityBadge(task.Priority))
		if task.ManualPriority != nil {
			fmt.Fprintln(out, "               (manual override)")
		}

		if task.Description != "" {
			fmt.Fprintf(out, "  Description: %s\n", task.Description)
		}
		if task.Quadrant != "" {
			fmt.Fprintf(out, "  Quadrant:    %s\n", task.Quadrant)
		}
		if task.Category != "" {
			fmt.Fprintf(out, "  Category:    %s\n", task.Category)
		}
		if task.Energy != "" {
			fmt.Fprintf(out, "  Energy:      %s\n", task.Energy)
		}
		if task.EstimateMinutes > 0 {
			fmt.Fprintf(out, "  Estimate:    %s\n", formatDuration(task.EstimateMinutes))
		}
		if task.Deadline != nil {
			fmt.Fprintf(out, "  Due:         %s\n", task.Deadline.Local().Format("2006-01-02 15:04"))
		}
		if task.ParentID != nil {
			fmt.Fprintf(out, "  Parent:      %s\n", *task.ParentID)
		}
		if len(task.SubtaskIDs) > 0 {
			ids := make([]string, len(task.SubtaskIDs))
			for i, id := range task.SubtaskIDs {
				ids[i] = cli.ShortID(id)
			}
			fmt.Fprintf(out, "  Subtasks:    %s\n", strings.Join(ids, ", "))
		}
		if task.CompletedAt != nil {
			fmt.Fprintf(out, "  Completed:   %s\n", task.CompletedAt.Local().Format("2006-01-02 15:04"))
		}
		fmt.Fprintf(out, "  Created:     %s\n", task.CreatedAt.Local().Format("2006-01-02 15:04"))

		return nil
	},
}

func formatStatus(status string) string {
	switch status {
	case "ready":
		return "Ready"
	case "in_progress":
		return "In Progress"
	case "waiting":
		return "Waiting"
	case "review":
		return "Review"
	case "done":
		return "Done"
	default:
		return status
	}
}

func formatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh%dm", hours, mins)
}
