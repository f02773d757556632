package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/focusflow/adapter/cli"
	"github.com/felixgeelhaar/focusflow/internal/productivity/application/queries"
	"github.com/spf13/cobra"
)

var (
	showAll        bool
	status         string
	filterCategory string
	listEnergy     string
	sortBy         string
	limit          int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `List tasks with optional filtering and sorting.

Filter Options:
  --status      Filter by status (ready, in_progress, waiting, review, done)
  --category    Filter by category
  --all         Include completed tasks

Sort Options:
  --sort        priority (default), deadline, created
  --energy      Energy used for priority sorting (defaults to today's check-in)

Examples:
  focusflow task list                     # Open tasks, highest priority first
  focusflow task list --all               # Include done tasks
  focusflow task list --sort deadline     # Nearest deadline first
  focusflow task list -c Work -n 5        # Top 5 work tasks`,
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListTasksHandler == nil {
			return cli.ErrNotInitialized
		}

		tasks, err := app.ListTasksHandler.Handle(cmd.Context(), queries.ListTasksQuery{
			UserID:           app.CurrentUserID,
			Status:           status,
			Category:         filterCategory,
			IncludeCompleted: showAll,
			SortBy:           sortBy,
			Energy:           listEnergy,
			Limit:            limit,
		})
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(tasks) == 0 {
			fmt.Fprintln(out, "No tasks found.")
			return nil
		}

		fmt.Fprintf(out, "Tasks (%d):\n", len(tasks))
		fmt.Fprintln(out, strings.Repeat("-", 60))

		now := time.Now()
		for _, t := range tasks {
			fmt.Fprintf(out, "%s %s %s%s\n",
				cli.StatusIcon(t.Status),
				cli.PriorityBadge(t.Priority),
				t.Title,
				cli.DueMarker(t.Deadline, now),
			)
			fmt.Fprintf(out, "   ID: %s", cli.ShortID(t.ID))
			if t.Quadrant != "" {
				fmt.Fprintf(out, "  %s", t.Quadrant)
			}
			if t.Category != "" {
				fmt.Fprintf(out, "  #%s", t.Category)
			}
			fmt.Fprintln(out)
			if t.Deadline != nil {
				fmt.Fprintf(out, "   Due: %s\n", t.Deadline.Local().Format("2006-01-02 15:04"))
			}
		}

		return nil
	},
}

func init() {
	listCmd.Flags().BoolVarP(&showAll, "all", "a", false, "include completed tasks")
	listCmd.Flags().StringVarP(&status, "status", "s", "", "filter by status")
	listCmd.Flags().StringVarP(&filterCategory, "category", "c", "", "filter by category")
	listCmd.Flags().StringVarP(&listEnergy, "energy", "e", "", "energy level for priority sorting")
	listCmd.Flags().StringVar(&sortBy, "sort", "", "sort by field (priority, deadline, created)")
	listCmd.Flags().IntVarP(&limit, "limit", "n", 0, "max number of tasks to show (0 = no limit)")
}
