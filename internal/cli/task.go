package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goalpilot/goalpilot/internal/app"
	"github.com/goalpilot/goalpilot/internal/domain"
	"github.com/goalpilot/goalpilot/internal/usecase"
)

// newTaskCommand creates the task command group.
func newTaskCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "List and complete daily tasks",
	}
	cmd.AddCommand(
		newTaskListCommand(c),
		newTaskDoneCommand(c),
	)
	return cmd
}

// newTaskListCommand creates the task list subcommand.
func newTaskListCommand(c *app.Container) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "list <goal-id>",
		Aliases: []string{"ls"},
		Short:   "List the tasks of a goal ordered by day",
		Long: `List the tasks of a goal ordered by day.

Output format is tab-separated with columns:
  DAY, DONE, ID, TITLE

An unknown goal id yields an empty list.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.ListGoalTasksUseCase().Execute(cmd.Context(), usecase.ListGoalTasksInput{GoalID: args[0]})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if handled, err := writeStructured(w, format, out.Tasks); handled {
				return err
			}
			printTaskList(w, out.Tasks)
			return nil
		},
	}

	addFormatFlag(cmd, &format)
	return cmd
}

// printTaskList prints tasks in TSV format.
func printTaskList(w io.Writer, tasks []*domain.Task) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(tw, "DAY\tDONE\tID\tTITLE")
	for _, t := range tasks {
		_, _ = fmt.Fprintf(tw, "%d\t[%s]\t%s\t%s\n", t.Day, doneMark(t.Completed), t.ID, t.Title)
	}
	_ = tw.Flush()
}

// newTaskDoneCommand creates the task done subcommand.
func newTaskDoneCommand(c *app.Container) *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "done <task-id>",
		Short: "Mark a task as done (or not done with --undo)",
		Long: `Set a task's completion flag and record a new progress snapshot
for its goal.

Examples:
  goalpilot task done 3f2a...-0-1740819600000
  goalpilot task done 3f2a...-0-1740819600000 --undo`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.CompleteTaskUseCase().Execute(cmd.Context(), usecase.CompleteTaskInput{
				TaskID:    args[0],
				Completed: !undo,
			})
			if err != nil {
				return err
			}

			state := "done"
			if !out.Task.Completed {
				state = "not done"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Task %s marked %s. Progress: %s\n",
				out.Task.ID, state, progressText(out.Progress))
			return nil
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "Mark the task as not done")
	return cmd
}
