package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goalpilot/goalpilot/internal/app"
	"github.com/goalpilot/goalpilot/internal/domain"
	"github.com/goalpilot/goalpilot/internal/usecase"
)

// newGoalCommand creates the goal command group.
func newGoalCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Create, inspect and coach goals",
	}

	cmd.AddCommand(
		newGoalNewCommand(c),
		newGoalListCommand(c),
		newGoalShowCommand(c),
		newGoalProgressCommand(c),
		newGoalEvaluateCommand(c),
		newGoalRemindCommand(c),
		newGoalReportCommand(c),
	)
	return cmd
}

// newGoalNewCommand creates the goal new subcommand.
func newGoalNewCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title  string
		Format string
		Days   int
	}

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a goal and generate its daily plan",
		Long: `Create a goal and generate a day-by-day plan for it.

One task is created per plan entry and an initial 0% progress
snapshot is recorded. Without an API key a deterministic
three-phase plan (Foundation, Practice, Mastery) is used.

Examples:
  goalpilot goal new --title "Learn Go" --days 30
  goalpilot goal new --title "Run 5k" --days 14 --format json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.CreateGoalUseCase().Execute(cmd.Context(), usecase.CreateGoalInput{
				Title:        opts.Title,
				DurationDays: opts.Days,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			handled, err := writeStructured(w, opts.Format, map[string]any{
				"goal":     out.Goal,
				"tasks":    out.Tasks,
				"progress": out.Progress,
			})
			if handled {
				return err
			}

			_, _ = fmt.Fprintf(w, "Created goal %s: %s (%d tasks over %d days)\n",
				out.Goal.ID, out.Goal.Title, len(out.Tasks), out.Goal.DurationDays)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "Goal title (required)")
	cmd.Flags().IntVar(&opts.Days, "days", 0, "Duration in days (required)")
	addFormatFlag(cmd, &opts.Format)

	return cmd
}

// newGoalListCommand creates the goal list subcommand.
func newGoalListCommand(c *app.Container) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List goals with their latest progress",
		Long: `List all goals with their latest progress.

Output format is tab-separated with columns:
  ID, DAYS, PROGRESS, CREATED, TITLE`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ListGoalsUseCase().Execute(cmd.Context(), usecase.ListGoalsInput{})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if handled, err := writeStructured(w, format, newGoalViews(out.Goals)); handled {
				return err
			}
			printGoalList(w, out.Goals)
			return nil
		},
	}

	addFormatFlag(cmd, &format)
	return cmd
}

// printGoalList prints goals in TSV format.
func printGoalList(w io.Writer, goals []domain.GoalWithProgress) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tDAYS\tPROGRESS\tCREATED\tTITLE")
	for _, g := range goals {
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n",
			g.ID, g.DurationDays, progressText(g.Progress), formatTime(g.CreatedAt), g.Title)
	}
	_ = tw.Flush()
}

// newGoalShowCommand creates the goal show subcommand.
func newGoalShowCommand(c *app.Container) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show <goal-id>",
		Short: "Show a goal with its plan and tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.ShowGoalUseCase().Execute(cmd.Context(), usecase.ShowGoalInput{GoalID: args[0]})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			handled, err := writeStructured(w, format, map[string]any{
				"goal":     out.Goal,
				"tasks":    out.Tasks,
				"progress": out.Progress,
			})
			if handled {
				return err
			}
			printGoalDetails(w, out)
			return nil
		},
	}

	addFormatFlag(cmd, &format)
	return cmd
}

// printGoalDetails prints a goal, its plan summary and its tasks.
func printGoalDetails(w io.Writer, out *usecase.ShowGoalOutput) {
	g := out.Goal
	_, _ = fmt.Fprintf(w, "# %s\n\n", g.Title)
	_, _ = fmt.Fprintf(w, "ID:       %s\n", g.ID)
	_, _ = fmt.Fprintf(w, "Status:   %s\n", g.Status)
	_, _ = fmt.Fprintf(w, "Days:     %d\n", g.DurationDays)
	_, _ = fmt.Fprintf(w, "Created:  %s\n", formatTime(g.CreatedAt))
	_, _ = fmt.Fprintf(w, "Progress: %s\n", progressText(domain.LatestProgress(out.Progress)))

	if g.Plan != nil {
		if len(g.Plan.Milestones) > 0 {
			_, _ = fmt.Fprintf(w, "\nMilestones:\n")
			for _, m := range g.Plan.Milestones {
				_, _ = fmt.Fprintf(w, "  - %s\n", m)
			}
		}
		if g.Plan.MotivationalApproach != "" {
			_, _ = fmt.Fprintf(w, "\nApproach: %s\n", g.Plan.MotivationalApproach)
		}
	}

	_, _ = fmt.Fprintln(w)
	printTaskList(w, out.Tasks)
}

// newGoalProgressCommand creates the goal progress subcommand.
func newGoalProgressCommand(c *app.Container) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "progress <goal-id>",
		Short: "Show the progress history of a goal",
		Long: `Show every recorded progress snapshot of a goal, oldest first.

An unknown goal id yields an empty history.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.ListProgressUseCase().Execute(cmd.Context(), usecase.ListProgressInput{GoalID: args[0]})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if handled, err := writeStructured(w, format, out.Progress); handled {
				return err
			}

			tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
			_, _ = fmt.Fprintln(tw, "TIME\tCOMPLETED\tTOTAL\tPERCENT")
			for _, p := range out.Progress {
				_, _ = fmt.Fprintf(tw, "%s\t%d\t%d\t%d%%\n",
					formatTime(p.Timestamp), p.CompletedTasks, p.TotalTasks, p.ProgressPercentage)
			}
			return tw.Flush()
		},
	}

	addFormatFlag(cmd, &format)
	return cmd
}

// newGoalEvaluateCommand creates the goal evaluate subcommand.
func newGoalEvaluateCommand(c *app.Container) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "evaluate <goal-id>",
		Short: "Get coaching feedback on a goal's progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.EvaluateProgressUseCase().Execute(cmd.Context(), usecase.EvaluateProgressInput{GoalID: args[0]})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if handled, err := writeStructured(w, format, out.Feedback); handled {
				return err
			}

			e := out.Evaluation
			status := "behind schedule"
			if e.OnTrack {
				status = "on track"
			}
			_, _ = fmt.Fprintf(w, "%d/%d tasks done (%.1f%%), day %d of %d: %s\n\n",
				e.CompletedTasks, e.TotalTasks, e.CompletionRate, e.DaysElapsed, e.Goal.DurationDays, status)
			_, _ = fmt.Fprintf(w, "Analysis:      %s\n", out.Feedback.Analysis)
			_, _ = fmt.Fprintf(w, "Encouragement: %s\n", out.Feedback.Encouragement)
			_, _ = fmt.Fprintf(w, "Next action:   %s\n", out.Feedback.NextAction)
			_, _ = fmt.Fprintf(w, "Tip:           %s\n", out.Feedback.Tip)
			return nil
		},
	}

	addFormatFlag(cmd, &format)
	return cmd
}

// newGoalRemindCommand creates the goal remind subcommand.
func newGoalRemindCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "remind <goal-id>",
		Short: "Generate a re-engagement reminder for a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.GenerateReminderUseCase().Execute(cmd.Context(), usecase.GenerateReminderInput{GoalID: args[0]})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(out.Reminder))
			return nil
		},
	}
}

// newGoalReportCommand creates the goal report subcommand.
func newGoalReportCommand(c *app.Container) *cobra.Command {
	var week int

	cmd := &cobra.Command{
		Use:   "report <goal-id>",
		Short: "Generate a weekly report for a goal",
		Long: `Generate a report for one week of a goal.

Week N covers task days 7(N-1)+1 through 7N, clipped to the goal's duration.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.WeeklyReportUseCase().Execute(cmd.Context(), usecase.WeeklyReportInput{
				GoalID: args[0],
				Week:   week,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "Week %d: %d/%d tasks done\n\n", out.Summary.Week, out.Summary.Completed, out.Summary.Total)
			_, _ = fmt.Fprintln(w, strings.TrimSpace(out.Report))
			return nil
		},
	}

	cmd.Flags().IntVar(&week, "week", 1, "Week number (1-based)")
	return cmd
}
