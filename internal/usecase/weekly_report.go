package usecase

import (
	"context"
	"fmt"

	"github.com/goalpilot/goalpilot/internal/domain"
	"github.com/goalpilot/goalpilot/internal/usecase/shared"
)

// WeeklyReportInput contains the parameters for a weekly report.
type WeeklyReportInput struct {
	GoalID string
	Week   int // 1-based
}

// WeeklyReportOutput contains the report text and its counts.
type WeeklyReportOutput struct {
	Report  string
	Summary domain.WeekSummary
}

// WeeklyReport is the use case for summarizing one week of a goal.
type WeeklyReport struct {
	goals domain.GoalRepository
	tasks domain.TaskRepository
	coach domain.FeedbackGenerator
}

// NewWeeklyReport creates a new WeeklyReport use case.
func NewWeeklyReport(goals domain.GoalRepository, tasks domain.TaskRepository, coach domain.FeedbackGenerator) *WeeklyReport {
	return &WeeklyReport{
		goals: goals,
		tasks: tasks,
		coach: coach,
	}
}

// Execute counts the tasks whose day falls in the requested week.
// A week past the goal's end yields an empty summary, not an error.
func (uc *WeeklyReport) Execute(ctx context.Context, in WeeklyReportInput) (*WeeklyReportOutput, error) {
	if in.Week < 1 {
		return nil, domain.ErrInvalidWeek
	}

	goal, err := shared.GetGoal(uc.goals, in.GoalID)
	if err != nil {
		return nil, err
	}

	tasks, err := uc.tasks.ListByGoal(goal.ID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	week := domain.NewWeekWindow(in.Week, goal.DurationDays).Filter(tasks)
	summary := domain.WeekSummary{
		Goal:      goal,
		Week:      in.Week,
		Completed: domain.CountCompleted(week),
		Total:     len(week),
	}

	return &WeeklyReportOutput{
		Report:  uc.coach.GenerateWeeklyReport(ctx, summary),
		Summary: summary,
	}, nil
}
