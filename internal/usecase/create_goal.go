package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/goalpilot/goalpilot/internal/domain"
)

// CreateGoalInput contains the parameters for creating a goal.
type CreateGoalInput struct {
	Title        string // Goal statement (required)
	DurationDays int    // Number of days (required, positive)
}

// CreateGoalOutput contains the result of creating a goal.
type CreateGoalOutput struct {
	Goal     *domain.Goal
	Progress *domain.Progress // Initial 0% snapshot
	Tasks    []*domain.Task
}

// CreateGoal is the use case for declaring a goal and materializing its plan.
type CreateGoal struct {
	goals    domain.GoalRepository
	tasks    domain.TaskRepository
	progress domain.ProgressRepository
	planner  domain.PlanGenerator
	clock    domain.Clock
	logger   domain.Logger
}

// NewCreateGoal creates a new CreateGoal use case.
func NewCreateGoal(
	goals domain.GoalRepository,
	tasks domain.TaskRepository,
	progress domain.ProgressRepository,
	planner domain.PlanGenerator,
	clock domain.Clock,
	logger domain.Logger,
) *CreateGoal {
	return &CreateGoal{
		goals:    goals,
		tasks:    tasks,
		progress: progress,
		planner:  planner,
		clock:    clock,
		logger:   logger,
	}
}

// Execute generates a plan, then persists the goal, its tasks and the
// initial progress snapshot in that order.
func (uc *CreateGoal) Execute(ctx context.Context, in CreateGoalInput) (*CreateGoalOutput, error) {
	title := strings.TrimSpace(in.Title)
	if err := domain.ValidateGoalInput(title, in.DurationDays); err != nil {
		return nil, err
	}

	plan, err := uc.planner.GeneratePlan(ctx, title, in.DurationDays)
	if err != nil {
		return nil, fmt.Errorf("generate plan: %w", err)
	}

	now := uc.clock.Now()
	goal := &domain.Goal{
		ID:           domain.NewGoalID(),
		Title:        title,
		DurationDays: in.DurationDays,
		Plan:         plan,
		Status:       domain.StatusActive,
		CreatedAt:    now,
	}
	if err := uc.goals.Save(goal); err != nil {
		return nil, fmt.Errorf("save goal: %w", err)
	}

	var drafts []domain.DailyTask
	if plan != nil {
		drafts = plan.DailyTasks
	}
	tasks := domain.MaterializeTasks(goal.ID, drafts, now)
	if err := uc.tasks.ReplaceForGoal(goal.ID, tasks); err != nil {
		return nil, fmt.Errorf("save tasks: %w", err)
	}

	initial := domain.NewProgress(goal.ID, 0, len(tasks), now)
	if err := uc.progress.Save(initial); err != nil {
		return nil, fmt.Errorf("save progress: %w", err)
	}

	uc.logger.Info(goal.ID, domain.LogCategoryGoal, fmt.Sprintf("goal created: %q (%d days, %d tasks)", goal.Title, goal.DurationDays, len(tasks)))

	return &CreateGoalOutput{
		Goal:     goal,
		Tasks:    tasks,
		Progress: initial,
	}, nil
}
