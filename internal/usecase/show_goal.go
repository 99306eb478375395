package usecase

import (
	"context"
	"fmt"

	"github.com/goalpilot/goalpilot/internal/domain"
	"github.com/goalpilot/goalpilot/internal/usecase/shared"
)

// ShowGoalInput contains the parameters for showing a goal.
type ShowGoalInput struct {
	GoalID string // Goal ID (required)
}

// ShowGoalOutput contains the goal with its tasks and full progress history.
type ShowGoalOutput struct {
	Goal     *domain.Goal
	Tasks    []*domain.Task
	Progress []*domain.Progress
}

// ShowGoal is the use case for displaying goal details.
type ShowGoal struct {
	goals    domain.GoalRepository
	tasks    domain.TaskRepository
	progress domain.ProgressRepository
}

// NewShowGoal creates a new ShowGoal use case.
func NewShowGoal(goals domain.GoalRepository, tasks domain.TaskRepository, progress domain.ProgressRepository) *ShowGoal {
	return &ShowGoal{
		goals:    goals,
		tasks:    tasks,
		progress: progress,
	}
}

// Execute retrieves the goal details.
func (uc *ShowGoal) Execute(_ context.Context, in ShowGoalInput) (*ShowGoalOutput, error) {
	goal, err := shared.GetGoal(uc.goals, in.GoalID)
	if err != nil {
		return nil, err
	}

	tasks, err := uc.tasks.ListByGoal(goal.ID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	history, err := uc.progress.ListByGoal(goal.ID)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}

	return &ShowGoalOutput{
		Goal:     goal,
		Tasks:    tasks,
		Progress: history,
	}, nil
}
