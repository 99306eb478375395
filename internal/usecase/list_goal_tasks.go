package usecase

import (
	"context"
	"fmt"

	"github.com/goalpilot/goalpilot/internal/domain"
)

// ListGoalTasksInput contains the parameters for listing a goal's tasks.
type ListGoalTasksInput struct {
	GoalID string
}

// ListGoalTasksOutput contains the tasks in insertion order.
type ListGoalTasksOutput struct {
	Tasks []*domain.Task
}

// ListGoalTasks is the use case for listing the tasks of one goal.
// An unknown goal yields an empty list.
type ListGoalTasks struct {
	tasks domain.TaskRepository
}

// NewListGoalTasks creates a new ListGoalTasks use case.
func NewListGoalTasks(tasks domain.TaskRepository) *ListGoalTasks {
	return &ListGoalTasks{tasks: tasks}
}

// Execute returns the tasks of the goal.
func (uc *ListGoalTasks) Execute(_ context.Context, in ListGoalTasksInput) (*ListGoalTasksOutput, error) {
	tasks, err := uc.tasks.ListByGoal(in.GoalID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	return &ListGoalTasksOutput{Tasks: tasks}, nil
}
