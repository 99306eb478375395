package shared

import (
	"fmt"

	"github.com/goalpilot/goalpilot/internal/domain"
)

// GetGoal retrieves a goal by ID and returns domain.ErrGoalNotFound if not found.
// This centralizes the common pattern of:
//
//	goal, err := repo.Get(goalID)
//	if err != nil { return nil, fmt.Errorf("get goal: %w", err) }
//	if goal == nil { return nil, domain.ErrGoalNotFound }
func GetGoal(repo domain.GoalRepository, goalID string) (*domain.Goal, error) {
	goal, err := repo.Get(goalID)
	if err != nil {
		return nil, fmt.Errorf("get goal: %w", err)
	}
	if goal == nil {
		return nil, domain.ErrGoalNotFound
	}
	return goal, nil
}

// GetTask retrieves a task by ID and returns domain.ErrTaskNotFound if not found.
func GetTask(repo domain.TaskRepository, taskID string) (*domain.Task, error) {
	task, err := repo.Get(taskID)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
}
