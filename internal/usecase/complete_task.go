package usecase

import (
	"context"
	"fmt"

	"github.com/goalpilot/goalpilot/internal/domain"
	"github.com/goalpilot/goalpilot/internal/usecase/shared"
)

// CompleteTaskInput contains the parameters for updating a task's completion flag.
type CompleteTaskInput struct {
	TaskID    string // Task ID (required)
	Completed bool   // New value of the flag
}

// CompleteTaskOutput contains the updated task and the recomputed snapshot.
type CompleteTaskOutput struct {
	Task     *domain.Task
	Progress *domain.Progress
}

// CompleteTask is the use case for marking a task done or not done.
type CompleteTask struct {
	tasks    domain.TaskRepository
	progress domain.ProgressRepository
	clock    domain.Clock
	logger   domain.Logger
	locks    *shared.GoalLocks
}

// NewCompleteTask creates a new CompleteTask use case.
// Updates and recomputes of the same goal are serialized through locks.
func NewCompleteTask(
	tasks domain.TaskRepository,
	progress domain.ProgressRepository,
	clock domain.Clock,
	logger domain.Logger,
	locks *shared.GoalLocks,
) *CompleteTask {
	if locks == nil {
		locks = shared.NewGoalLocks()
	}
	return &CompleteTask{
		tasks:    tasks,
		progress: progress,
		clock:    clock,
		logger:   logger,
		locks:    locks,
	}
}

// Execute sets the flag and appends a fresh progress snapshot for the
// owning goal. Setting the current value again still appends a snapshot.
func (uc *CompleteTask) Execute(_ context.Context, in CompleteTaskInput) (*CompleteTaskOutput, error) {
	existing, err := shared.GetTask(uc.tasks, in.TaskID)
	if err != nil {
		return nil, err
	}

	unlock := uc.locks.Lock(existing.GoalID)
	defer unlock()

	now := uc.clock.Now()
	task, err := uc.tasks.SetCompleted(existing.ID, in.Completed, now)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}

	progress, err := shared.RecordProgress(uc.tasks, uc.progress, task.GoalID, now)
	if err != nil {
		return nil, err
	}

	state := "not done"
	if task.Completed {
		state = "done"
	}
	uc.logger.Info(task.GoalID, domain.LogCategoryTask, fmt.Sprintf("task %s marked %s (%d%%)", task.ID, state, progress.ProgressPercentage))

	return &CompleteTaskOutput{
		Task:     task,
		Progress: progress,
	}, nil
}
